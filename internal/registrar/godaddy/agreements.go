package godaddy

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type Agreement struct {
	AgreementKey string `json:"agreementKey"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url,omitempty"`
	Content      string `json:"content,omitempty"`
}

// GetAgreementKeys returns the keys of the legal agreements a buyer must
// accept to register domain, in the order the registrar lists them.
func (c *Client) GetAgreementKeys(ctx context.Context, domain string, privacy bool) ([]string, error) {
	agreements, err := c.GetAgreements(ctx, domain, privacy)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(agreements))
	for _, a := range agreements {
		keys = append(keys, a.AgreementKey)
	}
	return keys, nil
}

func (c *Client) GetAgreements(ctx context.Context, domain string, privacy bool) ([]Agreement, error) {
	q := url.Values{
		"tlds": {TLD(domain)},
		// The API only accepts the literal strings "true" and "false".
		"privacy": {strconv.FormatBool(privacy)},
	}
	var agreements []Agreement
	if err := c.call(ctx, http.MethodGet, "/v1/domains/agreements", q, &agreements); err != nil {
		return nil, err
	}
	return agreements, nil
}
