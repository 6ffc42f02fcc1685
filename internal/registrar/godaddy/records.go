package godaddy

import (
	"context"
	"net/http"
	"net/url"
)

type Record struct {
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Data     string `json:"data" yaml:"data"`
	TTL      int    `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	Priority int    `json:"priority,omitempty" yaml:"priority,omitempty"`
	Weight   int    `json:"weight,omitempty" yaml:"weight,omitempty"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Service  string `json:"service,omitempty" yaml:"service,omitempty"`
}

func recordsPath(domain, typ, name string) string {
	p := "/v1/domains/" + url.PathEscape(domain) + "/records"
	if typ != "" && name != "" {
		p += "/" + url.PathEscape(typ) + "/" + url.PathEscape(name)
	}
	return p
}

// GetRecords lists records, narrowed to type/name only when both are given.
func (c *Client) GetRecords(ctx context.Context, domain, typ, name string) ([]Record, error) {
	var records []Record
	if err := c.call(ctx, http.MethodGet, recordsPath(domain, typ, name), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ReplaceRecords replaces the whole record set at the same scope GetRecords uses.
func (c *Client) ReplaceRecords(ctx context.Context, domain, typ, name string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	return c.call(ctx, http.MethodPut, recordsPath(domain, typ, name), records, nil)
}

// UpdateRecords patches the records at /{type}/{name} of the domain.
func (c *Client) UpdateRecords(ctx context.Context, domain, typ, name string, records []Record) error {
	if typ == "" || name == "" {
		return validationErrorf("godaddy: update records needs both type and name")
	}
	if records == nil {
		records = []Record{}
	}
	path := "/v1/domains/" + url.PathEscape(domain) + "/" + url.PathEscape(typ) + "/" + url.PathEscape(name)
	return c.call(ctx, http.MethodPatch, path, records, nil)
}

func (c *Client) UpdateNameServers(ctx context.Context, domain string, nameServers []string) error {
	if nameServers == nil {
		nameServers = []string{}
	}
	body := map[string][]string{"nameServers": nameServers}
	return c.call(ctx, http.MethodPatch, "/v1/domains/"+url.PathEscape(domain), body, nil)
}

// GetRecord returns the single record at type/name. No match yields
// ErrRecordNotFound and more than one yields ErrMultipleRecords.
func (c *Client) GetRecord(ctx context.Context, domain, typ, name string) (Record, error) {
	records, err := c.GetRecords(ctx, domain, typ, name)
	if err != nil {
		return Record{}, err
	}
	switch len(records) {
	case 0:
		return Record{}, &Error{
			Kind:    KindRemote,
			Message: "no " + typ + " record named " + name + " on " + domain,
			Err:     ErrRecordNotFound,
		}
	case 1:
		return records[0], nil
	default:
		return Record{}, &Error{
			Kind:    KindAmbiguous,
			Message: ErrMultipleRecords.Error(),
			Err:     ErrMultipleRecords,
		}
	}
}

// GetARecord returns the data of the apex A record. Lookup failures are
// returned as-is so that an absent record and a failed lookup stay distinct.
func (c *Client) GetARecord(ctx context.Context, domain string) (string, error) {
	r, err := c.GetRecord(ctx, domain, "A", "@")
	if err != nil {
		return "", err
	}
	return r.Data, nil
}
