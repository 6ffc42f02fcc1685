package godaddy

import (
	"context"
	"net/http"
	"net/url"

	"github.com/benithors/domainctl/internal/registrar"
)

// priceUnit converts the API's micro-unit prices to the display unit.
const priceUnit = 1_000_000

type Availability struct {
	Domain     string
	Available  bool
	Definitive bool

	// Price is in the display unit, including PrivacyPrice when privacy was
	// requested. HasPrice is false when no price was quoted.
	Price    float64
	HasPrice bool
	Currency string
	Period   int
}

type availabilityResponse struct {
	Domain     string   `json:"domain"`
	Available  bool     `json:"available"`
	Definitive bool     `json:"definitive"`
	Price      *float64 `json:"price"`
	Currency   string   `json:"currency"`
	Period     int      `json:"period"`
}

// GetAvailability is advisory: nothing is reserved, so a later purchase can
// still find the domain gone.
func (c *Client) GetAvailability(ctx context.Context, domain string, privacy bool) (Availability, error) {
	var resp availabilityResponse
	q := url.Values{"domain": {domain}}
	if err := c.call(ctx, http.MethodGet, "/v1/domains/available", q, &resp); err != nil {
		return Availability{}, err
	}

	a := Availability{
		Domain:     resp.Domain,
		Available:  resp.Available,
		Definitive: resp.Definitive,
		Currency:   resp.Currency,
		Period:     resp.Period,
	}
	if a.Domain == "" {
		a.Domain = domain
	}
	if resp.Price != nil {
		a.HasPrice = true
		a.Price = *resp.Price / priceUnit
		if privacy {
			a.Price += c.opts.PrivacyPrice
		}
	}
	return a, nil
}

// CheckDomain implements registrar.Client.
func (c *Client) CheckDomain(ctx context.Context, domain string, privacy bool) (registrar.DomainCheck, error) {
	a, err := c.GetAvailability(ctx, domain, privacy)
	if err != nil {
		return registrar.DomainCheck{}, err
	}
	return registrar.DomainCheck{
		Available:  a.Available,
		Definitive: a.Definitive,
		Price:      a.Price,
		HasPrice:   a.HasPrice,
		Currency:   a.Currency,
		Period:     a.Period,
	}, nil
}
