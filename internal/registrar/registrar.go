package registrar

import "context"

type Client interface {
	Name() string
	CheckDomain(ctx context.Context, domain string, privacy bool) (DomainCheck, error)
}

type DomainCheck struct {
	Available  bool
	Definitive bool

	// Price is in the display unit (e.g. dollars). HasPrice is false when the
	// registrar did not quote one.
	Price    float64
	HasPrice bool
	Currency string // e.g. USD
	Period   int    // years
}
