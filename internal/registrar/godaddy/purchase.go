package godaddy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

type Address struct {
	Address1   string `json:"address1" yaml:"address1"`
	Address2   string `json:"address2,omitempty" yaml:"address2,omitempty"`
	City       string `json:"city" yaml:"city"`
	State      string `json:"state" yaml:"state"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
	Country    string `json:"country" yaml:"country"`
}

type Contact struct {
	NameFirst      string  `json:"nameFirst" yaml:"nameFirst"`
	NameMiddle     string  `json:"nameMiddle,omitempty" yaml:"nameMiddle,omitempty"`
	NameLast       string  `json:"nameLast" yaml:"nameLast"`
	Organization   string  `json:"organization,omitempty" yaml:"organization,omitempty"`
	JobTitle       string  `json:"jobTitle,omitempty" yaml:"jobTitle,omitempty"`
	Email          string  `json:"email" yaml:"email"`
	Phone          string  `json:"phone" yaml:"phone"`
	Fax            string  `json:"fax,omitempty" yaml:"fax,omitempty"`
	AddressMailing Address `json:"addressMailing" yaml:"addressMailing"`
}

// PurchaseSchema is the registrar's description of the purchase body for a TLD.
type PurchaseSchema struct {
	ID         string                    `json:"id"`
	Properties map[string]map[string]any `json:"properties"`
	Required   []string                  `json:"required"`
	Models     map[string]any            `json:"models,omitempty"`
}

func (s PurchaseSchema) Requires(field string) bool {
	return slices.Contains(s.Required, field)
}

// PurchaseRequest describes a purchase. Role contacts left nil fall back to
// Contact. Privacy is tri-state: nil means no preference.
type PurchaseRequest struct {
	Domain string

	Contact           Contact
	ContactAdmin      *Contact
	ContactBilling    *Contact
	ContactRegistrant *Contact
	ContactTech       *Contact

	// BuyerIP is recorded as the consenting address; when empty the public
	// IPv4 address is looked up.
	BuyerIP string
	Privacy *bool
	// Force allows a purchase above the configured price limit.
	Force bool

	Period      int
	NameServers []string
	RenewAuto   *bool

	// Extra carries further body fields. Like every other field they are only
	// sent when the TLD's schema declares them.
	Extra map[string]any
}

func (r PurchaseRequest) withDefaults() PurchaseRequest {
	for _, p := range []**Contact{&r.ContactAdmin, &r.ContactBilling, &r.ContactRegistrant, &r.ContactTech} {
		if *p == nil {
			c := r.Contact
			*p = &c
		}
	}
	return r
}

type Consent struct {
	AgreedAt      string   `json:"agreedAt"`
	AgreedBy      string   `json:"agreedBy"`
	AgreementKeys []string `json:"agreementKeys"`
}

type PurchaseReceipt struct {
	OrderID   int64   `json:"orderId"`
	ItemCount int     `json:"itemCount"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
}

var creditAuthRe = regexp.MustCompile(`(?i)Unable to authorize credit based`)

func (c *Client) GetPurchaseSchema(ctx context.Context, domain string) (PurchaseSchema, error) {
	var s PurchaseSchema
	if err := c.call(ctx, http.MethodGet, "/v1/domains/purchase/schema/"+url.PathEscape(TLD(domain)), nil, &s); err != nil {
		return PurchaseSchema{}, err
	}
	return s, nil
}

// PurchaseDomain buys r.Domain. The steps run strictly in order and any
// failure aborts the purchase; only the final POST has side effects.
func (c *Client) PurchaseDomain(ctx context.Context, r PurchaseRequest) (PurchaseReceipt, error) {
	r = r.withDefaults()
	if !strings.Contains(r.Domain, ".") {
		return PurchaseReceipt{}, validationErrorf("godaddy: invalid domain %q", r.Domain)
	}
	log := c.log.With("domain", r.Domain)

	a, err := c.GetAvailability(ctx, r.Domain, r.Privacy != nil && *r.Privacy)
	if err != nil {
		return PurchaseReceipt{}, err
	}
	if !a.Available {
		return PurchaseReceipt{}, &Error{
			Kind:    KindPolicy,
			Code:    "DOMAIN_UNAVAILABLE",
			Message: fmt.Sprintf("Domain %q not available for purchase", r.Domain),
			Err:     ErrDomainUnavailable,
		}
	}
	if err := c.checkPriceLimit(a, r.Force); err != nil {
		return PurchaseReceipt{}, err
	}
	if !a.HasPrice {
		log.WarnContext(ctx, "no price quoted, price limit not applied")
	}
	log.InfoContext(ctx, "domain available", "price", a.Price, "currency", a.Currency, "force", r.Force)

	schema, err := c.GetPurchaseSchema(ctx, r.Domain)
	if err != nil {
		return PurchaseReceipt{}, err
	}
	// An explicit "no" is only worth sending where the TLD requires an answer.
	if r.Privacy != nil && !*r.Privacy && !schema.Requires("privacy") {
		r.Privacy = nil
	}

	keys, err := c.GetAgreementKeys(ctx, r.Domain, r.Privacy != nil && *r.Privacy)
	if err != nil {
		return PurchaseReceipt{}, err
	}
	log.InfoContext(ctx, "agreements resolved", "tld", TLD(r.Domain), "agreements", len(keys))

	if r.BuyerIP == "" {
		ip, err := c.ip.PublicIPv4(ctx)
		if err != nil {
			return PurchaseReceipt{}, &Error{Kind: KindTransport, Message: "godaddy: resolve buyer ip: " + err.Error(), Err: err}
		}
		r.BuyerIP = ip
	}

	consent := Consent{
		AgreedAt:      c.opts.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		AgreedBy:      r.BuyerIP,
		AgreementKeys: keys,
	}
	body := purchaseBody(r, consent, schema)

	var receipt PurchaseReceipt
	if err := c.call(ctx, http.MethodPost, "/v1/domains/purchase", body, &receipt); err != nil {
		return PurchaseReceipt{}, translatePurchaseError(err, schema)
	}
	receipt.Total /= priceUnit
	log.InfoContext(ctx, "domain purchased", "order_id", receipt.OrderID)
	return receipt, nil
}

func (c *Client) checkPriceLimit(a Availability, force bool) error {
	if !a.HasPrice || force || a.Price <= c.opts.PriceLimit {
		return nil
	}
	return &Error{
		Kind: KindPolicy,
		Code: "PRICE_LIMIT",
		Message: fmt.Sprintf("Cannot purchase domain as it is more expensive than the price limit: $%s (value: $%.2f)",
			strconv.FormatFloat(c.opts.PriceLimit, 'f', -1, 64), a.Price),
		Err: ErrPriceLimitExceeded,
	}
}

// purchaseBody assembles every known field and keeps only those the schema
// declares, plus privacy.
func purchaseBody(r PurchaseRequest, consent Consent, schema PurchaseSchema) map[string]any {
	all := make(map[string]any, len(r.Extra)+10)
	for k, v := range r.Extra {
		all[k] = v
	}
	all["consent"] = consent
	all["contactAdmin"] = r.ContactAdmin
	all["contactBilling"] = r.ContactBilling
	all["contactRegistrant"] = r.ContactRegistrant
	all["contactTech"] = r.ContactTech
	all["domain"] = r.Domain
	if r.Period > 0 {
		all["period"] = r.Period
	}
	if r.NameServers != nil {
		all["nameServers"] = r.NameServers
	}
	if r.RenewAuto != nil {
		all["renewAuto"] = *r.RenewAuto
	}
	delete(all, "privacy")
	if r.Privacy != nil {
		all["privacy"] = *r.Privacy
	}

	body := make(map[string]any, len(schema.Properties)+1)
	for k, v := range all {
		if _, ok := schema.Properties[k]; ok || k == "privacy" {
			body[k] = v
		}
	}
	return body
}

func translatePurchaseError(err error, schema PurchaseSchema) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	if creditAuthRe.MatchString(e.Message) {
		e.Message = "Cannot purchase domain due to insufficient funds"
		e.Err = ErrInsufficientFunds
	}
	if e.Code == "INVALID_BODY" {
		e.Message = "This domain requires more data for successful purchase"
		for i := range e.Fields {
			path := strings.TrimPrefix(e.Fields[i].Path, "body.")
			e.Fields[i].Path = path
			e.Fields[i].Schema = schema.Properties[path]
		}
	}
	return e
}
