package godaddy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benithors/domainctl/internal/ipify"
)

const (
	productionURL = "https://api.godaddy.com"
	oteURL        = "https://api.ote-godaddy.com"

	defaultPrivacyPrice = 10
)

// IPResolver supplies the caller's public IPv4 address for purchase consent.
type IPResolver interface {
	PublicIPv4(ctx context.Context) (string, error)
}

type Options struct {
	Key    string
	Secret string

	// OTE selects the registrar's test environment. BaseURL, when set, wins.
	OTE     bool
	BaseURL string

	// PriceLimit is the most PurchaseDomain will spend without Force.
	PriceLimit float64
	// PrivacyPrice is added to quoted prices when privacy is requested.
	PrivacyPrice float64

	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client

	// Collaborators; defaults talk to the real services.
	Transport  Transport
	IPResolver IPResolver
	Logger     *slog.Logger
	Now        func() time.Time
}

type Client struct {
	opts      Options
	transport Transport
	ip        IPResolver
	log       *slog.Logger
}

func NewClient(opts Options) (*Client, error) {
	opts.Key = strings.TrimSpace(opts.Key)
	opts.Secret = strings.TrimSpace(opts.Secret)
	if opts.Transport == nil && (opts.Key == "" || opts.Secret == "") {
		return nil, fmt.Errorf("godaddy: missing api key (set GODADDY_API_KEY and GODADDY_API_SECRET)")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = productionURL
		if opts.OTE {
			opts.BaseURL = oteURL
		}
	}
	if opts.PrivacyPrice <= 0 {
		opts.PrivacyPrice = defaultPrivacyPrice
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "domainctl/registrar-godaddy"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil)) // slog.DiscardHandler requires go1.24
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Client{
		opts:      opts,
		transport: opts.Transport,
		ip:        opts.IPResolver,
		log:       opts.Logger,
	}
	if c.transport == nil {
		c.transport = newHTTPTransport(opts)
	}
	if c.ip == nil {
		c.ip = ipify.NewResolver(ipify.Options{Timeout: opts.Timeout, UserAgent: opts.UserAgent})
	}
	return c, nil
}

func (c *Client) Name() string { return "godaddy" }

func (c *Client) APIURL() string { return c.opts.BaseURL }

func (c *Client) PriceLimit() float64 { return c.opts.PriceLimit }

// call runs one request and decodes a non-empty response into out.
func (c *Client) call(ctx context.Context, method, path string, data, out any) error {
	raw, err := c.transport.Do(ctx, method, path, data)
	if err != nil {
		return err
	}
	return decode(path, raw, out)
}

func decode(path string, raw json.RawMessage, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("godaddy: decode %s: %v", path, err), Err: err}
	}
	return nil
}

// TLD returns everything after the first dot, so "a.co.uk" yields "co.uk".
// The domain is expected to contain a dot.
func TLD(domain string) string {
	return domain[strings.IndexByte(domain, '.')+1:]
}
