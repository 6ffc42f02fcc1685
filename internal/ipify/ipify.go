// Package ipify looks up the caller's public IPv4 address.
package ipify

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint only answers over IPv4, so the address it reports is the
// caller's IPv4 even on dual-stack hosts.
const DefaultEndpoint = "https://api.ipify.org"

type Options struct {
	Endpoint   string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

type Resolver struct {
	opts Options
	http *http.Client
}

func NewResolver(opts Options) *Resolver {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "domainctl/ipify"
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Resolver{opts: opts, http: hc}
}

func (r *Resolver) PublicIPv4(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.opts.Endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("user-agent", r.opts.UserAgent)

	resp, err := r.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ipify: http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	s := strings.TrimSpace(string(b))
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return "", fmt.Errorf("ipify: not an IPv4 address: %q", s)
	}
	return ip.To4().String(), nil
}
