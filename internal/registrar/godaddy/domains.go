package godaddy

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const pageSize = 100

// Domain is a domain in the account as returned by the listing endpoint.
type Domain struct {
	Domain      string   `json:"domain"`
	DomainID    int64    `json:"domainId,omitempty"`
	Status      string   `json:"status,omitempty"`
	Expires     string   `json:"expires,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	RenewAuto   bool     `json:"renewAuto"`
	Renewable   bool     `json:"renewable"`
	Privacy     bool     `json:"privacy"`
	Locked      bool     `json:"locked"`
	NameServers []string `json:"nameServers,omitempty"`
}

// DomainDetail is the single-domain view; fields not modelled here are kept
// in Raw.
type DomainDetail struct {
	Domain
	AuthCode string         `json:"authCode,omitempty"`
	Raw      map[string]any `json:"-"`
}

// DomainIterator walks the account's domains one page at a time. The marker
// for each page is the last domain of the previous one, and a page shorter
// than the page size ends the walk. An iterator is single use.
//
//	it := c.Domains()
//	for it.Next(ctx) {
//		d := it.Domain()
//	}
//	if err := it.Err(); err != nil { ... }
type DomainIterator struct {
	c *Client

	marker string
	page   []Domain
	idx    int
	cur    Domain
	done   bool
	err    error
}

// Domains starts a fresh listing.
func (c *Client) Domains() *DomainIterator {
	return &DomainIterator{c: c}
}

// Next advances to the next domain, fetching a page when the current one is
// exhausted. It returns false at the end of the listing or on error.
func (it *DomainIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	for it.idx >= len(it.page) {
		if it.done {
			return false
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return false
		}
	}
	it.cur = it.page[it.idx]
	it.idx++
	return true
}

func (it *DomainIterator) fetch(ctx context.Context) error {
	q := url.Values{"limit": {strconv.Itoa(pageSize)}}
	if it.marker != "" {
		q.Set("marker", it.marker)
	}

	var page []Domain
	if err := it.c.call(ctx, http.MethodGet, "/v1/domains", q, &page); err != nil {
		return err
	}
	it.page, it.idx = page, 0
	if len(page) != pageSize {
		it.done = true
	}
	if len(page) > 0 {
		it.marker = page[len(page)-1].Domain
	}
	return nil
}

func (it *DomainIterator) Domain() Domain { return it.cur }

func (it *DomainIterator) Err() error { return it.err }

// ListDomains collects the whole listing.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	var out []Domain
	it := c.Domains()
	for it.Next(ctx) {
		out = append(out, it.Domain())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDomain(ctx context.Context, domain string) (DomainDetail, error) {
	path := "/v1/domains/" + url.PathEscape(domain)
	raw, err := c.transport.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return DomainDetail{}, err
	}

	var d DomainDetail
	if err := decode(path, raw, &d); err != nil {
		return DomainDetail{}, err
	}
	if err := decode(path, raw, &d.Raw); err != nil {
		return DomainDetail{}, err
	}
	return d, nil
}
