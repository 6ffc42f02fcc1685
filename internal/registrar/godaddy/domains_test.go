package godaddy

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePage(prefix string, n int) []Domain {
	out := make([]Domain, n)
	for i := range out {
		out[i] = Domain{Domain: fmt.Sprintf("%s%03d.com", prefix, i)}
	}
	return out
}

// pagedTransport serves pages in order and records the query of each request.
func pagedTransport(pages ...[]Domain) (*fakeTransport, *[]url.Values) {
	var queries []url.Values
	ft := &fakeTransport{}
	ft.handler = func(method, path string, data any) (any, error) {
		if method != http.MethodGet || path != "/v1/domains" {
			return nil, fmt.Errorf("unexpected %s %s", method, path)
		}
		queries = append(queries, data.(url.Values))
		n := len(queries) - 1
		if n >= len(pages) {
			return []Domain{}, nil
		}
		return pages[n], nil
	}
	return ft, &queries
}

func TestListDomains_FollowsMarkersUntilShortPage(t *testing.T) {
	t.Parallel()

	p1, p2, p3 := makePage("a", 100), makePage("b", 100), makePage("c", 37)
	ft, queries := pagedTransport(p1, p2, p3)
	c := newTestClient(t, ft, nil)

	got, err := c.ListDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 237)
	assert.Equal(t, p1[0].Domain, got[0].Domain)
	assert.Equal(t, p3[36].Domain, got[236].Domain)

	require.Len(t, *queries, 3)
	q := *queries
	assert.Equal(t, "", q[0].Get("marker"))
	assert.False(t, q[0].Has("marker"))
	assert.Equal(t, p1[99].Domain, q[1].Get("marker"))
	assert.Equal(t, p2[99].Domain, q[2].Get("marker"))
	for _, v := range q {
		assert.Equal(t, "100", v.Get("limit"))
	}
}

func TestListDomains_EmptyAccount(t *testing.T) {
	t.Parallel()

	ft, queries := pagedTransport([]Domain{})
	c := newTestClient(t, ft, nil)

	got, err := c.ListDomains(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, *queries, 1)
}

func TestListDomains_FullPageThenEmpty(t *testing.T) {
	t.Parallel()

	ft, queries := pagedTransport(makePage("a", 100))
	c := newTestClient(t, ft, nil)

	got, err := c.ListDomains(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 100)
	assert.Len(t, *queries, 2)
}

func TestListDomains_ShortPageIsAuthoritative(t *testing.T) {
	t.Parallel()

	// The third page would have data, but the short second page ends the walk.
	ft, queries := pagedTransport(makePage("a", 100), makePage("b", 5), makePage("c", 100))
	c := newTestClient(t, ft, nil)

	got, err := c.ListDomains(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 105)
	assert.Len(t, *queries, 2)
}

func TestDomainIterator_StreamsAndStopsOnError(t *testing.T) {
	t.Parallel()

	p1 := makePage("a", 100)
	calls := 0
	ft := &fakeTransport{handler: func(method, path string, data any) (any, error) {
		calls++
		if calls == 1 {
			return p1, nil
		}
		return nil, &Error{Kind: KindTransport, Message: "boom"}
	}}
	c := newTestClient(t, ft, nil)

	it := c.Domains()
	n := 0
	for it.Next(context.Background()) {
		assert.Equal(t, p1[n].Domain, it.Domain().Domain)
		n++
	}
	assert.Equal(t, 100, n)
	require.Error(t, it.Err())
	assert.Equal(t, "boom", it.Err().Error())
	assert.False(t, it.Next(context.Background()))
	assert.Equal(t, 2, calls)

	_, err := c.ListDomains(context.Background())
	require.Error(t, err)
}

func TestGetDomain(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{handler: func(method, path string, data any) (any, error) {
		require.Equal(t, "/v1/domains/example.com", path)
		return map[string]any{
			"domain":      "example.com",
			"domainId":    42,
			"status":      "ACTIVE",
			"nameServers": []string{"ns1.example.net"},
			"contactAdmin": map[string]any{
				"email": "admin@example.com",
			},
		}, nil
	}}
	c := newTestClient(t, ft, nil)

	d, err := c.GetDomain(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", d.Domain.Domain)
	assert.Equal(t, int64(42), d.DomainID)
	assert.Equal(t, []string{"ns1.example.net"}, d.NameServers)
	assert.Contains(t, d.Raw, "contactAdmin")
}
