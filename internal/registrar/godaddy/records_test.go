package godaddy

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPaths(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{handler: func(method, path string, data any) (any, error) {
		if method == http.MethodGet {
			return []Record{}, nil
		}
		return nil, nil
	}}
	c := newTestClient(t, ft, nil)
	ctx := context.Background()
	recs := []Record{{Data: "1.2.3.4", TTL: 600}}

	_, err := c.GetRecords(ctx, "example.com", "", "")
	require.NoError(t, err)
	_, err = c.GetRecords(ctx, "example.com", "A", "")
	require.NoError(t, err)
	_, err = c.GetRecords(ctx, "example.com", "A", "www")
	require.NoError(t, err)
	require.NoError(t, c.ReplaceRecords(ctx, "example.com", "", "", recs))
	require.NoError(t, c.ReplaceRecords(ctx, "example.com", "TXT", "@", recs))
	require.NoError(t, c.UpdateRecords(ctx, "example.com", "A", "@", recs))
	require.NoError(t, c.UpdateNameServers(ctx, "example.com", nil))

	assert.Equal(t, []string{
		"GET /v1/domains/example.com/records",
		"GET /v1/domains/example.com/records",
		"GET /v1/domains/example.com/records/A/www",
		"PUT /v1/domains/example.com/records",
		"PUT /v1/domains/example.com/records/TXT/@",
		"PATCH /v1/domains/example.com/A/@",
		"PATCH /v1/domains/example.com",
	}, ft.paths())

	put, ok := ft.lastCall(http.MethodPut, "/v1/domains/example.com/records/TXT/@")
	require.True(t, ok)
	assert.Equal(t, recs, put.Data)

	ns, ok := ft.lastCall(http.MethodPatch, "/v1/domains/example.com")
	require.True(t, ok)
	assert.Equal(t, map[string][]string{"nameServers": {}}, ns.Data)
}

func TestUpdateRecords_RequiresTypeAndName(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{handler: func(string, string, any) (any, error) { return nil, nil }}
	c := newTestClient(t, ft, nil)

	err := c.UpdateRecords(context.Background(), "example.com", "A", "", nil)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, ft.paths())
}

func TestGetARecord(t *testing.T) {
	t.Parallel()

	one := []Record{{Type: "A", Name: "@", Data: "198.51.100.4"}}
	two := []Record{{Type: "A", Name: "@", Data: "198.51.100.4"}, {Type: "A", Name: "@", Data: "198.51.100.5"}}

	cases := []struct {
		name     string
		resp     any
		err      error
		want     string
		wantErr  error
		wantKind Kind
	}{
		{name: "single", resp: one, want: "198.51.100.4"},
		{name: "none", resp: []Record{}, wantErr: ErrRecordNotFound, wantKind: KindRemote},
		{name: "ambiguous", resp: two, wantErr: ErrMultipleRecords, wantKind: KindAmbiguous},
		{name: "lookup failed", err: &Error{Kind: KindTransport, Message: "timeout"}, wantKind: KindTransport},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ft := &fakeTransport{handler: func(method, path string, data any) (any, error) {
				assert.Equal(t, "/v1/domains/example.com/records/A/@", path)
				return tc.resp, tc.err
			}}
			c := newTestClient(t, ft, nil)

			got, err := c.GetARecord(context.Background(), "example.com")
			if tc.wantKind == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			require.Error(t, err)
			assert.Empty(t, got)
			assert.Equal(t, tc.wantKind, KindOf(err))
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "err=%v", err)
			}
		})
	}
}

func TestGetAvailability_PriceConversion(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{handler: func(method, path string, data any) (any, error) {
		assert.Equal(t, "/v1/domains/available", path)
		assert.Equal(t, "example.com", data.(url.Values).Get("domain"))
		return map[string]any{"available": true, "price": 12_000_000, "currency": "USD", "period": 1}, nil
	}}
	c := newTestClient(t, ft, nil)
	ctx := context.Background()

	plain, err := c.GetAvailability(ctx, "example.com", false)
	require.NoError(t, err)
	assert.True(t, plain.Available)
	assert.True(t, plain.HasPrice)
	assert.InDelta(t, 12.00, plain.Price, 1e-9)

	private, err := c.GetAvailability(ctx, "example.com", true)
	require.NoError(t, err)
	assert.InDelta(t, 22.00, private.Price, 1e-9)

	check, err := c.CheckDomain(ctx, "example.com", true)
	require.NoError(t, err)
	assert.InDelta(t, 22.00, check.Price, 1e-9)
	assert.Equal(t, "USD", check.Currency)
}

func TestGetAvailability_NoPrice(t *testing.T) {
	t.Parallel()

	ft := &fakeTransport{handler: func(string, string, any) (any, error) {
		return map[string]any{"available": false, "domain": "taken.com"}, nil
	}}
	c := newTestClient(t, ft, nil)

	a, err := c.GetAvailability(context.Background(), "taken.com", true)
	require.NoError(t, err)
	assert.False(t, a.Available)
	assert.False(t, a.HasPrice)
	assert.Zero(t, a.Price)
}

func TestGetAgreementKeys(t *testing.T) {
	t.Parallel()

	var seen []url.Values
	ft := &fakeTransport{handler: func(method, path string, data any) (any, error) {
		assert.Equal(t, "/v1/domains/agreements", path)
		seen = append(seen, data.(url.Values))
		return []Agreement{{AgreementKey: "DNRA"}, {AgreementKey: "DNPA"}}, nil
	}}
	c := newTestClient(t, ft, nil)

	keys, err := c.GetAgreementKeys(context.Background(), "shop.co.uk", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"DNRA", "DNPA"}, keys)

	_, err = c.GetAgreementKeys(context.Background(), "shop.com", true)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "co.uk", seen[0].Get("tlds"))
	assert.Equal(t, "false", seen[0].Get("privacy"))
	assert.Equal(t, "com", seen[1].Get("tlds"))
	assert.Equal(t, "true", seen[1].Get("privacy"))
}

func TestTLD(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "com", TLD("example.com"))
	assert.Equal(t, "co.uk", TLD("example.co.uk"))
}
