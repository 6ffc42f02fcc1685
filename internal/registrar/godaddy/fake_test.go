package godaddy

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Method string
	Path   string
	Data   any
}

// fakeTransport answers requests from a handler and records every call.
type fakeTransport struct {
	mu      sync.Mutex
	calls   []recordedCall
	handler func(method, path string, data any) (any, error)
}

func (f *fakeTransport) Do(_ context.Context, method, path string, data any) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Method: method, Path: path, Data: data})
	f.mu.Unlock()

	v, err := f.handler(method, path, data)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (f *fakeTransport) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func (f *fakeTransport) lastCall(method, path string) (recordedCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].Method == method && f.calls[i].Path == path {
			return f.calls[i], true
		}
	}
	return recordedCall{}, false
}

type mockIPResolver struct {
	mock.Mock
}

func (m *mockIPResolver) PublicIPv4(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 890_000_000, time.UTC)

func newTestClient(t *testing.T, ft *fakeTransport, mod func(*Options)) *Client {
	t.Helper()

	opts := Options{
		Transport:  ft,
		IPResolver: &mockIPResolver{},
		Now:        func() time.Time { return fixedNow },
	}
	if mod != nil {
		mod(&opts)
	}
	c, err := NewClient(opts)
	require.NoError(t, err)
	return c
}
