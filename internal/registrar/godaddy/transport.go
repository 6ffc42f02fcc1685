package godaddy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxResponseBytes = 4 << 20

// Transport issues a single API request. For GET, data is sent as the query
// string when it is a key-value mapping (url.Values or map[string]string) and
// ignored otherwise; for every other method it is JSON-encoded as the body.
// A successful call returns the raw JSON response, which may be empty.
type Transport interface {
	Do(ctx context.Context, method, path string, data any) (json.RawMessage, error)
}

// HTTPTransport is the Transport used against the real API.
type HTTPTransport struct {
	baseURL       string
	authorization string
	userAgent     string
	http          *http.Client
	log           *slog.Logger
}

func newHTTPTransport(opts Options) *HTTPTransport {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPTransport{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		authorization: "sso-key " + opts.Key + ":" + opts.Secret,
		userAgent:     opts.UserAgent,
		http:          hc,
		log:           opts.Logger,
	}
}

func (t *HTTPTransport) Do(ctx context.Context, method, path string, data any) (json.RawMessage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, validationErrorf("godaddy: request path must be a non-empty string")
	}
	if method == "" {
		method = http.MethodGet
	}

	u := t.baseURL + "/" + strings.TrimLeft(path, "/")

	var body io.Reader
	if method == http.MethodGet {
		if q := queryValues(data); len(q) > 0 {
			u += "?" + q.Encode()
		}
	} else if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, validationErrorf("godaddy: encode request body: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, validationErrorf("godaddy: build request: %v", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("authorization", t.authorization)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", t.userAgent)
	req.Header.Set("x-request-id", reqID)

	start := time.Now()
	resp, err := t.http.Do(req)
	if err != nil {
		t.log.DebugContext(ctx, "godaddy request failed",
			"method", method, "path", path, "request_id", reqID, "error", err)
		return nil, &Error{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	t.log.DebugContext(ctx, "godaddy request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, normalizeError(resp.StatusCode, b)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	return json.RawMessage(b), nil
}

type remoteError struct {
	Code          string       `json:"code"`
	Message       string       `json:"message"`
	Fields        []FieldError `json:"fields"`
	RetryAfterSec int          `json:"retryAfterSec"`
}

// normalizeError rebuilds a failed response as an *Error. Structured bodies
// keep their code, message and field list; anything else becomes a transport
// error carrying the HTTP status.
func normalizeError(status int, body []byte) *Error {
	transportMsg := fmt.Sprintf("godaddy: http %d", status)
	if s := strings.TrimSpace(string(body)); s != "" {
		transportMsg += ": " + s
	}

	var re remoteError
	if err := json.Unmarshal(body, &re); err != nil || (re.Code == "" && re.Message == "") {
		return &Error{Kind: KindTransport, Status: status, Message: transportMsg}
	}

	msg := re.Message
	if msg == "" {
		msg = transportMsg
	}
	return &Error{
		Kind:          KindRemote,
		Status:        status,
		Code:          re.Code,
		Message:       msg,
		Fields:        re.Fields,
		RetryAfterSec: re.RetryAfterSec,
	}
}

func queryValues(data any) url.Values {
	switch v := data.(type) {
	case url.Values:
		return v
	case map[string]string:
		q := make(url.Values, len(v))
		for k, s := range v {
			q.Set(k, s)
		}
		return q
	default:
		return nil
	}
}
