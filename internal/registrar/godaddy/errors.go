package godaddy

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can tell local policy decisions apart
// from remote rejections and network trouble.
type Kind string

const (
	// KindValidation is malformed caller input detected before any request.
	KindValidation Kind = "validation"

	// KindTransport is a network or HTTP failure without a structured body.
	KindTransport Kind = "transport"

	// KindRemote is a structured error returned by the registrar.
	KindRemote Kind = "remote"

	// KindPolicy is a local business-rule refusal (unavailable, over the price limit).
	KindPolicy Kind = "policy"

	// KindAmbiguous means a lookup expected one result and found several.
	KindAmbiguous Kind = "ambiguous"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDomainUnavailable  = errors.New("domain not available")
	ErrPriceLimitExceeded = errors.New("price limit exceeded")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrMultipleRecords    = errors.New("more than one record found")
	ErrRecordNotFound     = errors.New("record not found")
)

// FieldError describes one invalid field of a rejected request body.
type FieldError struct {
	Path        string `json:"path"`
	PathRelated string `json:"pathRelated,omitempty"`
	Code        string `json:"code,omitempty"`
	Message     string `json:"message,omitempty"`

	// Schema holds the purchase schema's declaration for Path, when known.
	Schema map[string]any `json:"schema,omitempty"`
}

// Error is the normalized error returned by every client operation. Only the
// recognized attributes of the registrar's error body are kept.
type Error struct {
	Kind          Kind
	Status        int
	Code          string
	Message       string
	Fields        []FieldError
	RetryAfterSec int

	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return string(e.Kind) + " error"
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsPolicy reports whether err is a local refusal that a caller may override
// (for example by retrying with Force) rather than a failure to retry as-is.
func IsPolicy(err error) bool {
	return KindOf(err) == KindPolicy
}

func validationErrorf(format string, args ...any) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrInvalidInput,
	}
}
