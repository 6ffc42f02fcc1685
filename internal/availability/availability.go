package availability

import (
	"context"
	"strings"
	"time"

	"github.com/benithors/domainctl/internal/domain"
	"github.com/benithors/domainctl/internal/registrar"
	"golang.org/x/sync/errgroup"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusUnknown   Status = "unknown"
)

type Result struct {
	Input      string  `json:"input,omitempty"`
	Domain     string  `json:"domain"`
	TLD        string  `json:"tld,omitempty"`
	Status     Status  `json:"status"`
	Definitive bool    `json:"definitive"`
	Price      float64 `json:"price,omitempty"`
	HasPrice   bool    `json:"-"`
	Currency   string  `json:"currency,omitempty"`
	Period     int     `json:"period,omitempty"`
	Privacy    bool    `json:"privacy,omitempty"`
	Registrar  string  `json:"registrar"`
	Error      string  `json:"error,omitempty"`
	CheckedAt  string  `json:"checked_at"`
	DurationMs int64   `json:"duration_ms"`
}

type Options struct {
	Registrar   registrar.Client
	Privacy     bool
	Concurrency int
}

// Checker fans independent availability checks out over a bounded worker
// pool. Each check is one request; results keep input order.
type Checker struct {
	opts Options
}

func NewChecker(opts Options) *Checker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Checker{opts: opts}
}

func (c *Checker) CheckDomains(ctx context.Context, inputs []string) []Result {
	out := make([]Result, len(inputs))

	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)
	for idx, input := range inputs {
		idx, input := idx, input // per-iteration copy; module targets go 1.21 loop semantics
		g.Go(func() error {
			out[idx] = c.checkOne(ctx, input)
			return nil
		})
	}
	// checkOne records failures in the Result.
	_ = g.Wait()
	return out
}

func (c *Checker) checkOne(ctx context.Context, input string) (r Result) {
	start := time.Now()
	r = Result{
		Input:     strings.TrimSpace(input),
		Status:    StatusUnknown,
		Privacy:   c.opts.Privacy,
		Registrar: c.opts.Registrar.Name(),
	}
	defer func() {
		r.CheckedAt = time.Now().UTC().Format(time.RFC3339Nano)
		r.DurationMs = time.Since(start).Milliseconds()
	}()

	ascii, err := domain.Normalize(input)
	if err != nil {
		r.Domain = r.Input
		r.Error = err.Error()
		return r
	}
	r.Domain = ascii
	r.TLD = domain.TLD(ascii)
	if r.Input == ascii {
		r.Input = ""
	}

	dc, err := c.opts.Registrar.CheckDomain(ctx, ascii, c.opts.Privacy)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Status = StatusTaken
	if dc.Available {
		r.Status = StatusAvailable
	}
	r.Definitive = dc.Definitive
	r.Price = dc.Price
	r.HasPrice = dc.HasPrice
	r.Currency = dc.Currency
	r.Period = dc.Period
	return r
}
