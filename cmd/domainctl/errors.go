package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/benithors/domainctl/internal/registrar/godaddy"
	"github.com/spf13/cobra"
)

// Exit codes. Scripts rely on these; keep them stable.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
	exitPolicy = 3
)

type cliError struct {
	Code      int
	Err       error
	ShowUsage bool
	Cmd       *cobra.Command
}

func (e *cliError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *cliError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var errExit0 = &cliError{Code: exitOK}

func usageErr(cmd *cobra.Command, err error) error {
	return &cliError{Code: exitUsage, Err: err, ShowUsage: true, Cmd: cmd}
}

// apiErr maps a client error to an exit code: policy refusals (unavailable,
// over the price limit) get their own so callers can retry with --force.
func apiErr(err error) error {
	if err == nil {
		return nil
	}
	switch godaddy.KindOf(err) {
	case godaddy.KindPolicy:
		return &cliError{Code: exitPolicy, Err: err}
	case godaddy.KindValidation:
		return &cliError{Code: exitUsage, Err: err}
	default:
		return &cliError{Code: exitFailed, Err: err}
	}
}

func outputErr(err error) error {
	if err == nil {
		return nil
	}
	return &cliError{Code: exitFailed, Err: fmt.Errorf("failed to write output: %w", err)}
}

func printFieldErrors(w io.Writer, err error) {
	var e *godaddy.Error
	if !errors.As(err, &e) {
		return
	}
	for _, f := range e.Fields {
		line := "  " + f.Path
		if f.Message != "" {
			line += ": " + f.Message
		}
		if d, ok := f.Schema["description"].(string); ok && d != "" {
			line += fmt.Sprintf(" (%s)", d)
		}
		fmt.Fprintln(w, line)
	}
}
