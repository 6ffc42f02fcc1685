package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/benithors/domainctl/internal/availability"
	"github.com/benithors/domainctl/internal/domain"
	"github.com/benithors/domainctl/internal/registrar/godaddy"
	"golang.org/x/term"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatNDJSON
	formatJSON
	formatPlain
)

func resolveFormat(flagVal string, stdout *os.File) outputFormat {
	switch strings.ToLower(strings.TrimSpace(flagVal)) {
	case "table":
		return formatTable
	case "ndjson":
		return formatNDJSON
	case "json":
		return formatJSON
	case "plain":
		return formatPlain
	case "auto", "":
	default:
		// Unknown format: fall back to auto.
	}

	if term.IsTerminal(int(stdout.Fd())) {
		return formatTable
	}
	return formatNDJSON
}

func formatPrice(price float64, hasPrice bool, currency string) string {
	if !hasPrice {
		return ""
	}
	s := strconv.FormatFloat(price, 'f', 2, 64)
	if currency != "" {
		s += " " + currency
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// rowWriter renders a stream of values. JSON output is buffered into one
// array; every other format is written as values arrive.
type rowWriter[T any] struct {
	w      io.Writer
	format outputFormat
	header string
	row    func(T) []string

	tw      *tabwriter.Writer
	started bool
	buf     []T
}

func newRowWriter[T any](w io.Writer, format outputFormat, header string, row func(T) []string) *rowWriter[T] {
	return &rowWriter[T]{w: w, format: format, header: header, row: row}
}

func (rw *rowWriter[T]) Write(v T) error {
	switch rw.format {
	case formatJSON:
		rw.buf = append(rw.buf, v)
		return nil
	case formatNDJSON:
		return json.NewEncoder(rw.w).Encode(v)
	case formatPlain:
		_, err := fmt.Fprintln(rw.w, strings.Join(rw.row(v), "\t"))
		return err
	default:
		if rw.tw == nil {
			rw.tw = domain.NewTabWriter(rw.w)
		}
		if !rw.started {
			rw.started = true
			fmt.Fprintln(rw.tw, rw.header)
		}
		_, err := fmt.Fprintln(rw.tw, strings.Join(rw.row(v), "\t"))
		return err
	}
}

func (rw *rowWriter[T]) Flush() error {
	switch {
	case rw.format == formatJSON:
		if rw.buf == nil {
			rw.buf = []T{}
		}
		enc := json.NewEncoder(rw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(rw.buf)
	case rw.tw != nil:
		return rw.tw.Flush()
	}
	return nil
}

func writeRows[T any](w io.Writer, format outputFormat, header string, rows []T, row func(T) []string) error {
	rw := newRowWriter(w, format, header, row)
	for _, r := range rows {
		if err := rw.Write(r); err != nil {
			return err
		}
	}
	return rw.Flush()
}

// writeValue prints a single document as indented JSON (or one line for ndjson).
func writeValue(w io.Writer, format outputFormat, v any) error {
	enc := json.NewEncoder(w)
	if format != formatNDJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

const domainHeader = "DOMAIN\tSTATUS\tEXPIRES\tRENEW\tPRIVACY\tLOCKED"

func domainRow(d godaddy.Domain) []string {
	return []string{d.Domain, d.Status, d.Expires, yesNo(d.RenewAuto), yesNo(d.Privacy), yesNo(d.Locked)}
}

const recordHeader = "TYPE\tNAME\tDATA\tTTL"

func recordRow(r godaddy.Record) []string {
	return []string{r.Type, r.Name, r.Data, strconv.Itoa(r.TTL)}
}

const agreementHeader = "KEY\tTITLE\tURL"

func agreementRow(a godaddy.Agreement) []string {
	return []string{a.AgreementKey, a.Title, a.URL}
}

const resultHeader = "DOMAIN\tSTATUS\tPRICE\tPERIOD\tDEFINITIVE\tDETAIL"

func resultRow(r availability.Result) []string {
	period := ""
	if r.Period > 0 {
		period = strconv.Itoa(r.Period) + "y"
	}
	return []string{
		r.Domain,
		string(r.Status),
		formatPrice(r.Price, r.HasPrice, r.Currency),
		period,
		yesNo(r.Definitive),
		r.Error,
	}
}
