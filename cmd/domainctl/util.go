package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/benithors/domainctl/internal/domain"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

func readDomainsFromArgsAndStdin(args []string, stdin *os.File) ([]string, error) {
	var out []string

	for _, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		out = append(out, a)
	}

	if term.IsTerminal(int(stdin.Fd())) {
		// Nothing piped in.
		return out, nil
	}

	stdinDomains, err := domain.ReadLines(stdin)
	if err != nil {
		return nil, err
	}
	out = append(out, stdinDomains...)
	return out, nil
}

// normalizeArg normalizes a domain given on the command line.
func normalizeArg(s string) (string, error) {
	d, err := domain.Normalize(s)
	if err != nil {
		return "", fmt.Errorf("invalid domain %q: %w", s, err)
	}
	return d, nil
}

// optionalBool returns nil unless the flag was set explicitly.
func optionalBool(flags *pflag.FlagSet, name string, v bool) *bool {
	if !flags.Changed(name) {
		return nil
	}
	return &v
}

// parseExtra turns key=value pairs into body fields. Values that parse as
// JSON scalars (numbers, true/false) keep their type.
func parseExtra(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q (use key=value)", p)
		}
		switch {
		case v == "true" || v == "false":
			out[k] = v == "true"
		default:
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				out[k] = n
			} else {
				out[k] = v
			}
		}
	}
	return out, nil
}
