package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/benithors/domainctl/internal/availability"
	"github.com/spf13/cobra"
)

func newCheckCmd(cfg *cliConfig) *cobra.Command {
	var (
		privacy     bool
		only        string
		sortBy      string
		strict      bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "check [domain...]",
		Short: "Check availability and price for domains (args and/or stdin)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDomains, err := readDomainsFromArgsAndStdin(args, os.Stdin)
			if err != nil {
				return &cliError{Code: exitFailed, Err: fmt.Errorf("failed to read domains: %w", err), Cmd: cmd}
			}
			if len(inputDomains) == 0 {
				return &cliError{Code: exitUsage, ShowUsage: true, Cmd: cmd}
			}

			onlyVal := strings.ToLower(strings.TrimSpace(only))
			switch onlyVal {
			case "", "all":
				onlyVal = "all"
			case "available", "taken", "unknown":
			default:
				return usageErr(cmd, fmt.Errorf("invalid --only %q (use all|available|taken|unknown)", only))
			}

			sortVal := strings.ToLower(strings.TrimSpace(sortBy))
			switch sortVal {
			case "", "input":
				sortVal = "input"
			case "domain", "status", "price":
			default:
				return usageErr(cmd, fmt.Errorf("invalid --sort %q (use input|domain|status|price)", sortBy))
			}

			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}
			checker := availability.NewChecker(availability.Options{
				Registrar:   c,
				Privacy:     privacy,
				Concurrency: concurrency,
			})
			results := checker.CheckDomains(cmd.Context(), inputDomains)

			strictFail := false
			if strict {
				for _, r := range results {
					if r.Status == availability.StatusUnknown || r.Error != "" {
						strictFail = true
						break
					}
				}
			}

			if onlyVal != "all" {
				filtered := results[:0]
				for _, r := range results {
					if string(r.Status) == onlyVal {
						filtered = append(filtered, r)
					}
				}
				results = filtered
			}

			switch sortVal {
			case "domain":
				sort.SliceStable(results, func(i, j int) bool { return results[i].Domain < results[j].Domain })
			case "status":
				order := map[availability.Status]int{
					availability.StatusAvailable: 0,
					availability.StatusTaken:     1,
					availability.StatusUnknown:   2,
				}
				sort.SliceStable(results, func(i, j int) bool {
					return order[results[i].Status] < order[results[j].Status]
				})
			case "price":
				// Unpriced results sort last.
				sort.SliceStable(results, func(i, j int) bool {
					a, b := results[i], results[j]
					if a.HasPrice != b.HasPrice {
						return a.HasPrice
					}
					return a.Price < b.Price
				})
			}

			if err := writeRows(os.Stdout, cfg.outFormat, resultHeader, results, resultRow); err != nil {
				return outputErr(err)
			}
			if strictFail {
				return &cliError{Code: exitFailed}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().BoolVar(&privacy, "privacy", false, "Include the privacy surcharge in prices")
	cmd.Flags().StringVar(&only, "only", "all", "Filter output: all|available|taken|unknown")
	cmd.Flags().StringVar(&sortBy, "sort", "input", "Sort output: input|domain|status|price")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any result is unknown")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Max concurrent availability requests")

	return cmd
}
