package main

import (
	"os"

	"github.com/benithors/domainctl/internal/registrar/godaddy"
	"github.com/spf13/cobra"
)

func newListCmd(cfg *cliConfig) *cobra.Command {
	var eager bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the domains in the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}

			if eager {
				domains, err := c.ListDomains(cmd.Context())
				if err != nil {
					return apiErr(err)
				}
				if err := writeRows(os.Stdout, cfg.outFormat, domainHeader, domains, domainRow); err != nil {
					return outputErr(err)
				}
				return nil
			}

			rw := newRowWriter(os.Stdout, cfg.outFormat, domainHeader, domainRow)
			it := c.Domains()
			for it.Next(cmd.Context()) {
				if err := rw.Write(it.Domain()); err != nil {
					return outputErr(err)
				}
			}
			if err := rw.Flush(); err != nil {
				return outputErr(err)
			}
			return apiErr(it.Err())
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().BoolVar(&eager, "eager", false, "Fetch every page before printing")

	return cmd
}

func newGetCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <domain>",
		Short: "Show one domain of the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := normalizeArg(args[0])
			if err != nil {
				return usageErr(cmd, err)
			}
			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}

			detail, err := c.GetDomain(cmd.Context(), d)
			if err != nil {
				return apiErr(err)
			}
			if cfg.outFormat == formatTable || cfg.outFormat == formatPlain {
				return outputErr(writeRows(os.Stdout, cfg.outFormat, domainHeader, []godaddy.Domain{detail.Domain}, domainRow))
			}
			return outputErr(writeValue(os.Stdout, cfg.outFormat, detail.Raw))
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	return cmd
}
