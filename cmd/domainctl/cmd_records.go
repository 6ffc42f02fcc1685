package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/benithors/domainctl/internal/config"
	"github.com/benithors/domainctl/internal/registrar/godaddy"
	"github.com/spf13/cobra"
)

func newRecordsCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Read and write DNS records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &cliError{Code: exitUsage, ShowUsage: true, Cmd: cmd}
		},
	}
	cmd.SetFlagErrorFunc(usageErr)

	cmd.AddCommand(newRecordsGetCmd(cfg))
	cmd.AddCommand(newRecordsReplaceCmd(cfg))
	cmd.AddCommand(newRecordsUpdateCmd(cfg))
	cmd.AddCommand(newRecordsACmd(cfg))
	return cmd
}

// scopeArgs parses "<domain> [type name]".
func scopeArgs(cmd *cobra.Command, args []string) (d, typ, name string, err error) {
	if len(args) == 2 {
		return "", "", "", usageErr(cmd, fmt.Errorf("give both type and name, or neither"))
	}
	d, err = normalizeArg(args[0])
	if err != nil {
		return "", "", "", usageErr(cmd, err)
	}
	if len(args) == 3 {
		typ, name = strings.ToUpper(args[1]), args[2]
	}
	return d, typ, name, nil
}

func readRecords(cmd *cobra.Command, file string) ([]godaddy.Record, error) {
	if file == "" {
		return nil, usageErr(cmd, fmt.Errorf("--file is required (YAML or JSON list of records, - for stdin)"))
	}
	var records []godaddy.Record
	if err := config.DecodeFile(file, os.Stdin, &records); err != nil {
		return nil, usageErr(cmd, err)
	}
	return records, nil
}

func newRecordsGetCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <domain> [type name]",
		Short: "List records, optionally narrowed to one type and name",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, typ, name, err := scopeArgs(cmd, args)
			if err != nil {
				return err
			}
			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}
			records, err := c.GetRecords(cmd.Context(), d, typ, name)
			if err != nil {
				return apiErr(err)
			}
			return outputErr(writeRows(os.Stdout, cfg.outFormat, recordHeader, records, recordRow))
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	return cmd
}

func newRecordsReplaceCmd(cfg *cliConfig) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "replace <domain> [type name] --file records.yaml",
		Short: "Replace every record at the given scope",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, typ, name, err := scopeArgs(cmd, args)
			if err != nil {
				return err
			}
			records, err := readRecords(cmd, file)
			if err != nil {
				return err
			}
			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}
			return apiErr(c.ReplaceRecords(cmd.Context(), d, typ, name, records))
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Records file (YAML or JSON, - for stdin)")
	return cmd
}

func newRecordsUpdateCmd(cfg *cliConfig) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update <domain> <type> <name> --file records.yaml",
		Short: "Patch the records of one type and name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, typ, name, err := scopeArgs(cmd, args)
			if err != nil {
				return err
			}
			records, err := readRecords(cmd, file)
			if err != nil {
				return err
			}
			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}
			return apiErr(c.UpdateRecords(cmd.Context(), d, typ, name, records))
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Records file (YAML or JSON, - for stdin)")
	return cmd
}

func newRecordsACmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "a <domain>",
		Short: "Print the address of the apex A record",
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
			ip, err := c.GetARecord(cmd.Context(), d)
			if err != nil {
				return apiErr(err)
			}
			fmt.Fprintln(os.Stdout, ip)
			return nil
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	return cmd
}

func newNameServersCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nameservers <domain> [nameserver...]",
		Short: "Set the nameservers of a domain (none resets to the registrar default)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := normalizeArg(args[0])
			if err != nil {
				return usageErr(cmd, err)
			}
			ns := make([]string, 0, len(args)-1)
			for _, a := range args[1:] {
				n, err := normalizeArg(a)
				if err != nil {
					return usageErr(cmd, err)
				}
				ns = append(ns, n)
			}
			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}
			return apiErr(c.UpdateNameServers(cmd.Context(), d, ns))
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	return cmd
}
