package main

import (
	"fmt"
	"os"

	"github.com/benithors/domainctl/internal/config"
	"github.com/benithors/domainctl/internal/registrar/godaddy"
	"github.com/spf13/cobra"
)

func newPurchaseCmd(cfg *cliConfig) *cobra.Command {
	var (
		contactFile string
		roleFiles   = map[string]*string{
			"contact-admin":      new(string),
			"contact-billing":    new(string),
			"contact-registrant": new(string),
			"contact-tech":       new(string),
		}
		privacy     bool
		force       bool
		buyerIP     string
		period      int
		renewAuto   bool
		nameServers []string
		extra       []string
	)

	cmd := &cobra.Command{
		Use:   "purchase <domain> --contact contact.yaml",
		Short: "Buy a domain, accepting its legal agreements",
		Long: "Buy a domain. The purchase is refused when the domain is not available or\n" +
			"its price is above --price-limit (exit 3); --force skips the price check.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := normalizeArg(args[0])
			if err != nil {
				return usageErr(cmd, err)
			}
			if contactFile == "" {
				return usageErr(cmd, fmt.Errorf("--contact is required"))
			}
			ex, err := parseExtra(extra)
			if err != nil {
				return usageErr(cmd, err)
			}

			req := godaddy.PurchaseRequest{
				Domain:      d,
				BuyerIP:     buyerIP,
				Privacy:     optionalBool(cmd.Flags(), "privacy", privacy),
				Force:       force,
				Period:      period,
				NameServers: nameServers,
				RenewAuto:   optionalBool(cmd.Flags(), "renew-auto", renewAuto),
				Extra:       ex,
			}
			if err := config.DecodeFile(contactFile, os.Stdin, &req.Contact); err != nil {
				return usageErr(cmd, err)
			}
			roles := map[string]**godaddy.Contact{
				"contact-admin":      &req.ContactAdmin,
				"contact-billing":    &req.ContactBilling,
				"contact-registrant": &req.ContactRegistrant,
				"contact-tech":       &req.ContactTech,
			}
			for name, dst := range roles {
				path := *roleFiles[name]
				if path == "" {
					continue
				}
				var c godaddy.Contact
				if err := config.DecodeFile(path, os.Stdin, &c); err != nil {
					return usageErr(cmd, err)
				}
				*dst = &c
			}

			c, err := cfg.apiClient(cmd)
			if err != nil {
				return err
			}
			receipt, err := c.PurchaseDomain(cmd.Context(), req)
			if err != nil {
				return apiErr(err)
			}
			return outputErr(writeValue(os.Stdout, cfg.outFormat, receipt))
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	f := cmd.Flags()
	f.StringVar(&contactFile, "contact", "", "Contact file (YAML or JSON, - for stdin) used for every role")
	for _, name := range []string{"contact-admin", "contact-billing", "contact-registrant", "contact-tech"} {
		f.StringVar(roleFiles[name], name, "", "Override the contact for this role")
	}
	f.BoolVar(&privacy, "privacy", false, "Request WHOIS privacy (counts toward the price limit)")
	f.BoolVar(&force, "force", false, "Purchase even above the price limit")
	f.StringVar(&buyerIP, "ip", "", "Consenting IP address (default: looked up)")
	f.IntVar(&period, "period", 0, "Registration period in years")
	f.BoolVar(&renewAuto, "renew-auto", false, "Enable automatic renewal")
	f.StringSliceVar(&nameServers, "nameserver", nil, "Nameserver (repeatable)")
	f.StringArrayVar(&extra, "set", nil, "Extra body field key=value (repeatable)")

	return cmd
}

func newAgreementsCmd(cfg *cliConfig) *cobra.Command {
	var privacy bool

	cmd := &cobra.Command{
		Use:   "agreements <domain>",
		Short: "List the legal agreements a purchase must accept",
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
			agreements, err := c.GetAgreements(cmd.Context(), d, privacy)
			if err != nil {
				return apiErr(err)
			}
			return outputErr(writeRows(os.Stdout, cfg.outFormat, agreementHeader, agreements, agreementRow))
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().BoolVar(&privacy, "privacy", false, "Include the privacy agreements")
	return cmd
}

func newSchemaCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <domain>",
		Short: "Print the purchase schema for a domain's TLD",
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
			schema, err := c.GetPurchaseSchema(cmd.Context(), d)
			if err != nil {
				return apiErr(err)
			}
			return outputErr(writeValue(os.Stdout, cfg.outFormat, schema))
		},
	}
	cmd.SetFlagErrorFunc(usageErr)
	return cmd
}
