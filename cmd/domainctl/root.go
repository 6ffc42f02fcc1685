package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/benithors/domainctl/internal/config"
	"github.com/benithors/domainctl/internal/registrar/godaddy"
	"github.com/spf13/cobra"
)

type cliConfig struct {
	Version string

	// Global flags.
	VersionFlag  bool
	Format       string
	JSON         bool
	NDJSON       bool
	Plain        bool
	ConfigPath   string
	OTE          bool
	PriceLimit   float64
	PrivacyPrice float64
	Timeout      time.Duration
	Quiet        bool
	Verbose      bool

	// Derived runtime state.
	outFormat outputFormat
	logger    *slog.Logger
	settings  config.Config
	client    *godaddy.Client
}

func newRootCmd(ver string) *cobra.Command {
	cfg := &cliConfig{Version: ver}

	root := &cobra.Command{
		Use:           "domainctl",
		Short:         "Manage and buy domains through the GoDaddy API",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &cliError{Code: exitUsage, ShowUsage: true, Cmd: cmd}
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SetFlagErrorFunc(usageErr)

	pf := root.PersistentFlags()
	pf.BoolVar(&cfg.VersionFlag, "version", false, "Print version and exit")
	pf.StringVar(&cfg.Format, "format", "auto", "Output format: auto|table|ndjson|json|plain")
	pf.BoolVar(&cfg.JSON, "json", false, "Alias for --format json")
	pf.BoolVar(&cfg.NDJSON, "ndjson", false, "Alias for --format ndjson (one JSON object per line)")
	pf.BoolVar(&cfg.Plain, "plain", false, "Alias for --format plain (stable tab-separated)")
	pf.StringVar(&cfg.ConfigPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	pf.BoolVar(&cfg.OTE, "ote", false, "Use the OTE test environment")
	pf.Float64Var(&cfg.PriceLimit, "price-limit", 0, "Maximum purchase price without --force")
	pf.Float64Var(&cfg.PrivacyPrice, "privacy-price", 10, "Surcharge added to quoted prices when privacy is requested")
	pf.DurationVar(&cfg.Timeout, "timeout", 8*time.Second, "Per-request timeout")
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Only log errors to stderr")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log requests and purchase steps to stderr")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfg.VersionFlag {
			fmt.Fprintf(os.Stdout, "domainctl %s (%s/%s)\n", cfg.Version, runtime.GOOS, runtime.GOARCH)
			return errExit0
		}

		formatStr, err := cfg.formatFlag()
		if err != nil {
			return usageErr(cmd, err)
		}
		cfg.outFormat = resolveFormat(formatStr, os.Stdout)

		level := slog.LevelWarn
		switch {
		case cfg.Quiet:
			level = slog.LevelError
		case cfg.Verbose:
			level = slog.LevelDebug
		}
		cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		settings, err := config.Load(cfg.ConfigPath, os.Getenv)
		if err != nil {
			return usageErr(cmd, err)
		}
		flags := cmd.Flags()
		if flags.Changed("ote") {
			settings.OTE = cfg.OTE
		}
		if flags.Changed("price-limit") {
			settings.PriceLimit = cfg.PriceLimit
		}
		if flags.Changed("privacy-price") || settings.PrivacyPrice == 0 {
			settings.PrivacyPrice = cfg.PrivacyPrice
		}
		if flags.Changed("timeout") || settings.Timeout == 0 {
			settings.Timeout = cfg.Timeout
		}
		cfg.settings = settings
		return nil
	}

	root.AddCommand(newListCmd(cfg))
	root.AddCommand(newGetCmd(cfg))
	root.AddCommand(newRecordsCmd(cfg))
	root.AddCommand(newNameServersCmd(cfg))
	root.AddCommand(newCheckCmd(cfg))
	root.AddCommand(newAgreementsCmd(cfg))
	root.AddCommand(newSchemaCmd(cfg))
	root.AddCommand(newPurchaseCmd(cfg))

	return root
}

func (cfg *cliConfig) formatFlag() (string, error) {
	formatStr := strings.ToLower(strings.TrimSpace(cfg.Format))
	if formatStr == "" {
		formatStr = "auto"
	}

	aliases := 0
	for _, set := range []bool{cfg.JSON, cfg.NDJSON, cfg.Plain} {
		if set {
			aliases++
		}
	}
	if aliases > 1 {
		return "", fmt.Errorf("flags are mutually exclusive: --json, --ndjson, --plain")
	}
	if formatStr != "auto" && aliases == 1 {
		return "", fmt.Errorf("do not combine --format with --json/--ndjson/--plain")
	}

	switch {
	case cfg.JSON:
		formatStr = "json"
	case cfg.NDJSON:
		formatStr = "ndjson"
	case cfg.Plain:
		formatStr = "plain"
	}
	return formatStr, nil
}

// apiClient builds the API client on first use so that commands which fail
// argument validation never need credentials.
func (cfg *cliConfig) apiClient(cmd *cobra.Command) (*godaddy.Client, error) {
	if cfg.client != nil {
		return cfg.client, nil
	}
	s := cfg.settings
	if s.APIKey == "" || s.APISecret == "" {
		return nil, usageErr(cmd, fmt.Errorf("missing GoDaddy API credentials (set GODADDY_API_KEY and GODADDY_API_SECRET, or api_key/api_secret in the config file)"))
	}
	c, err := godaddy.NewClient(godaddy.Options{
		Key:          s.APIKey,
		Secret:       s.APISecret,
		OTE:          s.OTE,
		PriceLimit:   s.PriceLimit,
		PrivacyPrice: s.PrivacyPrice,
		Timeout:      s.Timeout,
		UserAgent:    userAgent(s.UserAgent, cfg.Version),
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, &cliError{Code: exitFailed, Err: err}
	}
	cfg.client = c
	return c, nil
}

func userAgent(configured, ver string) string {
	if configured != "" {
		return configured
	}
	return "domainctl/" + ver
}
