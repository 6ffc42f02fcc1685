// Package config resolves client settings from a YAML file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIKey       string
	APISecret    string
	OTE          bool
	PriceLimit   float64
	PrivacyPrice float64
	Timeout      time.Duration
	UserAgent    string
}

type fileConfig struct {
	APIKey       string   `yaml:"api_key"`
	APISecret    string   `yaml:"api_secret"`
	OTE          bool     `yaml:"ote"`
	PriceLimit   *float64 `yaml:"price_limit"`
	PrivacyPrice *float64 `yaml:"privacy_price"`
	Timeout      string   `yaml:"timeout"`
	UserAgent    string   `yaml:"user_agent"`
}

// DefaultPath is $XDG_CONFIG_HOME/domainctl/config.yaml (or the platform
// equivalent), or "" when no config directory is known.
func DefaultPath() string {
	d, err := os.UserConfigDir()
	if err != nil || d == "" {
		return ""
	}
	return filepath.Join(d, "domainctl", "config.yaml")
}

// Load reads path and then applies GODADDY_* variables from getenv. An empty
// path means DefaultPath, which may be absent; an explicit path must exist.
func Load(path string, getenv func(string) string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	var cfg Config
	if path != "" {
		fc, err := readFile(path)
		switch {
		case err == nil:
			if cfg, err = fc.resolve(); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, err
	}
	return fc, nil
}

func (fc fileConfig) resolve() (Config, error) {
	cfg := Config{
		APIKey:    fc.APIKey,
		APISecret: fc.APISecret,
		OTE:       fc.OTE,
		UserAgent: fc.UserAgent,
	}
	if fc.PriceLimit != nil {
		cfg.PriceLimit = *fc.PriceLimit
	}
	if fc.PrivacyPrice != nil {
		cfg.PrivacyPrice = *fc.PrivacyPrice
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := func(k string) string { return strings.TrimSpace(getenv(k)) }

	if v := env("GODADDY_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := env("GODADDY_API_SECRET"); v != "" {
		cfg.APISecret = v
	}
	if v := env("GODADDY_OTE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GODADDY_OTE: %w", err)
		}
		cfg.OTE = b
	}
	if v := env("GODADDY_PRICE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GODADDY_PRICE_LIMIT: %w", err)
		}
		cfg.PriceLimit = f
	}
	if v := env("GODADDY_PRIVACY_PRICE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GODADDY_PRIVACY_PRICE: %w", err)
		}
		cfg.PrivacyPrice = f
	}
	return nil
}

// DecodeFile decodes a YAML (or JSON) document from path into v. "-" reads
// from r instead.
func DecodeFile(path string, r io.Reader, v any) error {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(r)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
