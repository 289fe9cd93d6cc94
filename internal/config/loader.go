package config

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names and prefix.
const (
	EnvPrefix = "SQUADRATE_"
	EnvFile   = EnvPrefix + "CONFIG"
)

// listKeys are flat keys whose env values are comma separated lists.
var listKeys = map[string]bool{
	"dismissive_tokens": true,
}

var validate = validator.New()

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SQUADRATE_CONFIG is set
//  3. env (prefix SQUADRATE_)
func Load(_ context.Context) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, wrap(ErrLoadConfig, "read "+path, err)
		}
	}

	// SQUADRATE_BASEROW_TABLE_ID -> baserow_table_id (flat keys).
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, wrap(ErrLoadConfig, "read environment", err)
	}

	cfg := *base
	// Decoding into a non-nil slice overwrites by index; start lists empty.
	if k.Exists("dismissive_tokens") {
		cfg.DismissiveTokens = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, wrap(ErrLoadConfig, "decode", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and cross-field rules.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return wrap(ErrInvalidConfig, "addr must not be empty", nil)
	}
	if err := validate.Struct(cfg); err != nil {
		return wrap(ErrInvalidConfig, "validation failed", err)
	}
	if cfg.StoreBackend == BackendBaserow {
		u, err := url.Parse(cfg.BaserowAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return wrap(ErrInvalidConfig, "baserow_api_url must be an absolute URL", err)
		}
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
