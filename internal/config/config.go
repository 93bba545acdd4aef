// Package config loads process configuration for both the API server and the
// terminal client by layering defaults, an optional YAML file, and
// environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds every tunable. Server fields are ignored by the client and
// vice versa.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the dev API server listen address.
	Addr string `koanf:"addr"`

	// DatabaseDSN is the postgres connection string for the dev API server.
	DatabaseDSN string `koanf:"database_dsn"`

	// JWTSecret signs the access and refresh tokens the dev server issues.
	JWTSecret string `koanf:"jwt_secret"`

	// AccessTokenTTLMinutes bounds issued access tokens.
	AccessTokenTTLMinutes int `koanf:"access_token_ttl_minutes"`

	// APIBaseURL is where the client sends requests.
	APIBaseURL string `koanf:"api_base_url"`

	// SessionFile is where the client persists tokens and the cached user.
	SessionFile string `koanf:"session_file"`
}

// defaults returns the baseline configuration.
func defaults() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  "localhost:8080",
		JWTSecret:             "dev-secret-change-me",
		AccessTokenTTLMinutes: 60,
		APIBaseURL:            "http://localhost:8080",
		SessionFile:           "eprofile-session.json",
	}
}

// Load builds a Config. Precedence (low to high):
//  1. defaults
//  2. YAML file named by EPROFILE_CONFIG, when set
//  3. EPROFILE_* environment variables (EPROFILE_API_BASE_URL → api_base_url)
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("EPROFILE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("EPROFILE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "eprofile_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api_base_url must not be empty")
	}
	return &cfg, nil
}
