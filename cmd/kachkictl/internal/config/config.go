package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/guzzzlikz/web-kachki-client/cmd/kachkictl/internal/client"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// KACHKI_SERVER_URL=https://api.example.com/api.
const EnvPrefix = "KACHKI_"

// Config holds kachkictl settings. Source priority: flag > env > file >
// default.
type Config struct {
	ServerURL string `koanf:"server_url"`
	Verbose   bool   `koanf:"verbose"`
}

// DefaultPath returns the default config file location, ~/.kachki/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kachki", "config.yaml")
}

// Load reads configuration from the YAML file at path (when it exists) and
// the KACHKI_* environment, layered over defaults. Flag overrides are
// applied by the caller afterwards.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerURL: "http://localhost:8080/api",
	}

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	// KACHKI_SERVER_URL -> server_url
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// GlobalConfig is the shared state every kachkictl command consumes. It is
// injected into the cobra command context by the root command's
// PersistentPreRunE hook.
type GlobalConfig struct {
	Config   *Config
	Provider *client.Provider
	Log      *zap.Logger
}

type contextKey string

const configKey contextKey = "kachkictl-config"

// InjectConfig adds the global config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves the global config from the command context.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves the global config or panics. Only for command
// RunE functions, where the root command has already injected it.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("kachkictl: config not found in context - this is a bug in kachkictl")
	}
	return cfg
}
