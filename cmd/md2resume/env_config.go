package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-md2resume/internal/config"
)

// envPrefix marks the variables read by md2resume.
const envPrefix = "MD2RESUME_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2RESUME_CONFIG: config file name or path
	Style      string        // MD2RESUME_STYLE: style name, CSS path, or raw CSS
	Addr       string        // MD2RESUME_ADDR: preview listen address
	Timeout    time.Duration // MD2RESUME_TIMEOUT: PDF generation timeout
}

// knownEnvVars lists valid MD2RESUME_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2RESUME_CONFIG":  true,
	"MD2RESUME_STYLE":   true,
	"MD2RESUME_ADDR":    true,
	"MD2RESUME_TIMEOUT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: getenv("MD2RESUME_CONFIG"),
		Style:      getenv("MD2RESUME_STYLE"),
		Addr:       getenv("MD2RESUME_ADDR"),
	}

	if raw := getenv("MD2RESUME_TIMEOUT"); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			return nil, fmt.Errorf("MD2RESUME_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized MD2RESUME_* variables.
// Helps catch typos like MD2RESUME_STYEL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies environment values into cfg. Environment values
// override the config file; CLI flags are applied afterwards and override
// both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Addr != "" {
		cfg.Preview.Addr = env.Addr
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
}

// loadConfig resolves the configuration file: the --config flag, then
// MD2RESUME_CONFIG, then md2resume.yaml in the standard locations. Only
// the implicit lookup may find nothing.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		return config.LoadConfig(name)
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

// resolveConfig loads the config file, applies the environment, and
// validates the result.
func resolveConfig(flagValue string, getenv func(string) string) (*config.Config, error) {
	envCfg, err := loadEnvConfig(getenv)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(flagValue, envCfg)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseTimeout parses a positive Go duration.
func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout %q", ErrUsage, raw)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, raw)
	}
	return d, nil
}
