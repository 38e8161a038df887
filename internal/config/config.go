// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2resume/internal/fileutil"
	"github.com/alnah/go-md2resume/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "md2resume"

// Field length limits.
const (
	MaxStyleLength       = 2048 // name or path
	MaxPathLength        = 4096
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxAddrLength        = 255
	MaxDurationLength    = 20
	MaxHighlightLength   = 50
)

// Page margin bounds in inches; zero means the default.
const (
	minMargin = 0.25
	maxMargin = 3.0
)

// Default values.
const (
	DefaultAddr     = "127.0.0.1:8080"
	DefaultDebounce = 150 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

// Config holds all configuration for resume rendering.
type Config struct {
	Style     string        `yaml:"style"`     // Style name, CSS file path, or "none"
	Highlight string        `yaml:"highlight"` // Chroma style for code blocks
	Timeout   string        `yaml:"timeout"`   // PDF timeout, Go duration syntax
	Output    OutputConfig  `yaml:"output"`
	Assets    AssetsConfig  `yaml:"assets"`
	Page      PageConfig    `yaml:"page"`
	Preview   PreviewConfig `yaml:"preview"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
	PDF        bool   `yaml:"pdf"`        // Write PDF by default
	HTML       bool   `yaml:"html"`       // Keep HTML when writing PDF
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.5)
}

// PreviewConfig defines preview server options.
type PreviewConfig struct {
	Addr     string `yaml:"addr"`     // Listen address
	Debounce string `yaml:"debounce"` // File event debounce, Go duration syntax
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"style", c.Style, MaxStyleLength},
		{"highlight", c.Highlight, MaxHighlightLength},
		{"timeout", c.Timeout, MaxDurationLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"preview.addr", c.Preview.Addr, MaxAddrLength},
		{"preview.debounce", c.Preview.Debounce, MaxDurationLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Page.Size != "" {
		switch strings.ToLower(c.Page.Size) {
		case "letter", "a4", "legal":
		default:
			return fmt.Errorf("%w: page.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.Page.Size)
		}
	}
	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
		default:
			return fmt.Errorf("%w: page.orientation %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	if c.Page.Margin != 0 && (c.Page.Margin < minMargin || c.Page.Margin > maxMargin) {
		return fmt.Errorf("%w: page.margin %.2f (must be between %.2f and %.2f)", ErrInvalidValue, c.Page.Margin, minMargin, maxMargin)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration returns the parsed timeout, or DefaultTimeout when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout, DefaultTimeout, false)
}

// DebounceDuration returns the parsed preview debounce, or DefaultDebounce
// when unset. Zero disables debouncing.
func (c *Config) DebounceDuration() (time.Duration, error) {
	return parseDuration("preview.debounce", c.Preview.Debounce, DefaultDebounce, true)
}

// PreviewAddr returns the configured listen address or DefaultAddr.
func (c *Config) PreviewAddr() string {
	if c.Preview.Addr == "" {
		return DefaultAddr
	}
	return c.Preview.Addr
}

func parseDuration(field, value string, def time.Duration, allowZero bool) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidValue, field, value, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that renders HTML with the
// embedded style.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2resume/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2resume", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
