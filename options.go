package md2resume

import "time"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	styleInput     string // name, file path, or raw CSS
	noStyle        bool
	assetPath      string
	highlightStyle string
	resolvedStyle  string // CSS content after resolution
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2resume: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the stylesheet. The value is a style name resolved
// through the asset loader ("resume", "minimal"), a path to a CSS file
// (anything containing a path separator), or raw CSS (anything
// containing "{").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithNoStyle produces pages without any inlined CSS.
func WithNoStyle() Option {
	return func(c *Converter) {
		c.cfg.noStyle = true
	}
}

// WithAssetPath sets a directory whose styles/ and templates/
// subdirectories override the embedded assets.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithHighlightStyle sets the chroma style used for fenced code blocks.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}
