package md2resume

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	_, ok := paperSizes[strings.ToLower(size)]
	return ok
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// Metadata is the identity record read from the resume's front matter.
// Empty fields are absent.
type Metadata struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
	Email   string `yaml:"email"`
	GitHub  string `yaml:"github"`
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string        // Resume text: optional front matter + Markdown body
	SourceDir string        // Directory for resolving relative image and link paths (optional)
	CSS       string        // Extra CSS appended after the converter style (optional)
	PDF       bool          // Also render the page to PDF
	Page      *PageSettings // PDF page settings (optional, nil = defaults)
}

// Result holds the output of a conversion.
type Result struct {
	HTML []byte   // Complete HTML document
	Name string   // Resolved name as HTML (metadata name escaped, else first H1 markup)
	Meta Metadata // Decoded front matter
	PDF  []byte   // Nil unless Input.PDF was set
}
