package md2resume

import (
	"errors"

	"github.com/alnah/go-md2resume/internal/assets"
	"github.com/alnah/go-md2resume/internal/frontmatter"
	"github.com/alnah/go-md2resume/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrFrontMatter    = frontmatter.ErrDecode
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrShellRender    = pipeline.ErrShellRender
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
