package main

import (
	"errors"
	"os"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/config"
)

// Exit codes for md2resume CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2resume.ErrBrowserConnect) ||
		errors.Is(err, md2resume.ErrPageCreate) ||
		errors.Is(err, md2resume.ErrPageLoad) ||
		errors.Is(err, md2resume.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2resume.ErrFrontMatter) ||
		errors.Is(err, md2resume.ErrInvalidPageSize) ||
		errors.Is(err, md2resume.ErrInvalidOrientation) ||
		errors.Is(err, md2resume.ErrInvalidMargin) ||
		errors.Is(err, md2resume.ErrStyleNotFound) ||
		errors.Is(err, md2resume.ErrInvalidAssetPath) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
