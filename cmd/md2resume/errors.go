package main

import (
	"context"
	"errors"
	"os"
	"syscall"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/assets"
	"github.com/alnah/go-md2resume/internal/config"
	"github.com/alnah/go-md2resume/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input file")
	ErrReadMarkdown   = errors.New("failed to read markdown")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2resume.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		dir, _ := os.UserConfigDir()
		return hints.ForConfigNotFound(dir)
	case errors.Is(err, md2resume.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, syscall.EADDRINUSE):
		return hints.ForAddrInUse()
	}
	return ""
}
