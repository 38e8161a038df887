package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// styleFlags holds stylesheet selection flags.
type styleFlags struct {
	style     string
	noStyle   bool
	assetPath string
	highlight string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// renderFlags holds all flags of the render command.
type renderFlags struct {
	common  commonFlags
	style   styleFlags
	page    pageFlags
	output  string
	pdf     bool
	html    bool
	timeout string
}

// serveFlags holds all flags of the serve command.
type serveFlags struct {
	common    commonFlags
	style     styleFlags
	addr      string
	debounce  string
	logFormat string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addStyleFlags adds stylesheet flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "style name, CSS file path, or raw CSS")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.highlight, "highlight", "", "code highlighting style (chroma)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// buildRenderFlagSet registers the render flags into f.
func buildRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- = stdout)")
	fs.BoolVar(&f.pdf, "pdf", false, "write a PDF instead of HTML")
	fs.BoolVar(&f.html, "html", false, "also write HTML when writing a PDF")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addPageFlags(fs, &f.page)
	return fs
}

// buildServeFlagSet registers the serve flags into f.
func buildServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&f.addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	fs.StringVar(&f.debounce, "debounce", "", "delay before re-rendering a saved file")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format: text, json")
	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := buildRenderFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags and returns positional args.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := buildServeFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printServeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	switch f.logFormat {
	case "text", "json":
	default:
		return nil, nil, fmt.Errorf("%w: --log-format %q (must be text or json)", ErrUsage, f.logFormat)
	}
	return f, fs.Args(), nil
}

// usageError keeps flag.ErrHelp recognizable and marks anything else as
// a usage error.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
