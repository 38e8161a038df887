package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/config"
	"github.com/alnah/go-md2resume/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// stdinArg selects standard input as the resume source, or standard
// output as the destination.
const stdinArg = "-"

// runRender executes the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	switch len(positional) {
	case 0:
		return ErrNoInput
	case 1:
	default:
		return fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(f.common.config, env.Getenv)
	if err != nil {
		return err
	}
	mergeRenderFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	start := env.Now()
	inputPath := positional[0]
	markdown, err := readInput(inputPath, env.Stdin)
	if err != nil {
		return err
	}
	if inputPath == stdinArg {
		inputPath = ""
	}

	wantPDF := cfg.Output.PDF
	wantHTML := !wantPDF || cfg.Output.HTML

	output := f.output
	if output == "" && cfg.Output.DefaultDir != "" {
		if err := os.MkdirAll(cfg.Output.DefaultDir, dirPermissions); err != nil {
			return fmt.Errorf("%w: creating %s: %w", ErrWriteOutput, cfg.Output.DefaultDir, err)
		}
		output = cfg.Output.DefaultDir
	}
	if output == stdinArg && wantPDF && wantHTML {
		return fmt.Errorf("%w: cannot write both HTML and PDF to stdout", ErrUsage)
	}

	conv, err := env.NewConverter(converterOptions(cfg, f.style.noStyle, timeout)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	if wantHTML {
		result, err := conv.Convert(ctx, md2resume.Input{Markdown: markdown})
		if err != nil {
			return err
		}
		if err := writeOutput(env, inputPath, output, "html", result.HTML, f.common.quiet); err != nil {
			return err
		}
	}

	if wantPDF {
		pdfCtx, stop := notifyContext(ctx)
		defer stop()

		result, err := conv.Convert(pdfCtx, md2resume.Input{
			Markdown:  markdown,
			SourceDir: sourceDir(inputPath),
			PDF:       true,
			Page:      pageSettings(cfg),
		})
		if err != nil {
			return err
		}
		if err := writeOutput(env, inputPath, output, "pdf", result.PDF, f.common.quiet); err != nil {
			return err
		}
	}

	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "rendered in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// mergeRenderFlags overrides config values with explicitly set flags.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	mergeStyleFlags(&f.style, cfg)
	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Page.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.Page.Margin = f.page.margin
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
	if f.pdf {
		cfg.Output.PDF = true
	}
	if f.html {
		cfg.Output.HTML = true
	}
}

// mergeStyleFlags overrides config style values with explicitly set flags.
func mergeStyleFlags(f *styleFlags, cfg *config.Config) {
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.highlight != "" {
		cfg.Highlight = f.highlight
	}
}

// converterOptions maps the resolved config to converter options.
func converterOptions(cfg *config.Config, noStyle bool, timeout time.Duration) []md2resume.Option {
	opts := []md2resume.Option{md2resume.WithTimeout(timeout)}

	switch {
	case noStyle:
		opts = append(opts, md2resume.WithNoStyle())
	case cfg.Style != "":
		opts = append(opts, md2resume.WithStyle(styleArg(cfg.Style)))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2resume.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Highlight != "" {
		opts = append(opts, md2resume.WithHighlightStyle(cfg.Highlight))
	}
	return opts
}

// styleArg turns a bare CSS file name from the working directory into a
// path so it is not looked up as a style name.
func styleArg(style string) string {
	if fileutil.IsFilePath(style) || fileutil.IsCSS(style) {
		return style
	}
	if strings.EqualFold(filepath.Ext(style), ".css") && fileutil.FileExists(style) {
		return "." + string(filepath.Separator) + style
	}
	return style
}

// pageSettings builds PDF page settings from config, filling defaults.
func pageSettings(cfg *config.Config) *md2resume.PageSettings {
	page := md2resume.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// sourceDir returns the absolute directory of inputPath, used to resolve
// relative images when printing to PDF. Stdin resolves against the
// working directory.
func sourceDir(inputPath string) string {
	dir := "."
	if inputPath != "" {
		dir = filepath.Dir(inputPath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// readInput reads the resume from path, or from stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinArg {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) // #nosec G304 -- user-provided path
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return string(data), nil
}

// writeOutput writes data to stdout when output is "-", otherwise to the
// path derived from inputPath and output.
func writeOutput(env *Environment, inputPath, output, ext string, data []byte, quiet bool) error {
	if output == stdinArg {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}

	path := fileutil.OutputPath(inputPath, output, ext)
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "wrote %s\n", path)
	}
	return nil
}
