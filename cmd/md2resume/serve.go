package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/assets"
	"github.com/alnah/go-md2resume/internal/config"
	"github.com/alnah/go-md2resume/internal/preview"
)

// runServe executes the serve command. It blocks until ctx is canceled or
// an interrupt is received.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected at most one input file, got %d", ErrUsage, len(positional))
	}

	cfg, err := resolveConfig(f.common.config, env.Getenv)
	if err != nil {
		return err
	}
	mergeServeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}
	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return err
	}

	editor, err := loadEditorTemplate(cfg.Assets.BasePath, env.AssetLoader)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(converterOptions(cfg, f.style.noStyle, timeout)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	var file string
	if len(positional) == 1 {
		file = positional[0]
	}

	logger := newLogger(env.Stderr, f.logFormat, f.common.verbose, f.common.quiet)
	srv, err := preview.New(htmlRenderer(conv), preview.Options{
		Addr:     cfg.PreviewAddr(),
		File:     file,
		Debounce: debounce,
		Editor:   editor,
		Logger:   logger,
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		}
		return err
	}

	ctx, stop := notifyContext(ctx)
	defer stop()

	var wg sync.WaitGroup
	if file != "" {
		wg.Go(func() {
			if err := srv.Watch(ctx); err != nil {
				logger.Error("watching resume file", "file", file, "error", err)
			}
		})
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Preview: http://%s/\n", cfg.PreviewAddr())
		fmt.Fprintf(env.Stdout, "Editor:  http://%s/editor\n", cfg.PreviewAddr())
	}

	err = srv.ListenAndServe(ctx)
	stop()
	wg.Wait()
	return err
}

// mergeServeFlags overrides config values with explicitly set flags.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	mergeStyleFlags(&f.style, cfg)
	if f.addr != "" {
		cfg.Preview.Addr = f.addr
	}
	if f.debounce != "" {
		cfg.Preview.Debounce = f.debounce
	}
}

// htmlRenderer adapts a converter to the preview server.
func htmlRenderer(conv converter) preview.Renderer {
	return preview.RendererFunc(func(ctx context.Context, text string) ([]byte, error) {
		result, err := conv.Convert(ctx, md2resume.Input{Markdown: text})
		if err != nil {
			return nil, err
		}
		return result.HTML, nil
	})
}

// loadEditorTemplate loads the editor page from the custom asset directory
// when set, falling back to the default loader.
func loadEditorTemplate(assetPath string, loader assets.AssetLoader) (string, error) {
	if assetPath != "" {
		resolver, err := assets.NewAssetResolver(assetPath)
		if err != nil {
			return "", fmt.Errorf("%w: %v", md2resume.ErrInvalidAssetPath, err)
		}
		loader = resolver
	}
	return loader.LoadTemplate(assets.EditorTemplate)
}

// newLogger builds the preview server logger.
func newLogger(w io.Writer, format string, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
