package main

import (
	"context"
	"io"
	"os"
	"time"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/assets"
)

// converter is the part of *md2resume.Converter the commands use.
type converter interface {
	Convert(ctx context.Context, input md2resume.Input) (*md2resume.Result, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and asset loading.
type Environment struct {
	Now          func() time.Time
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Getenv       func(string) string
	Environ      func() []string
	AssetLoader  assets.AssetLoader
	NewConverter func(opts ...md2resume.Option) (converter, error)
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		Environ:      os.Environ,
		AssetLoader:  assets.NewEmbeddedLoader(),
		NewConverter: newConverter,
	}
}

func newConverter(opts ...md2resume.Option) (converter, error) {
	c, err := md2resume.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
