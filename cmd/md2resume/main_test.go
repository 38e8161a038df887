package main

// Notes:
// - runMain: we test exit codes and user-facing messages for every command.
//   HTML rendering goes through the real converter; PDF output goes through
//   fakeConverter so no browser is needed.
// - The implicit md2resume.yaml lookup searches the package directory and
//   the user config dir; neither is expected to hold one during tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/assets"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

const testResume = `---
name: Jane Doe
website: https://jdoe.dev
email: jane@jdoe.dev
---
# Jane Doe

## Experience

### Acme Corp {2019 - 2023}

Built things.
`

// fakeConverter records inputs and returns canned output.
type fakeConverter struct {
	mu     sync.Mutex
	inputs []md2resume.Input
	err    error
	closed bool
}

func (f *fakeConverter) Convert(_ context.Context, in md2resume.Input) (*md2resume.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	res := &md2resume.Result{HTML: []byte("<html>" + in.Markdown + "</html>")}
	if in.PDF {
		res.PDF = []byte("%PDF-1.7 fake")
	}
	return res, nil
}

func (f *fakeConverter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// newTestEnv returns an environment with captured output and an empty
// process environment.
func newTestEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:          func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdin:        strings.NewReader(stdin),
		Stdout:       &stdout,
		Stderr:       &stderr,
		Getenv:       func(string) string { return "" },
		Environ:      func() []string { return nil },
		AssetLoader:  assets.NewEmbeddedLoader(),
		NewConverter: newConverter,
	}
	return env, &stdout, &stderr
}

// withFake makes env hand out fake instead of a real converter.
func withFake(env *Environment, fake *fakeConverter) {
	env.NewConverter = func(...md2resume.Option) (converter, error) {
		return fake, nil
	}
}

// withGetenv serves vars as the process environment.
func withGetenv(env *Environment, vars map[string]string) {
	env.Getenv = func(key string) string { return vars[key] }
	env.Environ = func() []string {
		kv := make([]string, 0, len(vars))
		for k, v := range vars {
			kv = append(kv, k+"="+v)
		}
		return kv
	}
}

// writeResume writes content to dir/resume.md and returns its path.
func writeResume(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "resume.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Exit codes and messages
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeResume(t, dir, testResume)
	badFrontMatter := filepath.Join(dir, "bad.md")
	if err := os.WriteFile(badFrontMatter, []byte("---\nname: [unclosed\n---\n# X\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.md")

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout string
		wantInStderr string
	}{
		{"no args", []string{"md2resume"}, ExitUsage, "", "Usage: md2resume"},
		{"unknown command", []string{"md2resume", "bogus"}, ExitUsage, "", "unknown command: bogus"},
		{"version", []string{"md2resume", "version"}, ExitSuccess, "md2resume dev", ""},
		{"--version", []string{"md2resume", "--version"}, ExitSuccess, "md2resume dev", ""},
		{"help", []string{"md2resume", "help"}, ExitSuccess, "Commands:", ""},
		{"help render", []string{"md2resume", "help", "render"}, ExitSuccess, "md2resume render <input.md>", ""},
		{"help serve", []string{"md2resume", "help", "serve"}, ExitSuccess, "md2resume serve", ""},
		{"help unknown", []string{"md2resume", "help", "bogus"}, ExitUsage, "", "unknown command: bogus"},
		{"render help flag", []string{"md2resume", "render", "-h"}, ExitSuccess, "", "md2resume render"},
		{"render no input", []string{"md2resume", "render"}, ExitIO, "", "no input file"},
		{"render two inputs", []string{"md2resume", "render", good, good}, ExitUsage, "", "expected one input file"},
		{"render missing file", []string{"md2resume", "render", missing, "-q"}, ExitIO, "", "failed to read markdown"},
		{"render unknown flag", []string{"md2resume", "render", "--bogus", good}, ExitUsage, "", "invalid usage"},
		{"render bad page size", []string{"md2resume", "render", good, "-p", "tabloid"}, ExitUsage, "", "page.size"},
		{"render bad timeout", []string{"md2resume", "render", good, "--timeout", "soon"}, ExitUsage, "", "timeout"},
		{"render unknown style", []string{"md2resume", "render", good, "--style", "fancy", "-o", "-"}, ExitUsage, "", "available: minimal, resume"},
		{"render bad front matter", []string{"md2resume", "render", badFrontMatter, "-o", "-"}, ExitUsage, "", "front matter"},
		{"render missing config", []string{"md2resume", "render", good, "-c", filepath.Join(dir, "nope.yaml")}, ExitUsage, "", "hint:"},
		{"render to stdout", []string{"md2resume", "render", good, "-o", "-"}, ExitSuccess, "<!DOCTYPE html>", ""},
		{"markdown shorthand", []string{"md2resume", good, "-o", "-"}, ExitSuccess, "Jane Doe", ""},
		{"serve bad log format", []string{"md2resume", "serve", "--log-format", "xml"}, ExitUsage, "", "log-format"},
		{"serve two inputs", []string{"md2resume", "serve", good, good}, ExitUsage, "", "at most one input file"},
		{"doctor bad arg", []string{"md2resume", "doctor", "--bogus"}, ExitUsage, "", "unknown argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv("")
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantInStdout != "" && !strings.Contains(stdout.String(), tt.wantInStdout) {
				t.Errorf("stdout missing %q, got:\n%s", tt.wantInStdout, stdout.String())
			}
			if tt.wantInStderr != "" && !strings.Contains(stderr.String(), tt.wantInStderr) {
				t.Errorf("stderr missing %q, got:\n%s", tt.wantInStderr, stderr.String())
			}
		})
	}
}

func TestRunMain_BrowserError(t *testing.T) {
	t.Parallel()

	path := writeResume(t, t.TempDir(), testResume)
	env, _, stderr := newTestEnv("")
	fake := &fakeConverter{err: md2resume.ErrBrowserConnect}
	withFake(env, fake)

	code := runMain([]string{"md2resume", "render", path, "--pdf"}, env)

	if code != ExitBrowser {
		t.Errorf("exit code = %d, want %d", code, ExitBrowser)
	}
	if !strings.Contains(stderr.String(), "md2resume doctor") {
		t.Errorf("stderr should carry the browser hint, got:\n%s", stderr.String())
	}
	if !fake.closed {
		t.Error("converter should be closed")
	}
}

func TestRunMain_WarnsUnknownEnvVars(t *testing.T) {
	t.Parallel()

	env, _, stderr := newTestEnv("")
	withGetenv(env, map[string]string{"MD2RESUME_STYEL": "minimal"})

	if code := runMain([]string{"md2resume", "version"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(stderr.String(), "unknown environment variable MD2RESUME_STYEL") {
		t.Errorf("stderr = %q, want unknown variable warning", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeMarkdown
// ---------------------------------------------------------------------------

func TestLooksLikeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"resume.md", true},
		{"CV.MD", true},
		{"notes.markdown", true},
		{"render", false},
		{"resume.txt", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			if got := looksLikeMarkdown(tt.arg); got != tt.want {
				t.Errorf("looksLikeMarkdown(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}
