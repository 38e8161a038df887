package md2resume

// Notes:
// - Convert is tested with the real pipeline for HTML output and a mocked
//   pdfConverter for PDF output, so no browser is needed.
// - Converter fields are injected through unexported options defined here.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-md2resume/internal/pipeline"
	"github.com/alnah/go-md2resume/internal/structure"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	mu         sync.Mutex
	output     []byte
	err        error
	calledWith string
	calledOpts *pdfOptions
	closed     bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calledWith = htmlContent
	m.calledOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

type mockHTMLConverter struct {
	frag *pipeline.Fragment
	err  error
	meta structure.Metadata
}

func (m *mockHTMLConverter) ToHTML(ctx context.Context, body string, meta structure.Metadata) (*pipeline.Fragment, error) {
	m.meta = meta
	return m.frag, m.err
}

type panicPreprocessor struct{}

func (p *panicPreprocessor) Preprocess(ctx context.Context, text string) string {
	panic("simulated panic in preprocessor")
}

// ---------------------------------------------------------------------------
// Test Options (Internal Dependency Injection)
// ---------------------------------------------------------------------------

func withPreprocessor(p pipeline.Preprocessor) Option {
	return func(c *Converter) {
		c.preprocessor = p
	}
}

func withHTMLConverter(h pipeline.HTMLConverter) Option {
	return func(c *Converter) {
		c.htmlConverter = h
	}
}

func withPDFConverter(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	opts = append([]Option{withPDFConverter(&mockPDFConverter{output: []byte("%PDF-1.4 mock")})}, opts...)
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

const sampleResume = `---
name: Jane Doe
website: https://jdoe.dev
email: jane@jdoe.dev
github: jdoe
---
# Jane Doe

## Experience

### Acme Corp {2019 - 2023}

Built things.
`

// ---------------------------------------------------------------------------
// TestConvert_HTML - Full pipeline without PDF
// ---------------------------------------------------------------------------

func TestConvert_HTML(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{Markdown: sampleResume})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	html := string(res.HTML)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Jane Doe — Resume</title>",
		"<style>",
		`<section class="basic">`,
		`<a href="https://jdoe.dev">jane@jdoe.dev</a>`,
		`<a href="https://github.com/jdoe">github.com/jdoe</a>`,
		`<section class="experience">`,
		"<summary>Acme Corp <time>2019 - 2023</time></summary>",
		"</details>\n</section>\n",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}

	if res.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", res.Name, "Jane Doe")
	}
	want := Metadata{Name: "Jane Doe", Website: "https://jdoe.dev", Email: "jane@jdoe.dev", GitHub: "jdoe"}
	if res.Meta != want {
		t.Errorf("Meta = %+v, want %+v", res.Meta, want)
	}
	if res.PDF != nil {
		t.Error("PDF should be nil when not requested")
	}
}

func TestConvert_EmptyMarkdown(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.Contains(string(res.HTML), "<title>— Resume</title>") {
		t.Errorf("empty resume should have an unnamed title:\n%s", res.HTML)
	}
	if res.Name != "" {
		t.Errorf("Name = %q, want empty", res.Name)
	}
}

func TestConvert_NameFromHeading(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{Markdown: "# John *Roe*\n"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Name != "John <em>Roe</em>" {
		t.Errorf("Name = %q", res.Name)
	}
}

func TestConvert_MetadataEscaped(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Markdown: "---\nname: \"Tom & <Jerry>\"\n---\n# Tom\n",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if strings.Contains(string(res.HTML), "<Jerry>") {
		t.Error("metadata name must be escaped")
	}
	if res.Name != "Tom &amp; &lt;Jerry&gt;" {
		t.Errorf("Name = %q", res.Name)
	}
	if res.Meta.Name != "Tom & <Jerry>" {
		t.Errorf("Meta.Name = %q, want raw value", res.Meta.Name)
	}
}

func TestConvert_FrontMatterError(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	_, err := conv.Convert(context.Background(), Input{Markdown: "---\nname: [unclosed\n---\n# Jane\n"})
	if !errors.Is(err, ErrFrontMatter) {
		t.Errorf("Convert() error = %v, want ErrFrontMatter", err)
	}
}

func TestConvert_CRLF(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	unix, err := conv.Convert(context.Background(), Input{Markdown: sampleResume})
	if err != nil {
		t.Fatal(err)
	}
	dos, err := conv.Convert(context.Background(), Input{Markdown: strings.ReplaceAll(sampleResume, "\n", "\r\n")})
	if err != nil {
		t.Fatal(err)
	}
	if string(unix.HTML) != string(dos.HTML) {
		t.Error("CRLF input should render like LF input")
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Styles - Style resolution and CSS injection
// ---------------------------------------------------------------------------

func TestConvert_Styles(t *testing.T) {
	t.Parallel()

	cssFile := filepath.Join(t.TempDir(), "custom.css")
	if err := os.WriteFile(cssFile, []byte(".file-style{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    []Option
		input   Input
		want    []string
		notWant []string
	}{
		{
			name: "default style and highlight classes",
			want: []string{"<style>", ".chroma"},
		},
		{
			name: "raw CSS",
			opts: []Option{WithStyle("body{color:red}")},
			want: []string{"body{color:red}"},
		},
		{
			name: "CSS file",
			opts: []Option{WithStyle(cssFile)},
			want: []string{".file-style{}"},
		},
		{
			name:    "no style",
			opts:    []Option{WithNoStyle()},
			notWant: []string{"<style>"},
		},
		{
			name:  "per-call CSS after converter style",
			opts:  []Option{WithStyle("a{}")},
			input: Input{CSS: "b{}"},
			want:  []string{"a{}\n", "b{}</style>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, tt.opts...)
			input := tt.input
			input.Markdown = "# Jane\n"
			res, err := conv.Convert(context.Background(), input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			html := string(res.HTML)
			for _, want := range tt.want {
				if !strings.Contains(html, want) {
					t.Errorf("HTML missing %q", want)
				}
			}
			for _, not := range tt.notWant {
				if strings.Contains(html, not) {
					t.Errorf("HTML should not contain %q", not)
				}
			}
		})
	}
}

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"unknown style", []Option{WithStyle("nope")}, ErrStyleNotFound},
		{"missing asset path", []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("missing style file", func(t *testing.T) {
		t.Parallel()

		if _, err := NewConverter(WithStyle("./does/not/exist.css")); err == nil {
			t.Error("expected error for missing style file")
		}
	})
}

func TestNewConverter_CustomAssets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "brand.css"), []byte(".brand{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv := newTestConverter(t, WithAssetPath(dir), WithStyle("brand"))
	res, err := conv.Convert(context.Background(), Input{Markdown: "# Jane\n"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(res.HTML), ".brand{}") {
		t.Error("custom style should be inlined")
	}
	// The page template falls back to the embedded one.
	if !strings.Contains(string(res.HTML), "schema.org/Person") {
		t.Error("embedded page template should be used as fallback")
	}
}

// ---------------------------------------------------------------------------
// TestConvert_PDF - PDF stage with mocked converter
// ---------------------------------------------------------------------------

func TestConvert_PDF(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{output: []byte("%PDF-1.4 test")}
	conv := newTestConverter(t, withPDFConverter(pdf))

	page := &PageSettings{Size: PageSizeA4, Orientation: OrientationLandscape, Margin: 1}
	res, err := conv.Convert(context.Background(), Input{Markdown: sampleResume, PDF: true, Page: page})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if string(res.PDF) != "%PDF-1.4 test" {
		t.Errorf("PDF = %q", res.PDF)
	}
	if pdf.calledWith != string(res.HTML) {
		t.Error("PDF converter should receive the final HTML page")
	}
	if pdf.calledOpts == nil || pdf.calledOpts.Page != page {
		t.Error("page settings should be passed to the PDF converter")
	}
}

func TestConvert_PDFError(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, withPDFConverter(&mockPDFConverter{err: ErrBrowserConnect}))
	_, err := conv.Convert(context.Background(), Input{Markdown: "# Jane", PDF: true})
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("Convert() error = %v, want ErrBrowserConnect", err)
	}
}

func TestConvert_InvalidPage(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	_, err := conv.Convert(context.Background(), Input{
		Markdown: "# Jane",
		PDF:      true,
		Page:     &PageSettings{Size: "tabloid", Orientation: OrientationPortrait, Margin: 0.5},
	})
	if !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("Convert() error = %v, want ErrInvalidPageSize", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Pipeline - Injected stages, errors, cancellation, panics
// ---------------------------------------------------------------------------

func TestConvert_HTMLConverterReceivesMetadata(t *testing.T) {
	t.Parallel()

	mock := &mockHTMLConverter{frag: &pipeline.Fragment{Body: "<p>body</p>", Name: "X"}}
	conv := newTestConverter(t, withHTMLConverter(mock))

	res, err := conv.Convert(context.Background(), Input{Markdown: sampleResume})
	if err != nil {
		t.Fatal(err)
	}
	if mock.meta.GitHub != "jdoe" {
		t.Errorf("converter received meta %+v", mock.meta)
	}
	if !strings.Contains(string(res.HTML), "<p>body</p>") {
		t.Error("fragment body should be placed in the page")
	}
}

func TestConvert_HTMLConverterError(t *testing.T) {
	t.Parallel()

	mock := &mockHTMLConverter{err: ErrHTMLConversion}
	conv := newTestConverter(t, withHTMLConverter(mock))

	_, err := conv.Convert(context.Background(), Input{Markdown: "# Jane"})
	if !errors.Is(err, ErrHTMLConversion) {
		t.Errorf("Convert() error = %v, want ErrHTMLConversion", err)
	}
}

func TestConvert_Canceled(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Markdown: "# Jane"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, withPreprocessor(&panicPreprocessor{}))
	_, err := conv.Convert(context.Background(), Input{Markdown: "# Jane"})
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Convert() error = %v, want internal error", err)
	}
}

func TestConvert_SourceDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conv := newTestConverter(t)
	res, err := conv.Convert(context.Background(), Input{
		Markdown:  "# Jane\n\n![me](me.png)\n",
		SourceDir: dir,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(res.HTML), "file://") {
		t.Errorf("relative image should be rewritten to a file URL:\n%s", res.HTML)
	}
}

func TestConvert_Concurrent(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	want, err := conv.Convert(context.Background(), Input{Markdown: sampleResume})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := conv.Convert(context.Background(), Input{Markdown: sampleResume})
			if err != nil {
				errs <- err
				return
			}
			if string(got.HTML) != string(want.HTML) {
				errs <- errors.New("concurrent render differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(pdf))
	if err != nil {
		t.Fatal(err)
	}
	if err := conv.Close(); err != nil {
		t.Fatal(err)
	}
	if !pdf.closed {
		t.Error("Close should close the PDF converter")
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}
