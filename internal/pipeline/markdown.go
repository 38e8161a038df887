package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2resume/internal/structure"
)

// ErrHTMLConversion indicates goldmark failed to render the body.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// Fragment is the rendered resume body before it is wrapped in the page shell.
type Fragment struct {
	Body string // body markup, all containers closed
	Name string // resolved document name (HTML)
}

// HTMLConverter abstracts body conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, body string, meta structure.Metadata) (*Fragment, error)
}

// ResumeConverter renders resume bodies with goldmark. Headings 1-3 go
// through a fresh structure.Transformer per call; everything else (GFM
// paragraphs, lists, tables, links, highlighted code) is goldmark's.
type ResumeConverter struct {
	highlightStyle string
}

// NewResumeConverter creates a ResumeConverter. An empty highlightStyle
// selects DefaultHighlightStyle.
func NewResumeConverter(highlightStyle string) *ResumeConverter {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	return &ResumeConverter{highlightStyle: highlightStyle}
}

// ToHTML renders body and closes any section or entry left open.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *ResumeConverter) ToHTML(ctx context.Context, body string, meta structure.Metadata) (*Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		frag *Fragment
		err  error
	}

	done := make(chan result, 1)

	go func() {
		frag, err := c.convert(body, meta)
		done <- result{frag: frag, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.frag, r.err
	}
}

func (c *ResumeConverter) convert(body string, meta structure.Metadata) (*Fragment, error) {
	t := structure.New(meta)
	md := c.newMarkdown(t)

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	buf.WriteString(t.Finish())

	return &Fragment{Body: buf.String(), Name: t.Name()}, nil
}

// newMarkdown builds a goldmark instance bound to t. goldmark fixes its
// node renderers at construction, so per-document state means a
// per-document instance.
func (c *ResumeConverter) newMarkdown(t *structure.Transformer) goldmark.Markdown {
	headings := &headingRenderer{transformer: t}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithStyle(c.highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // styled by HighlightCSS
				),
			),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(headings, headingPriority)),
		),
	)
	headings.inline = md.Renderer()
	return md
}

// HighlightCSS returns the class-based stylesheet for the converter's
// highlight style. Unknown style names fall back to chroma's default.
func (c *ResumeConverter) HighlightCSS() (string, error) {
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Get(c.highlightStyle)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return b.String(), nil
}
