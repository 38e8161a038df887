package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2resume/internal/structure"
)

// headingPriority beats goldmark's default HTML renderer (1000).
const headingPriority = 100

// headingRenderer replaces goldmark's heading rendering. Levels the
// transformer handles become resume structure; deeper levels render as
// plain <hN> elements.
type headingRenderer struct {
	transformer *structure.Transformer
	// inline renders heading children; it must be the renderer of the
	// goldmark instance this node renderer is registered on.
	inline renderer.Renderer
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if !structure.Handles(n.Level) {
		return renderPlainHeading(w, n, entering)
	}
	if !entering {
		return ast.WalkContinue, nil
	}

	text, err := r.inlineText(source, n)
	if err != nil {
		return ast.WalkStop, err
	}
	markup, _ := r.transformer.Heading(n.Level, text)
	_, _ = w.WriteString(markup)
	return ast.WalkSkipChildren, nil
}

// inlineText renders the heading's children (emphasis, links, code spans)
// to a string.
func (r *headingRenderer) inlineText(source []byte, n ast.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := r.inline.Render(&buf, source, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// renderPlainHeading matches goldmark's default heading output.
func renderPlainHeading(w util.BufWriter, n *ast.Heading, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<h")
		_ = w.WriteByte("0123456"[n.Level])
		if n.Attributes() != nil {
			html.RenderAttributes(w, n, html.HeadingAttributeFilter)
		}
		_ = w.WriteByte('>')
	} else {
		_, _ = w.WriteString("</h")
		_ = w.WriteByte("0123456"[n.Level])
		_, _ = w.WriteString(">\n")
	}
	return ast.WalkContinue, nil
}
