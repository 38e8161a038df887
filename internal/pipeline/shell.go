package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
)

// ErrShellRender indicates the page template failed to execute.
var ErrShellRender = errors.New("page template rendering failed")

// pageData is the page template's view of a Fragment. Both fields are
// markup produced by the renderer, so they are not re-escaped.
type pageData struct {
	Name template.HTML
	Body template.HTML
}

// Shell wraps rendered fragments in a complete HTML document.
type Shell struct {
	tmpl *template.Template
}

// NewShell parses the page template.
func NewShell(tmplContent string) (*Shell, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Shell{tmpl: tmpl}, nil
}

// Render executes the page template around frag.
func (s *Shell) Render(frag *Fragment) (string, error) {
	var buf bytes.Buffer
	data := pageData{
		Name: template.HTML(frag.Name), // #nosec G203 -- escaped or rendered by goldmark
		Body: template.HTML(frag.Body), // #nosec G203 -- rendered by goldmark without raw HTML
	}
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrShellRender, err)
	}
	return buf.String(), nil
}
