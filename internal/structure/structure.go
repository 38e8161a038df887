package structure

import (
	"html"
	"strings"
)

// Closing markup, shared by superseding headings and Finish.
const (
	closeDetails = "\n</details>\n"
	closeSection = "</section>\n"
)

// MaxLevel is the deepest heading level with structural meaning.
const MaxLevel = 3

// Handles reports whether headings of the given level become structure
// rather than plain <hN> elements.
func Handles(level int) bool {
	return level >= 1 && level <= MaxLevel
}

// Metadata holds the contact fields read from the document front matter.
// Empty strings are treated as absent.
type Metadata struct {
	Name    string
	Website string
	Email   string
	GitHub  string
}

// Transformer tracks open containers for a single render pass.
type Transformer struct {
	meta          Metadata
	sectionOpened bool
	detailsOpened bool
	name          string
}

// New returns a Transformer with no open containers.
// A non-empty meta.Name takes precedence over any heading-1 text.
func New(meta Metadata) *Transformer {
	return &Transformer{
		meta: meta,
		name: html.EscapeString(meta.Name),
	}
}

// Heading returns the markup replacing a heading of the given level.
// text must already be inline-rendered HTML.
// handled is false for levels the transformer leaves to default rendering.
func (t *Transformer) Heading(level int, text string) (markup string, handled bool) {
	switch level {
	case 1:
		return t.identity(text), true
	case 2:
		return t.section(text), true
	case 3:
		return t.entry(text), true
	default:
		return "", false
	}
}

// Finish closes whatever is still open, details before section.
// Subsequent calls return the empty string.
func (t *Transformer) Finish() string {
	var b strings.Builder
	if t.detailsOpened {
		b.WriteString(closeDetails)
		t.detailsOpened = false
	}
	if t.sectionOpened {
		b.WriteString(closeSection)
		t.sectionOpened = false
	}
	return b.String()
}

// Name returns the resolved document name as HTML: the metadata name,
// else the text of the first heading-1, else "".
func (t *Transformer) Name() string {
	return t.name
}

// SectionOpen reports whether a section container is open.
func (t *Transformer) SectionOpen() bool { return t.sectionOpened }

// DetailsOpen reports whether an entry container is open.
func (t *Transformer) DetailsOpen() bool { return t.detailsOpened }

func (t *Transformer) section(text string) string {
	var b strings.Builder
	if t.detailsOpened {
		b.WriteString(closeDetails)
		t.detailsOpened = false
	}
	if t.sectionOpened {
		b.WriteString(closeSection)
	}
	b.WriteString(`<section class="`)
	b.WriteString(strings.ToLower(text))
	b.WriteString("\">\n<h2>")
	b.WriteString(text)
	b.WriteString("</h2>")
	t.sectionOpened = true
	return b.String()
}

// entry keeps the enclosing section open; only the previous details closes.
func (t *Transformer) entry(text string) string {
	var b strings.Builder
	if t.detailsOpened {
		b.WriteString(closeDetails)
	}
	b.WriteString("<details open>\n<summary>")
	b.WriteString(Summary(text))
	b.WriteString("</summary>\n")
	t.detailsOpened = true
	return b.String()
}
