package structure

import (
	"html"
	"strings"
)

const githubHost = "github.com/"

// identity renders the self-contained block for a heading-1. It never leaves
// a container open, so section and details state are untouched.
func (t *Transformer) identity(text string) string {
	var b strings.Builder
	b.WriteString("<section class=\"basic\">\n<h1>")
	b.WriteString(text)
	b.WriteString("</h1>\n<ul>\n")

	website := html.EscapeString(t.meta.Website)
	if t.meta.Website != "" {
		writeLink(&b, website, website)
	}
	// The email entry links to the website, not mailto:. Existing resumes
	// depend on this rendering, so it is kept as is.
	if t.meta.Email != "" {
		writeLink(&b, website, html.EscapeString(t.meta.Email))
	}
	if t.meta.GitHub != "" {
		handle := githubHost + html.EscapeString(t.meta.GitHub)
		writeLink(&b, "https://"+handle, handle)
	}

	b.WriteString("</ul>\n</section>\n")

	if t.name == "" {
		t.name = text
	}
	return b.String()
}

func writeLink(b *strings.Builder, href, label string) {
	b.WriteString(`<li><a href="`)
	b.WriteString(href)
	b.WriteString(`">`)
	b.WriteString(label)
	b.WriteString("</a></li>\n")
}
