package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// RewriteRelativePaths turns relative img[src] and a[href] values into
// absolute file:// URLs under sourceDir, so a page loaded from a temp file
// (PDF export) still finds images and documents next to the resume.
// Anchors, URLs with a scheme, and absolute paths are left alone.
// An empty sourceDir returns htmlContent unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	rewriteNode(doc, absSourceDir)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			rewriteAttr(n, "src", sourceDir)
		case "a":
			rewriteAttr(n, "href", sourceDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, sourceDir)
	}
}

func rewriteAttr(n *html.Node, key, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		if rewritten, ok := toFileURL(attr.Val, sourceDir); ok {
			n.Attr[i].Val = rewritten
		}
		return
	}
}

// toFileURL resolves a relative path against sourceDir. ok is false for
// values that are not relative file paths.
func toFileURL(val, sourceDir string) (string, bool) {
	if val == "" || strings.HasPrefix(val, "#") || strings.HasPrefix(val, "//") {
		return "", false
	}
	u, err := url.Parse(val)
	if err != nil || u.Scheme != "" || filepath.IsAbs(u.Path) || strings.HasPrefix(u.Path, "/") {
		return "", false
	}

	abs := filepath.Join(sourceDir, filepath.FromSlash(u.Path))
	out := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: u.RawQuery, Fragment: u.Fragment}
	if !strings.HasPrefix(out.Path, "/") {
		// Windows drive paths: file:///C:/...
		out.Path = "/" + out.Path
	}
	return out.String(), true
}
