// Package md2resume renders a Markdown resume into a complete, styled HTML
// page, and optionally a PDF via headless Chrome.
//
// # Quick Start
//
//	page, err := md2resume.Render(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("resume.html", []byte(page), 0644)
//
// # Document Structure
//
// A resume is an optional YAML front matter block followed by Markdown:
//
//	---
//	name: Jane Doe
//	website: https://jdoe.dev
//	email: jane@jdoe.dev
//	github: jdoe
//	---
//	# Jane Doe
//
//	## Experience
//
//	### Acme Corp {2019 - 2023}
//
//	Built things.
//
// Headings drive the page layout:
//
//   - H1 becomes the identity block: the heading plus a list of links built
//     from the website, email, and github fields.
//   - H2 opens a section whose class is the lower-cased heading text.
//   - H3 opens a collapsible entry (<details open>) inside the section.
//     A trailing {YYYY} or {YYYY - YYYY} is rendered as a <time> element.
//   - H4 and deeper render as plain headings.
//
// Sections and entries stay open until a heading of the same or a higher
// level, or the end of the document, closes them.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2resume.NewConverter(
//	    md2resume.WithStyle("minimal"),
//	    md2resume.WithAssetPath("/path/to/custom/assets"),
//	    md2resume.WithTimeout(2 * time.Minute),
//	)
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2resume.Input{
//	    Markdown:  text,
//	    SourceDir: "/path/to/resume", // for relative image paths
//	    PDF:       true,
//	    Page:      &md2resume.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5},
//	})
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2resume
