// Package structure maps a stream of Markdown heading events onto resume markup.
//
// Heading levels carry document structure instead of typography:
//
//	#   identity block (name and contact links)
//	##  section, one per resume category (Experience, Education, ...)
//	### entry, a collapsible <details> inside the current section
//
// A Transformer is fed headings in document order by the Markdown engine and
// decides what to open and close from its own flags only. It never looks ahead,
// never fails, and must be discarded after one document: call Finish once the
// engine has rendered the whole body.
package structure
