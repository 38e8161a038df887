// Package pipeline turns a resume document into a complete HTML page.
//
// Stages, in order:
//   - preprocessing (line-ending normalization)
//   - front-matter split (internal/frontmatter)
//   - Markdown to HTML via goldmark, with headings 1-3 handed to the
//     structural transformer (internal/structure)
//   - page shell execution and stylesheet inlining
//   - optional rewriting of relative paths for file:// rendering
//
// Nothing here keeps state between documents: each conversion builds its
// own goldmark instance around its own transformer.
package pipeline
