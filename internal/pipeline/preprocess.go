package pipeline

import (
	"context"
	"regexp"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Preprocessor prepares raw document text before front-matter parsing.
type Preprocessor interface {
	Preprocess(ctx context.Context, text string) string
}

// TextPreprocessor normalizes line endings and blank-line runs so editors
// on any platform produce the same output.
type TextPreprocessor struct{}

// Preprocess returns text with \r\n and \r replaced by \n and runs of
// blank lines compressed to one.
func (p *TextPreprocessor) Preprocess(ctx context.Context, text string) string {
	if ctx.Err() != nil {
		return text
	}
	text = crlfOrCR.ReplaceAllString(text, "\n")
	return multipleBlankLines.ReplaceAllString(text, "\n\n")
}
