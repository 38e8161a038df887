package md2resume

import "context"

// Render turns resume text (optional front matter + Markdown body) into a
// complete HTML document using the embedded "resume" style.
// Errors only come from front-matter decoding.
func Render(text string) (string, error) {
	conv, err := NewConverter()
	if err != nil {
		return "", err
	}
	defer conv.Close()

	res, err := conv.Convert(context.Background(), Input{Markdown: text})
	if err != nil {
		return "", err
	}
	return string(res.HTML), nil
}
