// Package frontmatter splits a resume document into its YAML header and
// Markdown body.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-md2resume/internal/yamlutil"
)

// ErrDecode indicates the front-matter block is not valid YAML.
var ErrDecode = errors.New("front matter decoding failed")

// Attributes holds the recognized front-matter keys. Other keys are ignored.
type Attributes struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
	Email   string `yaml:"email"`
	GitHub  string `yaml:"github"`
}

// yamlFormat recognizes a "---" delimited block decoded with yamlutil.
var yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.Decode)

// Split extracts the front matter at the top of text and returns the
// decoded attributes and the remaining body. A document without front
// matter is returned whole with zero attributes.
func Split(text string) (Attributes, string, error) {
	var attrs Attributes
	body, err := frontmatter.Parse(strings.NewReader(text), &attrs, yamlFormat)
	if err != nil {
		return Attributes{}, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return attrs, string(body), nil
}
