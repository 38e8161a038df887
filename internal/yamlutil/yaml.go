// Package yamlutil wraps YAML decoding so front matter and config files share
// one size limit and one error vocabulary, independent of the YAML library.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits a single YAML document (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyDocument  = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkInput(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// Decode parses data into v, ignoring unknown keys.
// An empty document leaves v untouched: a front-matter block may be present
// but hold no keys.
func Decode(data []byte, v any) error {
	if err := checkInput(data, v); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeStrict parses data into v and rejects unknown keys and empty input.
func DecodeStrict(data []byte, v any) error {
	if err := checkInput(data, v); err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
