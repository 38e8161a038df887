package structure

import (
	"regexp"
	"strings"
)

// dateRange matches {YYYY} or {YYYY - YYYY}. Other year shapes are literal text.
var dateRange = regexp.MustCompile(`\{\d{4}(?: - \d{4})?\}`)

// Summary returns the <summary> content for an entry heading. The first
// date-range marker is cut out of text and appended as a <time> element;
// text without a marker is returned unchanged.
func Summary(text string) string {
	marker := dateRange.FindString(text)
	if marker == "" {
		return text
	}
	span := strings.Trim(marker, "{}")
	return strings.Replace(text, marker, "", 1) + "<time>" + span + "</time>"
}
