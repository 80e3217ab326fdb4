package extractor

import (
	"html"
	"regexp"

	"github.com/dtnitsch/url-metadata-extractor/pkg/parser"
	"github.com/microcosm-cc/bluemonday"
)

// disallowedNameChars matches anything but ASCII letters and digits,
// whitespace, '-' and '&'. Emoji, accents and decorative punctuation go.
var disallowedNameChars = regexp.MustCompile(`[^A-Za-z0-9\s&-]`)

// stripMarkup removes every tag. The policy is immutable once built.
var stripMarkup = bluemonday.StrictPolicy()

// SanitizeName strips disallowed characters from a business name and
// collapses whitespace. Sanitizing an already clean name is a no-op.
func SanitizeName(name string) string {
	if name == "" {
		return ""
	}
	return parser.NormalizeText(disallowedNameChars.ReplaceAllString(name, ""))
}

// SanitizeDescription removes markup and entities from a description.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return ""
	}
	return parser.NormalizeText(html.UnescapeString(stripMarkup.Sanitize(desc)))
}
