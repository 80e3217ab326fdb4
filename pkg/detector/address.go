package detector

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/url-metadata-extractor/pkg/document"
)

// usAddressPattern matches a simplified US street address, e.g.
// "12 Oak Street, Austin, TX 78701".
var usAddressPattern = regexp.MustCompile(
	`\d+\s+[A-Z][a-z]+\s+(?:Street|St|Ave|Avenue|Blvd|Boulevard|Road|Rd|Lane|Ln|Drive|Dr)[,\s]+[A-Z][a-z]+(?:,\s*[A-Z]{2})?(?:\s*\d{5})?`,
)

// nbsp is folded to a plain space before matching; RE2's \s is ASCII only.
var nbsp = strings.NewReplacer("\u00a0", " ")

// SniffAddress returns the first street address found in the page's first
// <footer>, or "" if there is no footer or no match.
func SniffAddress(doc document.Document) string {
	footer, ok := doc.FindFirst("footer")
	if !ok {
		return ""
	}
	return usAddressPattern.FindString(nbsp.Replace(footer.Text()))
}
