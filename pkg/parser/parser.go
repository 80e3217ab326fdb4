// Package parser reads the plain-HTML signals of a page: its title, meta
// description and first heading. It is the fallback when richer markup is
// missing.
package parser

import (
	"strings"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/document"
)

// ExtractHTML returns the title (or the first <h1>, which wins when present)
// as businessName and the meta description as description.
func ExtractHTML(doc document.Document) models.Candidates {
	out := models.NewCandidates()

	if title, ok := doc.FindFirst("title"); ok {
		out.Set(models.FieldBusinessName, NormalizeText(title.Text()))
	}

	if metas := doc.FindAll("meta", document.AttrEquals("name", "description")); len(metas) > 0 {
		if content, ok := metas[0].Attr("content"); ok {
			out.Set(models.FieldDescription, NormalizeText(content))
		}
	}

	// Headings are usually closer to the on-page brand than the <title>.
	if h1, ok := doc.FindFirst("h1"); ok {
		out.Set(models.FieldBusinessName, NormalizeText(h1.Text()))
	}

	return out
}

// NormalizeText trims input and collapses every run of whitespace,
// including newlines, into a single space.
func NormalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
