// Package schemaorg extracts business fields from embedded JSON-LD blocks.
package schemaorg

import (
	"log/slog"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/document"
)

// ContentType marks a script element as a JSON-LD block.
const ContentType = "application/ld+json"

// Extract decodes every JSON-LD block in doc and projects recognised items
// onto record fields. Later items overwrite earlier ones field by field.
// Blocks that fail to decode are skipped.
func Extract(doc document.Document) models.Candidates {
	out := models.NewCandidates()

	for i, script := range doc.FindAll("script", document.AttrEquals("type", ContentType)) {
		items, err := Decode([]byte(script.Text()))
		if err != nil {
			slog.Debug("skipping structured-data block", "index", i, "error", err)
			continue
		}
		for _, it := range items {
			out.Merge(it.Candidates())
		}
	}

	return out
}
