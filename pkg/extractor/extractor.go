// Package extractor reconciles the outputs of every metadata source into one
// BusinessMetadata record.
//
// Each source runs independently against the same document and URL. Fields
// are then merged with a fixed per-field priority (first non-empty value
// wins), the business name and description are sanitized, and the raw
// per-source candidates are kept in RawMetadata for auditing.
//
// Extract performs no I/O and keeps no state between calls, so it is safe to
// call concurrently.
package extractor

import (
	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/detector"
	"github.com/dtnitsch/url-metadata-extractor/pkg/document"
	"github.com/dtnitsch/url-metadata-extractor/pkg/metatags"
	"github.com/dtnitsch/url-metadata-extractor/pkg/parser"
	"github.com/dtnitsch/url-metadata-extractor/pkg/schemaorg"
)

// Extract builds the canonical record for doc, fetched from sourceURL.
// It never fails: sources that find nothing leave their fields nil.
func Extract(doc document.Document, sourceURL string) *models.BusinessMetadata {
	schema := schemaorg.Extract(doc)
	og := metatags.OpenGraph(doc)
	twitter := metatags.TwitterCard(doc)
	html := parser.ExtractHTML(doc)
	industry := detector.DetectIndustry(sourceURL)
	address := detector.SniffAddress(doc)

	return &models.BusinessMetadata{
		BusinessName: models.StringPtr(SanitizeName(
			first(models.FieldBusinessName, schema, og, twitter, html),
		)),
		Description: models.StringPtr(description(schema, og, twitter, html)),
		Industry: models.StringPtr(orElse(first(models.FieldIndustry, schema, og), industry)),
		Address:  models.StringPtr(orElse(first(models.FieldAddress, schema), address)),
		Website:  models.StringPtr(orElse(first(models.FieldWebsite, og), sourceURL)),
		// No structured-data projection emits a logo, so in practice this
		// starts at Open Graph.
		Logo: models.StringPtr(first(models.FieldLogo, schema, og, twitter)),
		RawMetadata: map[string]any{
			models.RawSchema:           schema,
			models.RawOpenGraph:        og,
			models.RawTwitter:          twitter,
			models.RawHTML:             html,
			models.RawDetectedIndustry: models.StringPtr(industry),
		},
	}
}

// SocialRecord is the minimal record returned for social-network URLs, which
// are never fetched.
func SocialRecord(sourceURL string, platform detector.SocialPlatform) *models.BusinessMetadata {
	return &models.BusinessMetadata{
		Industry: models.StringPtr("Social Media"),
		Website:  models.StringPtr(sourceURL),
		RawMetadata: map[string]any{
			models.RawSource:         platform.Name,
			models.RawOAuthAvailable: platform.OAuthAvailable,
		},
	}
}

// description picks the description by priority. Only structured data may
// carry markup; meta content is already plain text and is kept as written.
func description(schema models.Candidates, rest ...models.Candidates) string {
	if v, ok := schema.Get(models.FieldDescription); ok {
		return SanitizeDescription(v)
	}
	return parser.NormalizeText(first(models.FieldDescription, rest...))
}

// first returns field from the first source that has it.
func first(field string, sources ...models.Candidates) string {
	for _, src := range sources {
		if v, ok := src.Get(field); ok {
			return v
		}
	}
	return ""
}

func orElse(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
