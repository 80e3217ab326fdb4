// Package metatags reads social-preview meta tags (Open Graph and Twitter
// Cards). Within one namespace the first tag for a field wins, since sites
// usually list their most canonical value first.
package metatags

import (
	"strings"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/document"
)

// openGraphFields maps og:* properties to record fields.
var openGraphFields = map[string]string{
	"og:title":       models.FieldBusinessName,
	"og:site_name":   models.FieldBusinessName,
	"og:description": models.FieldDescription,
	"og:image":       models.FieldLogo,
	"og:url":         models.FieldWebsite,
	"og:type":        models.FieldIndustry,
}

// twitterFields maps twitter:* names to record fields.
var twitterFields = map[string]string{
	"twitter:title":       models.FieldBusinessName,
	"twitter:description": models.FieldDescription,
	"twitter:image":       models.FieldLogo,
}

// TwitterPrefix is the name prefix of Twitter Card meta tags.
const TwitterPrefix = "twitter:"

// OpenGraph reads <meta property="og:..."> tags.
func OpenGraph(doc document.Document) models.Candidates {
	return scan(doc.FindAll("meta", document.HasAttr("property")), "property", openGraphFields)
}

// TwitterCard reads <meta name="twitter:..."> tags.
func TwitterCard(doc document.Document) models.Candidates {
	return scan(doc.FindAll("meta", document.AttrHasPrefix("name", TwitterPrefix)), "name", twitterFields)
}

func scan(metas []document.Element, keyAttr string, fields map[string]string) models.Candidates {
	out := models.NewCandidates()
	for _, meta := range metas {
		key, _ := meta.Attr(keyAttr)
		field, ok := fields[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		content, ok := meta.Attr("content")
		if !ok {
			continue
		}
		out.SetIfAbsent(field, content)
	}
	return out
}
