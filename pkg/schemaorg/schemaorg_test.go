package schemaorg

import (
	"strings"
	"testing"

	"github.com/dtnitsch/url-metadata-extractor/models"
	"github.com/dtnitsch/url-metadata-extractor/pkg/document"
)

func parse(t *testing.T, blocks ...string) document.Document {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("<html><head>")
	for _, b := range blocks {
		sb.WriteString(`<script type="application/ld+json">`)
		sb.WriteString(b)
		sb.WriteString("</script>")
	}
	sb.WriteString("</head><body></body></html>")

	doc, err := document.ParseString(sb.String())
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	return doc
}

func assertField(t *testing.T, c models.Candidates, field, want string) {
	t.Helper()
	got, ok := c.Get(field)
	if want == "" {
		if ok {
			t.Errorf("%s = %q, want absent", field, got)
		}
		return
	}
	if got != want {
		t.Errorf("%s = %q, want %q", field, got, want)
	}
}

func TestExtract_MalformedOrAbsentBlocks(t *testing.T) {
	tests := []struct {
		name   string
		blocks []string
	}{
		{name: "no blocks", blocks: nil},
		{name: "empty block", blocks: []string{""}},
		{name: "truncated object", blocks: []string{`{"@type": "Organization", "name": "Acme"`}},
		{name: "not json", blocks: []string{`var x = 1;`}},
		{name: "scalar", blocks: []string{`42`}},
		{name: "unrecognized type", blocks: []string{`{"@type": "WebSite", "name": "Acme"}`}},
		{name: "missing type", blocks: []string{`{"name": "Acme"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(parse(t, tt.blocks...))
			if len(got) != 0 {
				t.Errorf("Extract() = %v, want empty", got)
			}
		})
	}
}

func TestExtract_MalformedBlockDoesNotAffectOthers(t *testing.T) {
	doc := parse(t,
		`{"@type": "Organization", "name": `,
		`{"@type": "Organization", "name": "Acme"}`,
	)
	assertField(t, Extract(doc), models.FieldBusinessName, "Acme")
}

func TestExtract_LocalBusiness(t *testing.T) {
	doc := parse(t, `{
		"@context": "https://schema.org",
		"@type": "LocalBusiness",
		"name": "Acme Salon",
		"description": "Cuts and colour",
		"category": "Hair salon",
		"keywords": "hair, colour",
		"address": {
			"@type": "PostalAddress",
			"streetAddress": "1 Main St",
			"addressLocality": "Springfield"
		}
	}`)

	got := Extract(doc)
	assertField(t, got, models.FieldBusinessName, "Acme Salon")
	assertField(t, got, models.FieldDescription, "Cuts and colour")
	assertField(t, got, models.FieldIndustry, "Hair salon")
	assertField(t, got, models.FieldAddress, "1 Main St, Springfield")
	assertField(t, got, models.FieldLogo, "")
	assertField(t, got, models.FieldWebsite, "")
}

func TestExtract_BusinessFallbacks(t *testing.T) {
	doc := parse(t, `{"@type": "Organization", "legalName": "Acme Holdings LLC", "keywords": ["plumbing", "heating"], "address": "1 Main St, Springfield"}`)

	got := Extract(doc)
	assertField(t, got, models.FieldBusinessName, "Acme Holdings LLC")
	assertField(t, got, models.FieldIndustry, "plumbing, heating")
	assertField(t, got, models.FieldAddress, "1 Main St, Springfield")
	assertField(t, got, models.FieldDescription, "")
}

func TestExtract_Person(t *testing.T) {
	tests := []struct {
		name         string
		block        string
		wantName     string
		wantIndustry string
	}{
		{
			name:         "job title",
			block:        `{"@type": "Person", "name": "Jane Doe", "description": "Portraits", "jobTitle": "Photographer"}`,
			wantName:     "Jane Doe",
			wantIndustry: "Photographer",
		},
		{
			name:         "description fallback",
			block:        `{"@type": "Person", "name": "Jane Doe", "description": "Portraits"}`,
			wantName:     "Jane Doe",
			wantIndustry: "Portraits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(parse(t, tt.block))
			assertField(t, got, models.FieldBusinessName, tt.wantName)
			assertField(t, got, models.FieldIndustry, tt.wantIndustry)
			assertField(t, got, models.FieldAddress, "")
		})
	}
}

func TestExtract_LastItemWins(t *testing.T) {
	doc := parse(t,
		`[{"@type": "Organization", "name": "First", "description": "kept"},
		  {"@type": "Organization", "name": "Second"}]`,
		`{"@type": "Organization", "name": "Third"}`,
	)

	got := Extract(doc)
	assertField(t, got, models.FieldBusinessName, "Third")
	// The later items carry no description, so the earlier one survives.
	assertField(t, got, models.FieldDescription, "kept")
}

func TestExtract_Graph(t *testing.T) {
	doc := parse(t, `{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebSite", "name": "Site"},
			{"@type": ["Organization", "Brand"], "name": "Graph Co", "category": "Retail"}
		]
	}`)

	got := Extract(doc)
	assertField(t, got, models.FieldBusinessName, "Graph Co")
	assertField(t, got, models.FieldIndustry, "Retail")
}

func TestExtract_TypeAttributeIgnoresCase(t *testing.T) {
	doc, err := document.ParseString(`<script type="Application/LD+JSON">{"@type":"Organization","name":"Acme"}</script>`)
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	assertField(t, Extract(doc), models.FieldBusinessName, "Acme")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		typ  string
		want Kind
	}{
		{"localbusiness", KindBusiness},
		{"organization", KindBusiness},
		{"nonprofitorganization", KindBusiness},
		{"hairsalon business", KindBusiness},
		{"person", KindPerson},
		{"website", KindUnrecognized},
		{"", KindUnrecognized},
	}

	for _, tt := range tests {
		if got := Classify(tt.typ); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestDecode_TypedAccessors(t *testing.T) {
	items, err := Decode([]byte(`[{"@type":"LocalBusiness","name":"A"},{"@type":"Person","name":"B"},{"@type":"Event"}, 7]`))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Decode() returned %d items, want 3", len(items))
	}

	if b, ok := items[0].Business(); !ok || b.Name != "A" {
		t.Errorf("items[0].Business() = %v, %v", b, ok)
	}
	if _, ok := items[0].Person(); ok {
		t.Error("business item should not expose a person")
	}
	if p, ok := items[1].Person(); !ok || p.Name != "B" {
		t.Errorf("items[1].Person() = %v, %v", p, ok)
	}
	if items[2].Kind != KindUnrecognized || items[2].Type != "event" {
		t.Errorf("items[2] = %+v, want unrecognized event", items[2])
	}
	if len(items[2].Candidates()) != 0 {
		t.Error("unrecognized item should yield no candidates")
	}
}

func TestDecode_NonStringFieldsAreAbsent(t *testing.T) {
	items, err := Decode([]byte(`{"@type":"Organization","name":{"@id":"x"},"legalName":"Legal","category":12}`))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	c := items[0].Candidates()
	assertField(t, c, models.FieldBusinessName, "Legal")
	assertField(t, c, models.FieldIndustry, "")
}
