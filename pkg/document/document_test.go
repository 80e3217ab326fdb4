package document

import "testing"

const page = `<html><head>
<title>Home</title>
<meta property="og:title" content="Acme">
<meta name="Twitter:Title" content="Acme on X">
<meta name="description" content="desc">
</head><body><footer>one</footer><footer>two</footer></body></html>`

func mustParse(t *testing.T, markup string) *HTML {
	t.Helper()
	doc, err := ParseString(markup)
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	return doc
}

func TestFindAll(t *testing.T) {
	doc := mustParse(t, page)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "no filter", filter: nil, want: 3},
		{name: "has property", filter: HasAttr("property"), want: 1},
		{name: "name prefix ignores case", filter: AttrHasPrefix("name", "twitter:"), want: 1},
		{name: "name equals", filter: AttrEquals("name", "DESCRIPTION"), want: 1},
		{name: "no match", filter: AttrEquals("name", "keywords"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := doc.FindAll("meta", tt.filter)
			if len(got) != tt.want {
				t.Errorf("FindAll() returned %d elements, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFindFirst(t *testing.T) {
	doc := mustParse(t, page)

	footer, ok := doc.FindFirst("footer")
	if !ok {
		t.Fatal("FindFirst(footer) found nothing")
	}
	if footer.Text() != "one" {
		t.Errorf("footer text = %q, want %q", footer.Text(), "one")
	}

	if _, ok := doc.FindFirst("h1"); ok {
		t.Error("FindFirst(h1) should find nothing")
	}
}

func TestElementAttr(t *testing.T) {
	doc := mustParse(t, page)

	metas := doc.FindAll("meta", HasAttr("property"))
	if len(metas) != 1 {
		t.Fatalf("expected one og meta, got %d", len(metas))
	}
	content, ok := metas[0].Attr("content")
	if !ok || content != "Acme" {
		t.Errorf("content = %q (%v), want %q", content, ok, "Acme")
	}
	if _, ok := metas[0].Attr("name"); ok {
		t.Error("og meta should not carry a name attribute")
	}
}
