package schemaorg

import (
	"encoding/json"
	"strings"
)

// Address is a structured-data address: either a plain line or a PostalAddress.
type Address struct {
	Line   string
	Postal *PostalAddress
}

// PostalAddress mirrors the schema.org PostalAddress fields we render.
type PostalAddress struct {
	StreetAddress   Text `json:"streetAddress"`
	AddressLocality Text `json:"addressLocality"`
	AddressRegion   Text `json:"addressRegion"`
	PostalCode      Text `json:"postalCode"`
	AddressCountry  Text `json:"addressCountry"`
}

func (a *Address) UnmarshalJSON(b []byte) error {
	switch firstByte(b) {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			a.Line = s
		}
	case '{':
		var p PostalAddress
		if err := json.Unmarshal(b, &p); err == nil {
			a.Postal = &p
		}
	}
	return nil
}

// FormatAddress renders an address as one display line. Plain lines are
// returned verbatim; postal addresses join street, locality, region, postal
// code and country with ", ", skipping missing parts. It returns "" when
// there is nothing to render.
func FormatAddress(a *Address) string {
	if a == nil {
		return ""
	}
	if a.Postal == nil {
		return a.Line
	}

	p := a.Postal
	var parts []string
	for _, part := range []Text{p.StreetAddress, p.AddressLocality, p.AddressRegion, p.PostalCode, p.AddressCountry} {
		if s := strings.TrimSpace(string(part)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
