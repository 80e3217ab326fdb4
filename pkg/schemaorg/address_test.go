package schemaorg

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		name string
		addr *Address
		want string
	}{
		{name: "nil", addr: nil, want: ""},
		{name: "plain line", addr: &Address{Line: "1 Main St, Springfield"}, want: "1 Main St, Springfield"},
		{
			name: "all components",
			addr: &Address{Postal: &PostalAddress{
				StreetAddress:   "1 Main St",
				AddressLocality: "Springfield",
				AddressRegion:   "IL",
				PostalCode:      "62701",
				AddressCountry:  "US",
			}},
			want: "1 Main St, Springfield, IL, 62701, US",
		},
		{name: "locality only", addr: &Address{Postal: &PostalAddress{AddressLocality: "Springfield"}}, want: "Springfield"},
		{name: "gaps skipped", addr: &Address{Postal: &PostalAddress{StreetAddress: "1 Main St", PostalCode: "62701"}}, want: "1 Main St, 62701"},
		{name: "empty object", addr: &Address{Postal: &PostalAddress{}}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAddress(tt.addr); got != tt.want {
				t.Errorf("FormatAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAddress_FullHasFourSeparators(t *testing.T) {
	var a Address
	err := json.Unmarshal([]byte(`{"streetAddress":"1 Main St","addressLocality":"Springfield","addressRegion":"IL","postalCode":"62701","addressCountry":{"@type":"Country","name":"US"}}`), &a)
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	got := FormatAddress(&a)
	if n := strings.Count(got, ", "); n != 4 {
		t.Errorf("FormatAddress() = %q has %d separators, want 4", got, n)
	}
	if !strings.HasPrefix(got, "1 Main St, Springfield") || !strings.HasSuffix(got, "62701, US") {
		t.Errorf("FormatAddress() = %q, components out of order", got)
	}
}

func TestAddressUnmarshal_UnsupportedShape(t *testing.T) {
	var a Address
	if err := json.Unmarshal([]byte(`[1, 2]`), &a); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if got := FormatAddress(&a); got != "" {
		t.Errorf("FormatAddress() = %q, want empty", got)
	}
}
