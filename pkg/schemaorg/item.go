package schemaorg

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dtnitsch/url-metadata-extractor/models"
)

// Kind classifies a decoded structured-data item by its @type.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindBusiness
	KindPerson
)

func (k Kind) String() string {
	switch k {
	case KindBusiness:
		return "business"
	case KindPerson:
		return "person"
	default:
		return "unrecognized"
	}
}

// Item is one decoded structured-data object. Exactly one of the typed
// accessors returns ok, depending on Kind.
type Item struct {
	Kind Kind
	// Type is the lower-cased @type discriminator.
	Type string

	business *Business
	person   *Person
}

// Business holds the fields read from LocalBusiness/Organization-like items.
type Business struct {
	Name        Text     `json:"name"`
	LegalName   Text     `json:"legalName"`
	Description Text     `json:"description"`
	Category    Text     `json:"category"`
	Keywords    Text     `json:"keywords"`
	Address     *Address `json:"address"`
}

// Person holds the fields read from Person items.
type Person struct {
	Name        Text `json:"name"`
	Description Text `json:"description"`
	JobTitle    Text `json:"jobTitle"`
}

func (it Item) Business() (*Business, bool) {
	return it.business, it.Kind == KindBusiness && it.business != nil
}

func (it Item) Person() (*Person, bool) {
	return it.person, it.Kind == KindPerson && it.person != nil
}

// Candidates projects the item onto record fields. Unrecognized items
// produce an empty set.
func (it Item) Candidates() models.Candidates {
	c := models.NewCandidates()
	if b, ok := it.Business(); ok {
		c.Set(models.FieldBusinessName, b.Name.Or(b.LegalName))
		c.Set(models.FieldDescription, string(b.Description))
		c.Set(models.FieldAddress, FormatAddress(b.Address))
		c.Set(models.FieldIndustry, b.Category.Or(b.Keywords))
	}
	if p, ok := it.Person(); ok {
		c.Set(models.FieldBusinessName, string(p.Name))
		c.Set(models.FieldDescription, string(p.Description))
		c.Set(models.FieldIndustry, p.JobTitle.Or(p.Description))
	}
	return c
}

// Classify maps a lower-cased @type onto a Kind. Matching is by substring,
// so "localbusiness", "hairsalon business" and "nonprofitorganization" all
// count as businesses.
func Classify(typ string) Kind {
	switch {
	case strings.Contains(typ, "localbusiness"),
		strings.Contains(typ, "organization"),
		strings.Contains(typ, "business"):
		return KindBusiness
	case strings.Contains(typ, "person"):
		return KindPerson
	default:
		return KindUnrecognized
	}
}

var errEmptyBlock = errors.New("empty structured-data block")

// Decode parses one structured-data block. The payload may be a single
// object or an array of objects; objects carrying an @graph contribute their
// graph members after themselves. Non-object values are ignored.
func Decode(data []byte) ([]Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errEmptyBlock
	}

	var top json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}

	var items []Item
	for _, raw := range objects(top) {
		items = append(items, decodeObject(raw)...)
	}
	return items, nil
}

// objects returns raw as a list of candidate objects.
func objects(raw json.RawMessage) []json.RawMessage {
	switch firstByte(raw) {
	case '{':
		return []json.RawMessage{raw}
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		return list
	default:
		return nil
	}
}

func decodeObject(raw json.RawMessage) []Item {
	if firstByte(raw) != '{' {
		return nil
	}

	var head struct {
		Type  typeName        `json:"@type"`
		Graph json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil
	}

	it := Item{Type: string(head.Type), Kind: Classify(string(head.Type))}
	switch it.Kind {
	case KindBusiness:
		var b Business
		if err := json.Unmarshal(raw, &b); err != nil {
			it.Kind = KindUnrecognized
		} else {
			it.business = &b
		}
	case KindPerson:
		var p Person
		if err := json.Unmarshal(raw, &p); err != nil {
			it.Kind = KindUnrecognized
		} else {
			it.person = &p
		}
	}

	items := []Item{it}
	if firstByte(head.Graph) == '[' {
		for _, member := range objects(head.Graph) {
			items = append(items, decodeObject(member)...)
		}
	}
	return items
}

func firstByte(raw json.RawMessage) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

// Text is a structured-data text value. It accepts a string, an array of
// strings (joined with ", ") or an object with a "name"; any other shape
// decodes as empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text(decodeText(b, ", "))
	return nil
}

// Or returns t, or alt when t is blank.
func (t Text) Or(alt Text) string {
	if strings.TrimSpace(string(t)) != "" {
		return string(t)
	}
	return string(alt)
}

// typeName is @type, which is either a string or a list of strings.
type typeName string

func (n *typeName) UnmarshalJSON(b []byte) error {
	*n = typeName(strings.ToLower(decodeText(b, " ")))
	return nil
}

func decodeText(b []byte, sep string) string {
	switch firstByte(b) {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(b, &list); err != nil {
			return ""
		}
		var parts []string
		for _, raw := range list {
			if s := decodeText(raw, sep); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, sep)
	case '{':
		var named struct {
			Name json.RawMessage `json:"name"`
		}
		if err := json.Unmarshal(b, &named); err != nil || firstByte(named.Name) != '"' {
			return ""
		}
		return decodeText(named.Name, sep)
	default:
		return ""
	}
}
