package models

import "strings"

// Field names shared by every extractor and the canonical record.
const (
	FieldBusinessName = "businessName"
	FieldDescription  = "description"
	FieldIndustry     = "industry"
	FieldAddress      = "address"
	FieldWebsite      = "website"
	FieldLogo         = "logo"
)

// Candidates is one extractor's partial view of a business record.
// A missing key means the extractor found nothing; values are never empty.
type Candidates map[string]string

// NewCandidates returns an empty candidate set.
func NewCandidates() Candidates {
	return Candidates{}
}

// Set assigns value to field, overwriting any earlier value.
// Blank values are ignored so absence stays distinguishable from "".
func (c Candidates) Set(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	c[field] = value
}

// SetIfAbsent assigns value only when field has no value yet.
func (c Candidates) SetIfAbsent(field, value string) {
	if _, ok := c[field]; ok {
		return
	}
	c.Set(field, value)
}

// Get returns the value for field and whether one was found.
func (c Candidates) Get(field string) (string, bool) {
	v, ok := c[field]
	return v, ok
}

// Merge copies every value of other into c (last write wins).
func (c Candidates) Merge(other Candidates) {
	for k, v := range other {
		c.Set(k, v)
	}
}
