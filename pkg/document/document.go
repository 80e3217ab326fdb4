// Package document exposes the small read-only view of a parsed HTML page
// that the extractors need: find elements by tag, read attributes and text.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element is a single node of a parsed page.
type Element interface {
	Attr(name string) (string, bool)
	Text() string
}

// Filter narrows FindAll to elements whose attributes satisfy it.
type Filter func(Element) bool

// Document is a parsed page. Implementations must not be mutated by callers.
type Document interface {
	// FindAll returns every element named tag, in document order, that passes
	// filter. A nil filter matches everything.
	FindAll(tag string, filter Filter) []Element
	// FindFirst returns the first element named tag.
	FindFirst(tag string) (Element, bool)
}

// HasAttr matches elements carrying attribute name.
func HasAttr(name string) Filter {
	return func(e Element) bool {
		_, ok := e.Attr(name)
		return ok
	}
}

// AttrEquals matches elements whose attribute equals value, ignoring case and
// surrounding whitespace.
func AttrEquals(name, value string) Filter {
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && strings.EqualFold(strings.TrimSpace(v), value)
	}
}

// AttrHasPrefix matches elements whose attribute starts with prefix, ignoring case.
func AttrHasPrefix(name, prefix string) Filter {
	prefix = strings.ToLower(prefix)
	return func(e Element) bool {
		v, ok := e.Attr(name)
		return ok && strings.HasPrefix(strings.ToLower(v), prefix)
	}
}

// HTML is a Document backed by a goquery document.
type HTML struct {
	doc *goquery.Document
}

// Parse reads HTML markup from r.
func Parse(r io.Reader) (*HTML, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTML{doc: doc}, nil
}

// ParseString parses markup held in memory.
func ParseString(markup string) (*HTML, error) {
	return Parse(strings.NewReader(markup))
}

// FromGoquery wraps an already parsed goquery document.
func FromGoquery(doc *goquery.Document) *HTML {
	return &HTML{doc: doc}
}

func (h *HTML) FindAll(tag string, filter Filter) []Element {
	var out []Element
	h.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		e := element{sel: s}
		if filter == nil || filter(e) {
			out = append(out, e)
		}
	})
	return out
}

func (h *HTML) FindFirst(tag string) (Element, bool) {
	s := h.doc.Find(tag).First()
	if s.Length() == 0 {
		return nil, false
	}
	return element{sel: s}, true
}

type element struct {
	sel *goquery.Selection
}

func (e element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e element) Text() string {
	return e.sel.Text()
}
