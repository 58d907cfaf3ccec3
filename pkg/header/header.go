// Package header implements [Header], the ordered list of wire headers
// attached to a pkg/message Request or Response, plus the structured value
// types (media type, disposition, ranges, entity tags, cache directives,
// auth challenge/credentials, WebSocket extension tokens, and weighted
// negotiation ranges) that the typed accessors in [pkg/httpheader] parse
// and format.
package header

import (
	"strings"

	"github.com/wovenwire/wovenwire/pkg/grammar"
)

// Header is a single (name, value) wire header. Name comparisons are
// case-insensitive (spec.md §3); Value is a single unfolded line with no
// CR/LF.
type Header struct {
	Name  string
	Value string
}

// Valid reports whether h satisfies the invariants in spec.md §3: Name is
// an RFC 7230 token and Value has no embedded CR/LF.
func (h Header) Valid() bool {
	return grammar.IsToken(h.Name) && grammar.IsFieldValue(h.Value)
}

// List is an ordered sequence of headers. Duplicates are allowed and
// insertion order is preserved, since some headers carry list semantics
// across repeated header lines (e.g. multiple Set-Cookie).
type List []Header

// Has reports whether a header named name (case-insensitive) is present.
func (l List) Has(name string) bool {
	return l.index(name) >= 0
}

// Get returns the value of the first header named name, and whether it
// was found.
func (l List) Get(name string) (string, bool) {
	if i := l.index(name); i >= 0 {
		return l[i].Value, true
	}
	return "", false
}

// GetAll returns the values of every header named name, in wire order.
func (l List) GetAll(name string) []string {
	var out []string
	for _, h := range l {
		if strings.EqualFold(h.Name, name) {
			out = append(out, h.Value)
		}
	}
	return out
}

func (l List) index(name string) int {
	for i, h := range l {
		if strings.EqualFold(h.Name, name) {
			return i
		}
	}
	return -1
}

// Add appends a header, preserving any existing header of the same name
// (used for list-valued or repeatable headers such as Set-Cookie).
func (l List) Add(name, value string) List {
	return append(l, Header{Name: name, Value: value})
}

// Set replaces every existing header named name with a single header
// carrying value, preserving the position of the first occurrence (or
// appending if name wasn't present). This matches the "withXxx" immutable
// mutator pattern in spec.md §9: it never mutates l in place.
func (l List) Set(name, value string) List {
	out := make(List, 0, len(l)+1)
	replaced := false
	for _, h := range l {
		if strings.EqualFold(h.Name, name) {
			if !replaced {
				out = append(out, Header{Name: name, Value: value})
				replaced = true
			}
			continue
		}
		out = append(out, h)
	}
	if !replaced {
		out = append(out, Header{Name: name, Value: value})
	}
	return out
}

// Remove drops every header named name, returning a new list.
func (l List) Remove(name string) List {
	out := make(List, 0, len(l))
	for _, h := range l {
		if !strings.EqualFold(h.Name, name) {
			out = append(out, h)
		}
	}
	return out
}

// Clone returns a shallow copy, so callers can treat List as a persistent
// value without aliasing the backing array across messages.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}
