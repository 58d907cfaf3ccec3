package header

import (
	"strings"

	"github.com/wovenwire/wovenwire/pkg/grammar"
)

// MediaType is a structured "type/subtype; param=value..." value, as used
// by Content-Type and Accept.
type MediaType struct {
	Type    string
	Subtype string
	Params  grammar.ParamList
}

// Full returns "type/subtype" without parameters.
func (m MediaType) Full() string {
	return m.Type + "/" + m.Subtype
}

// Charset returns the "charset" parameter, defaulting to "utf-8" per
// spec.md §4.4, when absent.
func (m MediaType) Charset() string {
	if v, ok := m.Params.Get("charset"); ok {
		return v
	}
	return "utf-8"
}

// ParseMediaType parses a Content-Type/Accept-style media type value.
func ParseMediaType(s string) (MediaType, bool) {
	s = grammar.TrimOWS(s)

	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return MediaType{}, false
	}
	typ := s[:slash]
	rest := s[slash+1:]

	subtype, rest := grammar.SplitToken(rest)
	if typ == "" || subtype == "" || !grammar.IsToken(typ) {
		return MediaType{}, false
	}

	params, _ := grammar.ParseParams(rest)
	return MediaType{Type: strings.ToLower(typ), Subtype: strings.ToLower(subtype), Params: params}, true
}

// Format formats m back into wire form. Type and subtype are emitted as
// stored; [ParseMediaType] is what lower-cases them.
func (m MediaType) Format() string {
	return m.Full() + grammar.FormatParams(m.Params)
}
