package header

import "github.com/wovenwire/wovenwire/pkg/grammar"

// Extension is a single Sec-WebSocket-Extensions offer/agreement token,
// e.g. "permessage-deflate; client_no_context_takeover".
type Extension struct {
	Name   string
	Params grammar.ParamList
}

// Has reports whether a flag parameter (no value) named name is present.
func (e Extension) Has(name string) bool {
	for _, p := range e.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ParseExtensions parses a Sec-WebSocket-Extensions header value into its
// comma-separated, ";"-parameterized extension offers.
func ParseExtensions(s string) []Extension {
	var out []Extension
	for _, part := range grammar.SplitList(s) {
		part = grammar.TrimOWS(part)
		if part == "" {
			continue
		}
		name, rest := grammar.SplitToken(part)
		if name == "" {
			continue
		}
		params, _ := grammar.ParseParams(rest)
		out = append(out, Extension{Name: name, Params: params})
	}
	return out
}

// Format formats extensions back into wire form.
func FormatExtensions(exts []Extension) string {
	s := ""
	for i, e := range exts {
		if i > 0 {
			s += ", "
		}
		s += e.Name + grammar.FormatParams(e.Params)
	}
	return s
}

// PermessageDeflateName is the registered RFC 7692 extension token.
const PermessageDeflateName = "permessage-deflate"

// FindPermessageDeflate returns the first "permessage-deflate" offer, if any.
func FindPermessageDeflate(exts []Extension) (Extension, bool) {
	for _, e := range exts {
		if e.Name == PermessageDeflateName {
			return e, true
		}
	}
	return Extension{}, false
}
