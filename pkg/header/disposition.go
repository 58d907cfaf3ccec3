package header

import (
	"strings"

	"github.com/wovenwire/wovenwire/pkg/grammar"
)

// Disposition is a structured Content-Disposition value, as used by both
// the HTTP response header (download hints) and multipart/form-data parts
// (spec.md §4.4, where Kind must be "form-data" and Name is required).
type Disposition struct {
	Kind   string // "form-data", "attachment", "inline", ...
	Name   string // "name" parameter, required for "form-data".
	Params grammar.ParamList
}

// Filename returns the "filename" parameter, if present.
func (d Disposition) Filename() (string, bool) {
	return d.Params.Get("filename")
}

// ParseDisposition parses a Content-Disposition value.
func ParseDisposition(s string) (Disposition, bool) {
	s = grammar.TrimOWS(s)
	kind, rest := grammar.SplitToken(s)
	if kind == "" {
		return Disposition{}, false
	}

	params, _ := grammar.ParseParams(rest)
	d := Disposition{Kind: strings.ToLower(kind), Params: params}
	if name, ok := params.Get("name"); ok {
		d.Name = name
	}
	return d, true
}

// Format formats d back into wire form.
func (d Disposition) Format() string {
	return d.Kind + grammar.FormatParams(d.Params)
}
