package httpheader

import "github.com/wovenwire/wovenwire/pkg/grammar"

// splitCommaList splits a #list-style header field value on commas,
// trimming optional whitespace around each member per RFC 9110 §5.6.1.
func splitCommaList(v string) []string {
	raw := grammar.SplitList(v)
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = grammar.TrimOWS(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
