package grammar

import "strings"

// Param is a single ";"-separated "name[=value]" parameter.
type Param struct {
	Name  string
	Value string
}

// ParamList is an ordered sequence of parameters, as found after a media
// type, a Content-Disposition, a cache directive, or similar headers.
// Order is preserved on both parse and format, per the round-trip
// invariant in spec.md §8.
type ParamList []Param

// Get returns the value of the first parameter matching name
// (case-insensitive), and whether it was found.
func (p ParamList) Get(name string) (string, bool) {
	for _, kv := range p {
		if strings.EqualFold(kv.Name, name) {
			return kv.Value, true
		}
	}
	return "", false
}

// ParseParams parses a ";"-separated parameter list. Each parameter is
// "OWS ';' OWS name ['=' (token / quoted-string)]". Malformed trailing
// input is returned unparsed as the second return value.
func ParseParams(s string) (ParamList, string) {
	var params ParamList
	for {
		trimmed := TrimOWS(s)
		if !strings.HasPrefix(trimmed, ";") {
			return params, s
		}
		rest := TrimOWS(trimmed[1:])

		name, after := SplitToken(rest)
		if name == "" {
			return params, s
		}
		after = TrimOWS(after)

		if !strings.HasPrefix(after, "=") {
			params = append(params, Param{Name: name})
			s = after
			continue
		}
		after = after[1:]

		var value string
		if strings.HasPrefix(after, "\"") {
			v, r, ok := ParseQuotedString(after)
			if !ok {
				return params, s
			}
			value, after = v, r
		} else {
			value, after = SplitToken(after)
			if value == "" {
				return params, s
			}
		}

		params = append(params, Param{Name: name, Value: value})
		s = after
	}
}

// FormatParams formats params as a ";"-separated list, each prefixed with
// "; " and values quoted only when they aren't valid tokens.
func FormatParams(params ParamList) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString("; ")
		b.WriteString(p.Name)
		if p.Value != "" {
			b.WriteByte('=')
			b.WriteString(FormatToken(p.Value))
		}
	}
	return b.String()
}
