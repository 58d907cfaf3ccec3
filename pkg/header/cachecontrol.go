package header

import (
	"strconv"
	"strings"

	"github.com/wovenwire/wovenwire/pkg/grammar"
)

// CacheDirective is a single Cache-Control directive: a token, optionally
// with a token/quoted-string argument (e.g. "max-age=60", "no-cache",
// "private=\"X-Foo\"").
type CacheDirective struct {
	Name  string
	Value string
	HasValue bool
}

// ParseCacheControl parses a Cache-Control header value into its ordered
// list of directives.
func ParseCacheControl(s string) []CacheDirective {
	var out []CacheDirective
	for _, part := range grammar.SplitList(s) {
		part = grammar.TrimOWS(part)
		if part == "" {
			continue
		}
		if eq := strings.IndexByte(part, '='); eq >= 0 {
			name := grammar.TrimOWS(part[:eq])
			value := grammar.TrimOWS(part[eq+1:])
			if v, rest, ok := grammar.ParseQuotedString(value); ok && rest == "" {
				value = v
			}
			out = append(out, CacheDirective{Name: strings.ToLower(name), Value: value, HasValue: true})
			continue
		}
		out = append(out, CacheDirective{Name: strings.ToLower(part)})
	}
	return out
}

// FormatCacheControl formats directives back into wire form.
func FormatCacheControl(directives []CacheDirective) string {
	parts := make([]string, len(directives))
	for i, d := range directives {
		if !d.HasValue {
			parts[i] = d.Name
			continue
		}
		parts[i] = d.Name + "=" + grammar.FormatToken(d.Value)
	}
	return strings.Join(parts, ", ")
}

// MaxAge returns the "max-age" directive's value in seconds, if present.
func MaxAge(directives []CacheDirective) (int, bool) {
	for _, d := range directives {
		if d.Name == "max-age" && d.HasValue {
			if n, err := strconv.Atoi(d.Value); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// Has reports whether directives includes a directive named name (e.g.
// "no-cache", "no-store", "must-revalidate"), with or without a value.
func Has(directives []CacheDirective, name string) bool {
	for _, d := range directives {
		if d.Name == name {
			return true
		}
	}
	return false
}
