package message

import (
	"net/url"
	"strings"
)

// ParseQuery decodes a raw "a=1&b=2&a=3" query string into an ordered
// [Query], preserving duplicate keys and their relative order (spec.md
// §3: "insertion order relevant").
func ParseQuery(raw string) Query {
	var q Query
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			k = key
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			v = value
		}
		q = append(q, QueryParam{Key: k, Value: v})
	}
	return q
}

// FormatQuery re-encodes q into a raw query string.
func FormatQuery(q Query) string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
