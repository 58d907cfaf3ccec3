package grammar

import "strings"

// FormatQuotedString quotes s as an RFC 7230 quoted-string, escaping
// backslashes and double quotes.
func FormatQuotedString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// ParseQuotedString parses a leading quoted-string from s (which must start
// with a double quote) and returns the unescaped value plus the remainder.
func ParseQuotedString(s string) (value, rest string, ok bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", s, false
	}

	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == '"':
			return b.String(), s[i+1:], true
		case c == '\\' && i+1 < len(s):
			b.WriteByte(s[i+1])
			i += 2
		case c == '\\':
			return "", s, false // Dangling escape.
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", s, false // Unterminated.
}

// FormatToken formats v either as a bare token (if it's already a valid
// one) or as a quoted-string otherwise. Used by parameter formatting,
// where RFC 7230 allows either representation.
func FormatToken(v string) string {
	if IsToken(v) {
		return v
	}
	return FormatQuotedString(v)
}
