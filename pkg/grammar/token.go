// Package grammar implements the RFC 7230/7231 lexical primitives shared by
// every structured header grammar in [pkg/header]: tokens, quoted strings,
// optional whitespace, parameter lists, q-weighted lists, and dates.
package grammar

import "golang.org/x/net/http/httpguts"

// IsToken reports whether s is a valid RFC 7230 "token": one or more
// tchar characters, with no separators or whitespace.
func IsToken(s string) bool {
	return s != "" && httpguts.ValidHeaderFieldName(s)
}

// IsFieldValue reports whether s is a valid header field value: visible
// ASCII, obs-text bytes (0x80-0xFF) and SP/HTAB, with no CR, LF or other
// control characters.
func IsFieldValue(s string) bool {
	return httpguts.ValidHeaderFieldValue(s)
}

// TrimOWS trims RFC 7230 "optional whitespace" (SP / HTAB) from both ends.
func TrimOWS(s string) string {
	i, j := 0, len(s)
	for i < j && isOWS(s[i]) {
		i++
	}
	for j > i && isOWS(s[j-1]) {
		j--
	}
	return s[i:j]
}

func isOWS(b byte) bool { return b == ' ' || b == '\t' }

// SplitToken consumes a leading token from s and returns it along with the
// remainder of s (which still has any OWS before it).
func SplitToken(s string) (token, rest string) {
	i := 0
	for i < len(s) && isTChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isTChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}
