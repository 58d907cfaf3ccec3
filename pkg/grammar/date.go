package grammar

import "time"

// Layouts accepted when parsing an HTTP-date, in the order RFC 7231 §7.1.1.1
// lists them: IMF-fixdate (which this library always emits), obsolete
// RFC 850, and the obsolete ANSI C asctime() format.
var dateLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 GMT", // IMF-fixdate / RFC 1123.
	"Monday, 02-Jan-06 15:04:05 GMT", // RFC 850.
	"Mon Jan  2 15:04:05 2006",       // asctime().
}

// ParseHTTPDate parses an HTTP-date value, accepting any of the three
// formats permitted on input by RFC 7231 §7.1.1.1.
func ParseHTTPDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatHTTPDate formats t as an IMF-fixdate, the only format this library
// ever emits on the wire (RFC 7231 §7.1.1.1: "preferred format").
func FormatHTTPDate(t time.Time) string {
	return t.UTC().Format(dateLayouts[0])
}
