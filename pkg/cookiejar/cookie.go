// Package cookiejar implements the persistent-cookie jar spec.md §4.3
// requires: insertion from Set-Cookie response headers, selection for
// Cookie request headers, and RFC 6265 §5's domain/path/secure/host-only/
// expiry matching and public-suffix rejection rules.
package cookiejar

import (
	"strconv"
	"strings"
	"time"

	"github.com/wovenwire/wovenwire/pkg/grammar"
)

// PlainCookie is a single name/value pair as carried on a request's Cookie
// header.
type PlainCookie struct {
	Name  string
	Value string
}

// SetCookie is a single cookie as offered by a response's Set-Cookie
// header, before it's reconciled against the jar's stored state.
type SetCookie struct {
	Name    string
	Value   string
	Domain  string // Empty when the Domain attribute was absent.
	Path    string // Empty when the Path attribute was absent.
	Expires time.Time
	HasExpires bool
	MaxAge     int
	HasMaxAge  bool
	Secure     bool
	HTTPOnly   bool
}

// PersistentCookie is the jar's internal representation: a [SetCookie]
// reconciled against a request target and a prior entry, if any.
type PersistentCookie struct {
	Name       string
	Value      string
	Domain     string
	Path       string
	SecureOnly bool
	HTTPOnly   bool
	HostOnly   bool
	Persistent bool
	Creation   time.Time
	LastAccess time.Time
	Expiry     time.Time
}

// farFutureExpiry stands in for "never expires" on a session (non-persistent)
// cookie, so expiry comparisons ([PersistentCookie.Expiry] > now) don't need
// a separate persistent/session branch.
var farFutureExpiry = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// ParseSetCookie parses a single Set-Cookie header value (RFC 6265 §4.1.1).
// Unrecognized attributes are ignored; Max-Age and Expires are both kept
// when present so the caller can apply §3's max_age-over-expires precedence.
func ParseSetCookie(raw string) (SetCookie, bool) {
	parts := strings.Split(raw, ";")
	nv := strings.TrimSpace(parts[0])
	eq := strings.IndexByte(nv, '=')
	if eq < 0 {
		return SetCookie{}, false
	}
	sc := SetCookie{
		Name:  strings.TrimSpace(nv[:eq]),
		Value: strings.TrimSpace(nv[eq+1:]),
	}
	if sc.Name == "" {
		return SetCookie{}, false
	}

	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			continue
		}
		name, value := attr, ""
		if eq := strings.IndexByte(attr, '='); eq >= 0 {
			name, value = attr[:eq], attr[eq+1:]
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(name)) {
		case "domain":
			sc.Domain = value
		case "path":
			sc.Path = value
		case "secure":
			sc.Secure = true
		case "httponly":
			sc.HTTPOnly = true
		case "max-age":
			if n, err := strconv.Atoi(value); err == nil {
				sc.MaxAge, sc.HasMaxAge = n, true
			}
		case "expires":
			if t, ok := grammar.ParseHTTPDate(value); ok {
				sc.Expires, sc.HasExpires = t, true
			}
		}
	}
	return sc, true
}

// expiry derives the expiry instant from a Set-Cookie's Max-Age/Expires
// attributes per spec.md §3: Max-Age wins over Expires, and a cookie with
// neither is a non-persistent session cookie that never expires on its own.
func (sc SetCookie) expiry(now time.Time) (expiry time.Time, persistent bool) {
	switch {
	case sc.HasMaxAge:
		return now.Add(time.Duration(sc.MaxAge) * time.Second), true
	case sc.HasExpires:
		return sc.Expires, true
	default:
		return farFutureExpiry, false
	}
}

// FormatCookieHeader formats cookies into a single Cookie request header
// value ("name1=value1; name2=value2").
func FormatCookieHeader(cookies []PlainCookie) string {
	var b strings.Builder
	for i, c := range cookies {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(c.Name)
		b.WriteByte('=')
		b.WriteString(c.Value)
	}
	return b.String()
}
