// Package message defines the HTTP message model: [Uri], [Entity],
// [Request] and [Response], the wire-agnostic value types that
// [pkg/httpwire] reads and writes and [pkg/httpheader] exposes typed
// accessors over.
package message

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// QueryParam is one key/value pair in a [Uri]'s query string.
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered multimap from query key to its sequence of values,
// since spec.md §3 requires insertion order to be preserved (a key can
// appear more than once).
type Query []QueryParam

// Values returns every value for key, in insertion order.
func (q Query) Values(key string) []string {
	var out []string
	for _, p := range q {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Get returns the first value for key, and whether it was found.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Add appends a key/value pair, returning the new query.
func (q Query) Add(key, value string) Query {
	return append(q, QueryParam{Key: key, Value: value})
}

// Uri is the scheme/authority/path/query/fragment decomposition required
// by spec.md §1's Non-goals ("URL parsing beyond what RFC 3986
// authority/path/query decomposition requires").
type Uri struct {
	Scheme   string
	Host     string // Lower-cased, punycode-normalized for IDN hosts.
	Port     string // Empty when not explicit.
	Path     string
	RawQuery string
	Fragment string
}

// Authority returns "host[:port]".
func (u Uri) Authority() string {
	if u.Port == "" {
		return u.Host
	}
	return net.JoinHostPort(u.Host, u.Port)
}

// IsIPLiteral reports whether Host is an IP address literal rather than a
// registered domain name — relevant to the cookie matching rules in
// spec.md §4.3, which forbid suffix-matching against IP literals.
func (u Uri) IsIPLiteral() bool {
	return net.ParseIP(u.Host) != nil
}

// Query parses and returns the decoded query string.
func (u Uri) Query() Query {
	return ParseQuery(u.RawQuery)
}

// ParseUri parses an absolute URI of the form
// "scheme://host[:port][/path][?query][#fragment]". Relative targets are
// not handled here ([pkg/httpwire] keeps a request's target as the raw
// string); this function is for absolute targets (cookie store lookups,
// WebSocket Dial targets, absolute-form request targets).
func ParseUri(raw string) (Uri, error) {
	schemeEnd := strings.Index(raw, "://")
	if schemeEnd < 0 {
		return Uri{}, fmt.Errorf("message: URI %q has no scheme", raw)
	}
	u := Uri{Scheme: strings.ToLower(raw[:schemeEnd])}
	rest := raw[schemeEnd+3:]

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.RawQuery = rest[i+1:]
		rest = rest[:i]
	}

	authority := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		authority = rest[:i]
		u.Path = rest[i:]
	} else {
		u.Path = "/"
	}
	if authority == "" {
		return Uri{}, fmt.Errorf("message: URI %q has no authority", raw)
	}

	host, port, err := splitAuthority(authority)
	if err != nil {
		return Uri{}, err
	}
	normalized, err := idna.Lookup.ToASCII(host)
	if err != nil {
		// Not every "host" is a registrable domain (IP literals, "*", etc.);
		// fall back to the lower-cased original rather than failing the parse.
		normalized = strings.ToLower(host)
	}
	u.Host, u.Port = normalized, port

	return u, nil
}

func splitAuthority(authority string) (host, port string, err error) {
	if strings.HasPrefix(authority, "[") {
		// IPv6 literal, optionally with a port: "[::1]:8080".
		end := strings.IndexByte(authority, ']')
		if end < 0 {
			return "", "", fmt.Errorf("message: malformed IPv6 authority %q", authority)
		}
		host = authority[1:end]
		if rest := authority[end+1:]; strings.HasPrefix(rest, ":") {
			port = rest[1:]
		}
		return host, port, nil
	}
	if i := strings.LastIndexByte(authority, ':'); i >= 0 {
		if _, err := strconv.Atoi(authority[i+1:]); err == nil {
			return authority[:i], authority[i+1:], nil
		}
	}
	return authority, "", nil
}

// String formats u back into an absolute URI.
func (u Uri) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Authority())
	if u.Path == "" {
		b.WriteByte('/')
	} else {
		b.WriteString(u.Path)
	}
	if u.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}
