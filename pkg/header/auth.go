package header

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wovenwire/wovenwire/pkg/grammar"
)

// Challenge is a single WWW-Authenticate/Proxy-Authenticate challenge:
// a scheme token followed by either a single base64 "token68" (used by
// some legacy schemes) or an auth-param list.
type Challenge struct {
	Scheme string
	Token  string // token68 form, e.g. a raw Bearer challenge with no params.
	Params grammar.ParamList
}

// Credentials is a single Authorization/Proxy-Authorization value: a
// scheme token plus its token68 or auth-param payload.
type Credentials struct {
	Scheme string
	Token  string
	Params grammar.ParamList
}

// ParseChallenges parses a comma-separated list of challenges, as allowed
// by RFC 7235 §4.1 (multiple challenges may share one header line).
func ParseChallenges(s string) ([]Challenge, bool) {
	var out []Challenge
	for _, part := range grammar.SplitList(s) {
		// Auth-params after a challenge's first one arrive as their own
		// comma-separated elements; attach them to that challenge.
		if n := len(out); n > 0 && len(out[n-1].Params) > 0 && looksLikeParamList(part) {
			params, _ := grammar.ParseParams("; " + part)
			out[n-1].Params = append(out[n-1].Params, params...)
			continue
		}
		c, ok := parseAuthValue(part)
		if !ok {
			return nil, false
		}
		out = append(out, Challenge{Scheme: c.Scheme, Token: c.Token, Params: c.Params})
	}
	return out, len(out) > 0
}

// ParseCredentials parses a single Authorization/Proxy-Authorization value.
func ParseCredentials(s string) (Credentials, bool) {
	return parseAuthValue(s)
}

func parseAuthValue(s string) (Credentials, bool) {
	s = grammar.TrimOWS(s)
	scheme, rest := grammar.SplitToken(s)
	if scheme == "" {
		return Credentials{}, false
	}
	rest = grammar.TrimOWS(rest)

	cred := Credentials{Scheme: scheme}
	if rest == "" {
		return cred, true
	}

	// An auth-param list always contains "=", a bare token68 never does
	// (it's drawn from a base64url-like alphabet with no "=" except as
	// trailing padding, which this heuristic treats as part of the token).
	if looksLikeParamList(rest) {
		for _, item := range grammar.SplitList(rest) {
			params, _ := grammar.ParseParams("; " + item)
			cred.Params = append(cred.Params, params...)
		}
		return cred, true
	}

	cred.Token = rest
	return cred, true
}

// looksLikeParamList reports whether rest parses as "name=value[, ...]"
// rather than an opaque token68 string.
func looksLikeParamList(rest string) bool {
	name, after := grammar.SplitToken(rest)
	if name == "" {
		return false
	}
	after = grammar.TrimOWS(after)
	if !strings.HasPrefix(after, "=") {
		return false
	}
	// Nothing but "=" padding after the token means a token68.
	return strings.TrimLeft(after, "=") != ""
}

// Format formats a Challenge back into wire form.
func (c Challenge) Format() string {
	return formatAuthValue(c.Scheme, c.Token, c.Params)
}

// Format formats Credentials back into wire form.
func (c Credentials) Format() string {
	return formatAuthValue(c.Scheme, c.Token, c.Params)
}

func formatAuthValue(scheme, token string, params grammar.ParamList) string {
	if token != "" {
		return scheme + " " + token
	}
	if len(params) == 0 {
		return scheme
	}
	// Parameters use "name=value, name=value" here (not "; " as in media
	// type parameters), per RFC 7235 §2.1's auth-param ABNF.
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + "=" + grammar.FormatToken(p.Value)
	}
	return scheme + " " + strings.Join(parts, ", ")
}

// BearerJWTClaims returns the unverified claims of a "Bearer" credential
// whose token happens to be a JWT, for diagnostic logging only: the core
// has no key material and performs no signature verification. Returns
// ok==false for non-Bearer credentials or tokens that don't parse as a JWT.
func BearerJWTClaims(c Credentials) (jwt.MapClaims, bool) {
	if !strings.EqualFold(c.Scheme, "Bearer") || c.Token == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, _, err := parser.ParseUnverified(c.Token, claims)
	if err != nil {
		return nil, false
	}
	return claims, true
}
