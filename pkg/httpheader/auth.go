package httpheader

import (
	"fmt"

	"github.com/wovenwire/wovenwire/pkg/header"
)

const hAuthorization = "Authorization"

// HasAuthorization reports whether m carries an Authorization header.
func HasAuthorization[T Headered](m T) bool { return has(m, hAuthorization) }

// Authorization returns m's parsed Authorization credentials.
func Authorization[T Headered](m T) (header.Credentials, error) {
	v, ok := getRaw(m, hAuthorization)
	if !ok {
		return header.Credentials{}, ErrHeaderNotFound
	}
	c, ok := header.ParseCredentials(v)
	if !ok {
		return header.Credentials{}, fmt.Errorf("httpheader: malformed Authorization: %q", v)
	}
	return c, nil
}

// AuthorizationOption is the non-error variant of [Authorization].
func AuthorizationOption[T Headered](m T) (header.Credentials, bool) {
	c, err := Authorization(m)
	return c, err == nil
}

// WithAuthorization sets the Authorization header.
func WithAuthorization[T Headered](m T, c header.Credentials) T {
	return withHeader(m, hAuthorization, c.Format())
}

// WithoutAuthorization removes the Authorization header.
func WithoutAuthorization[T Headered](m T) T { return withoutHeader(m, hAuthorization) }

const hProxyAuthorization = "Proxy-Authorization"

// HasProxyAuthorization reports whether m carries a Proxy-Authorization header.
func HasProxyAuthorization[T Headered](m T) bool { return has(m, hProxyAuthorization) }

// ProxyAuthorization returns m's parsed Proxy-Authorization credentials.
func ProxyAuthorization[T Headered](m T) (header.Credentials, error) {
	v, ok := getRaw(m, hProxyAuthorization)
	if !ok {
		return header.Credentials{}, ErrHeaderNotFound
	}
	c, ok := header.ParseCredentials(v)
	if !ok {
		return header.Credentials{}, fmt.Errorf("httpheader: malformed Proxy-Authorization: %q", v)
	}
	return c, nil
}

// ProxyAuthorizationOption is the non-error variant of [ProxyAuthorization].
func ProxyAuthorizationOption[T Headered](m T) (header.Credentials, bool) {
	c, err := ProxyAuthorization(m)
	return c, err == nil
}

// WithProxyAuthorization sets the Proxy-Authorization header.
func WithProxyAuthorization[T Headered](m T, c header.Credentials) T {
	return withHeader(m, hProxyAuthorization, c.Format())
}

// WithoutProxyAuthorization removes the Proxy-Authorization header.
func WithoutProxyAuthorization[T Headered](m T) T { return withoutHeader(m, hProxyAuthorization) }

const hWWWAuthenticate = "WWW-Authenticate"

// HasWWWAuthenticate reports whether m carries a WWW-Authenticate header.
func HasWWWAuthenticate[T Headered](m T) bool { return has(m, hWWWAuthenticate) }

// WWWAuthenticate returns m's parsed WWW-Authenticate challenges.
func WWWAuthenticate[T Headered](m T) ([]header.Challenge, error) {
	v, ok := getRaw(m, hWWWAuthenticate)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	cs, ok := header.ParseChallenges(v)
	if !ok {
		return nil, fmt.Errorf("httpheader: malformed WWW-Authenticate: %q", v)
	}
	return cs, nil
}

// WWWAuthenticateOption is the non-error variant of [WWWAuthenticate].
func WWWAuthenticateOption[T Headered](m T) ([]header.Challenge, bool) {
	cs, err := WWWAuthenticate(m)
	return cs, err == nil
}

// WithWWWAuthenticate sets the WWW-Authenticate header from one or more challenges.
func WithWWWAuthenticate[T Headered](m T, challenges ...header.Challenge) T {
	return withHeader(m, hWWWAuthenticate, formatChallengeList(challenges))
}

// WithoutWWWAuthenticate removes the WWW-Authenticate header.
func WithoutWWWAuthenticate[T Headered](m T) T { return withoutHeader(m, hWWWAuthenticate) }

const hProxyAuthenticate = "Proxy-Authenticate"

// HasProxyAuthenticate reports whether m carries a Proxy-Authenticate header.
func HasProxyAuthenticate[T Headered](m T) bool { return has(m, hProxyAuthenticate) }

// ProxyAuthenticate returns m's parsed Proxy-Authenticate challenges.
func ProxyAuthenticate[T Headered](m T) ([]header.Challenge, error) {
	v, ok := getRaw(m, hProxyAuthenticate)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	cs, ok := header.ParseChallenges(v)
	if !ok {
		return nil, fmt.Errorf("httpheader: malformed Proxy-Authenticate: %q", v)
	}
	return cs, nil
}

// ProxyAuthenticateOption is the non-error variant of [ProxyAuthenticate].
func ProxyAuthenticateOption[T Headered](m T) ([]header.Challenge, bool) {
	cs, err := ProxyAuthenticate(m)
	return cs, err == nil
}

// WithProxyAuthenticate sets the Proxy-Authenticate header from one or more challenges.
func WithProxyAuthenticate[T Headered](m T, challenges ...header.Challenge) T {
	return withHeader(m, hProxyAuthenticate, formatChallengeList(challenges))
}

// WithoutProxyAuthenticate removes the Proxy-Authenticate header.
func WithoutProxyAuthenticate[T Headered](m T) T { return withoutHeader(m, hProxyAuthenticate) }

func formatChallengeList(challenges []header.Challenge) string {
	out := ""
	for i, c := range challenges {
		if i > 0 {
			out += ", "
		}
		out += c.Format()
	}
	return out
}
