package httpheader

// A handful of headers this system treats as opaque strings rather than
// structured values (Open Question (a)): User-Agent, Server, Via and
// Warning carry free-form or loosely-structured text in practice, and
// spec.md leaves parsing them out of scope.

const hUserAgent = "User-Agent"

// HasUserAgent reports whether m carries a User-Agent header.
func HasUserAgent[T Headered](m T) bool { return has(m, hUserAgent) }

// UserAgent returns m's User-Agent value.
func UserAgent[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hUserAgent)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// UserAgentOption is the non-error variant of [UserAgent].
func UserAgentOption[T Headered](m T) (string, bool) { return getRaw(m, hUserAgent) }

// WithUserAgent sets the User-Agent header.
func WithUserAgent[T Headered](m T, v string) T { return withHeader(m, hUserAgent, v) }

// WithoutUserAgent removes the User-Agent header.
func WithoutUserAgent[T Headered](m T) T { return withoutHeader(m, hUserAgent) }

const hServer = "Server"

// HasServer reports whether m carries a Server header.
func HasServer[T Headered](m T) bool { return has(m, hServer) }

// Server returns m's Server value.
func Server[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hServer)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// ServerOption is the non-error variant of [Server].
func ServerOption[T Headered](m T) (string, bool) { return getRaw(m, hServer) }

// WithServer sets the Server header.
func WithServer[T Headered](m T, v string) T { return withHeader(m, hServer, v) }

// WithoutServer removes the Server header.
func WithoutServer[T Headered](m T) T { return withoutHeader(m, hServer) }

const hVia = "Via"

// HasVia reports whether m carries a Via header.
func HasVia[T Headered](m T) bool { return has(m, hVia) }

// Via returns m's Via value.
func Via[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hVia)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// ViaOption is the non-error variant of [Via].
func ViaOption[T Headered](m T) (string, bool) { return getRaw(m, hVia) }

// WithVia sets the Via header.
func WithVia[T Headered](m T, v string) T { return withHeader(m, hVia, v) }

// WithoutVia removes the Via header.
func WithoutVia[T Headered](m T) T { return withoutHeader(m, hVia) }

const hWarning = "Warning"

// HasWarning reports whether m carries a Warning header.
func HasWarning[T Headered](m T) bool { return has(m, hWarning) }

// Warning returns m's Warning value.
func Warning[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hWarning)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// WarningOption is the non-error variant of [Warning].
func WarningOption[T Headered](m T) (string, bool) { return getRaw(m, hWarning) }

// WithWarning sets the Warning header.
func WithWarning[T Headered](m T, v string) T { return withHeader(m, hWarning, v) }

// WithoutWarning removes the Warning header.
func WithoutWarning[T Headered](m T) T { return withoutHeader(m, hWarning) }

const hLocation = "Location"

// HasLocation reports whether m carries a Location header.
func HasLocation[T Headered](m T) bool { return has(m, hLocation) }

// Location returns m's Location value.
func Location[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hLocation)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// LocationOption is the non-error variant of [Location].
func LocationOption[T Headered](m T) (string, bool) { return getRaw(m, hLocation) }

// WithLocation sets the Location header.
func WithLocation[T Headered](m T, v string) T { return withHeader(m, hLocation, v) }

// WithoutLocation removes the Location header.
func WithoutLocation[T Headered](m T) T { return withoutHeader(m, hLocation) }

const hReferer = "Referer"

// HasReferer reports whether m carries a Referer header.
func HasReferer[T Headered](m T) bool { return has(m, hReferer) }

// Referer returns m's Referer value.
func Referer[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hReferer)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// RefererOption is the non-error variant of [Referer].
func RefererOption[T Headered](m T) (string, bool) { return getRaw(m, hReferer) }

// WithReferer sets the Referer header.
func WithReferer[T Headered](m T, v string) T { return withHeader(m, hReferer, v) }

// WithoutReferer removes the Referer header.
func WithoutReferer[T Headered](m T) T { return withoutHeader(m, hReferer) }

const hOrigin = "Origin"

// HasOrigin reports whether m carries an Origin header.
func HasOrigin[T Headered](m T) bool { return has(m, hOrigin) }

// Origin returns m's Origin value.
func Origin[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hOrigin)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// OriginOption is the non-error variant of [Origin].
func OriginOption[T Headered](m T) (string, bool) { return getRaw(m, hOrigin) }

// WithOrigin sets the Origin header.
func WithOrigin[T Headered](m T, v string) T { return withHeader(m, hOrigin, v) }

// WithoutOrigin removes the Origin header.
func WithoutOrigin[T Headered](m T) T { return withoutHeader(m, hOrigin) }

const hRetryAfter = "Retry-After"

// HasRetryAfter reports whether m carries a Retry-After header.
func HasRetryAfter[T Headered](m T) bool { return has(m, hRetryAfter) }

// RetryAfter returns m's raw Retry-After value, which per RFC 9110 §10.2.3
// is either an HTTP-date or a delay-seconds integer; callers that need a
// parsed form choose the right parser ([grammar.ParseHTTPDate] or
// [strconv.Atoi]) themselves.
func RetryAfter[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hRetryAfter)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// RetryAfterOption is the non-error variant of [RetryAfter].
func RetryAfterOption[T Headered](m T) (string, bool) { return getRaw(m, hRetryAfter) }

// WithRetryAfter sets the Retry-After header.
func WithRetryAfter[T Headered](m T, v string) T { return withHeader(m, hRetryAfter, v) }

// WithoutRetryAfter removes the Retry-After header.
func WithoutRetryAfter[T Headered](m T) T { return withoutHeader(m, hRetryAfter) }
