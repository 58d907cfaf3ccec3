package httpheader

import "strings"

const hTransferEncoding = "Transfer-Encoding"

// HasTransferEncoding reports whether m carries a Transfer-Encoding header.
func HasTransferEncoding[T Headered](m T) bool { return has(m, hTransferEncoding) }

// TransferEncoding returns m's Transfer-Encoding codings in wire order
// (the last entry is closest to the wire, per RFC 9112 §6.1).
func TransferEncoding[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hTransferEncoding)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// TransferEncodingOption is the non-error variant of [TransferEncoding].
func TransferEncodingOption[T Headered](m T) ([]string, bool) {
	te, err := TransferEncoding(m)
	return te, err == nil
}

// WithTransferEncoding sets the Transfer-Encoding header.
func WithTransferEncoding[T Headered](m T, codings ...string) T {
	return withHeader(m, hTransferEncoding, strings.Join(codings, ", "))
}

// WithoutTransferEncoding removes the Transfer-Encoding header.
func WithoutTransferEncoding[T Headered](m T) T { return withoutHeader(m, hTransferEncoding) }

const hContentEncoding = "Content-Encoding"

// HasContentEncoding reports whether m carries a Content-Encoding header.
func HasContentEncoding[T Headered](m T) bool { return has(m, hContentEncoding) }

// ContentEncoding returns m's Content-Encoding codings in wire order (the
// order they were applied, so the last entry was applied last, per RFC
// 9110 §8.4).
func ContentEncoding[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hContentEncoding)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// ContentEncodingOption is the non-error variant of [ContentEncoding].
func ContentEncodingOption[T Headered](m T) ([]string, bool) {
	ce, err := ContentEncoding(m)
	return ce, err == nil
}

// WithContentEncoding sets the Content-Encoding header.
func WithContentEncoding[T Headered](m T, codings ...string) T {
	return withHeader(m, hContentEncoding, strings.Join(codings, ", "))
}

// WithoutContentEncoding removes the Content-Encoding header.
func WithoutContentEncoding[T Headered](m T) T { return withoutHeader(m, hContentEncoding) }

// hContentLanguage is its own header, distinct from Content-Type: an
// earlier design in this system's history conflated the two, which
// spec.md's design notes call out as a defect this accessor must not repeat.
const hContentLanguage = "Content-Language"

// HasContentLanguage reports whether m carries a Content-Language header.
func HasContentLanguage[T Headered](m T) bool { return has(m, hContentLanguage) }

// ContentLanguage returns m's Content-Language tags.
func ContentLanguage[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hContentLanguage)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// ContentLanguageOption is the non-error variant of [ContentLanguage].
func ContentLanguageOption[T Headered](m T) ([]string, bool) {
	cl, err := ContentLanguage(m)
	return cl, err == nil
}

// WithContentLanguage sets the Content-Language header.
func WithContentLanguage[T Headered](m T, tags ...string) T {
	return withHeader(m, hContentLanguage, strings.Join(tags, ", "))
}

// WithoutContentLanguage removes the Content-Language header.
func WithoutContentLanguage[T Headered](m T) T { return withoutHeader(m, hContentLanguage) }

const hConnection = "Connection"

// HasConnection reports whether m carries a Connection header.
func HasConnection[T Headered](m T) bool { return has(m, hConnection) }

// Connection returns m's Connection options (e.g. "close", "keep-alive",
// or hop-by-hop header names to strip).
func Connection[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hConnection)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// ConnectionOption is the non-error variant of [Connection].
func ConnectionOption[T Headered](m T) ([]string, bool) {
	c, err := Connection(m)
	return c, err == nil
}

// ConnectionHasToken reports whether Connection lists token, case-insensitively.
func ConnectionHasToken[T Headered](m T, token string) bool {
	opts, err := Connection(m)
	if err != nil {
		return false
	}
	for _, o := range opts {
		if strings.EqualFold(o, token) {
			return true
		}
	}
	return false
}

// WithConnection sets the Connection header.
func WithConnection[T Headered](m T, options ...string) T {
	return withHeader(m, hConnection, strings.Join(options, ", "))
}

// WithoutConnection removes the Connection header.
func WithoutConnection[T Headered](m T) T { return withoutHeader(m, hConnection) }

const hUpgrade = "Upgrade"

// HasUpgrade reports whether m carries an Upgrade header.
func HasUpgrade[T Headered](m T) bool { return has(m, hUpgrade) }

// Upgrade returns m's Upgrade protocol tokens.
func Upgrade[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hUpgrade)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// UpgradeOption is the non-error variant of [Upgrade].
func UpgradeOption[T Headered](m T) ([]string, bool) {
	u, err := Upgrade(m)
	return u, err == nil
}

// WithUpgrade sets the Upgrade header.
func WithUpgrade[T Headered](m T, protocols ...string) T {
	return withHeader(m, hUpgrade, strings.Join(protocols, ", "))
}

// WithoutUpgrade removes the Upgrade header.
func WithoutUpgrade[T Headered](m T) T { return withoutHeader(m, hUpgrade) }

const hHost = "Host"

// HasHost reports whether m carries a Host header.
func HasHost[T Headered](m T) bool { return has(m, hHost) }

// Host returns m's Host header value.
func Host[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hHost)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// HostOption is the non-error variant of [Host].
func HostOption[T Headered](m T) (string, bool) { return getRaw(m, hHost) }

// WithHost sets the Host header.
func WithHost[T Headered](m T, host string) T { return withHeader(m, hHost, host) }

// WithoutHost removes the Host header.
func WithoutHost[T Headered](m T) T { return withoutHeader(m, hHost) }

const hAllow = "Allow"

// HasAllow reports whether m carries an Allow header.
func HasAllow[T Headered](m T) bool { return has(m, hAllow) }

// Allow returns m's Allow method list.
func Allow[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hAllow)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// AllowOption is the non-error variant of [Allow].
func AllowOption[T Headered](m T) ([]string, bool) {
	a, err := Allow(m)
	return a, err == nil
}

// WithAllow sets the Allow header.
func WithAllow[T Headered](m T, methods ...string) T {
	return withHeader(m, hAllow, strings.Join(methods, ", "))
}

// WithoutAllow removes the Allow header.
func WithoutAllow[T Headered](m T) T { return withoutHeader(m, hAllow) }

const hVary = "Vary"

// HasVary reports whether m carries a Vary header.
func HasVary[T Headered](m T) bool { return has(m, hVary) }

// Vary returns m's Vary field-name list.
func Vary[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hVary)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// VaryOption is the non-error variant of [Vary].
func VaryOption[T Headered](m T) ([]string, bool) {
	v, err := Vary(m)
	return v, err == nil
}

// WithVary sets the Vary header.
func WithVary[T Headered](m T, names ...string) T {
	return withHeader(m, hVary, strings.Join(names, ", "))
}

// WithoutVary removes the Vary header.
func WithoutVary[T Headered](m T) T { return withoutHeader(m, hVary) }

const hTrailer = "Trailer"

// HasTrailer reports whether m carries a Trailer header.
func HasTrailer[T Headered](m T) bool { return has(m, hTrailer) }

// Trailer returns m's Trailer field-name list.
func Trailer[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hTrailer)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// TrailerOption is the non-error variant of [Trailer].
func TrailerOption[T Headered](m T) ([]string, bool) {
	t, err := Trailer(m)
	return t, err == nil
}

// WithTrailer sets the Trailer header.
func WithTrailer[T Headered](m T, names ...string) T {
	return withHeader(m, hTrailer, strings.Join(names, ", "))
}

// WithoutTrailer removes the Trailer header.
func WithoutTrailer[T Headered](m T) T { return withoutHeader(m, hTrailer) }
