package httpheader

import (
	"fmt"
	"time"

	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/header"
)

const hCacheControl = "Cache-Control"

// HasCacheControl reports whether m carries a Cache-Control header.
func HasCacheControl[T Headered](m T) bool { return has(m, hCacheControl) }

// CacheControl returns m's parsed Cache-Control directives.
func CacheControl[T Headered](m T) ([]header.CacheDirective, error) {
	v, ok := getRaw(m, hCacheControl)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return header.ParseCacheControl(v), nil
}

// CacheControlOption is the non-error variant of [CacheControl].
func CacheControlOption[T Headered](m T) ([]header.CacheDirective, bool) {
	d, err := CacheControl(m)
	return d, err == nil
}

// WithCacheControl sets the Cache-Control header from one or more directives.
func WithCacheControl[T Headered](m T, directives ...header.CacheDirective) T {
	return withHeader(m, hCacheControl, header.FormatCacheControl(directives))
}

// WithoutCacheControl removes the Cache-Control header.
func WithoutCacheControl[T Headered](m T) T { return withoutHeader(m, hCacheControl) }

func getDate[T Headered](m T, name string) (time.Time, error) {
	v, ok := getRaw(m, name)
	if !ok {
		return time.Time{}, ErrHeaderNotFound
	}
	t, ok := grammar.ParseHTTPDate(v)
	if !ok {
		return time.Time{}, fmt.Errorf("httpheader: malformed %s: %q", name, v)
	}
	return t, nil
}

func withDate[T Headered](m T, name string, t time.Time) T {
	return withHeader(m, name, grammar.FormatHTTPDate(t))
}

const hDate = "Date"

// HasDate reports whether m carries a Date header.
func HasDate[T Headered](m T) bool { return has(m, hDate) }

// Date returns m's parsed Date.
func Date[T Headered](m T) (time.Time, error) { return getDate(m, hDate) }

// DateOption is the non-error variant of [Date].
func DateOption[T Headered](m T) (time.Time, bool) {
	t, err := Date(m)
	return t, err == nil
}

// WithDate sets the Date header.
func WithDate[T Headered](m T, t time.Time) T { return withDate(m, hDate, t) }

// WithoutDate removes the Date header.
func WithoutDate[T Headered](m T) T { return withoutHeader(m, hDate) }

const hLastModified = "Last-Modified"

// HasLastModified reports whether m carries a Last-Modified header.
func HasLastModified[T Headered](m T) bool { return has(m, hLastModified) }

// LastModified returns m's parsed Last-Modified.
func LastModified[T Headered](m T) (time.Time, error) { return getDate(m, hLastModified) }

// LastModifiedOption is the non-error variant of [LastModified].
func LastModifiedOption[T Headered](m T) (time.Time, bool) {
	t, err := LastModified(m)
	return t, err == nil
}

// WithLastModified sets the Last-Modified header.
func WithLastModified[T Headered](m T, t time.Time) T { return withDate(m, hLastModified, t) }

// WithoutLastModified removes the Last-Modified header.
func WithoutLastModified[T Headered](m T) T { return withoutHeader(m, hLastModified) }

const hExpires = "Expires"

// HasExpires reports whether m carries an Expires header.
func HasExpires[T Headered](m T) bool { return has(m, hExpires) }

// Expires returns m's parsed Expires.
func Expires[T Headered](m T) (time.Time, error) { return getDate(m, hExpires) }

// ExpiresOption is the non-error variant of [Expires].
func ExpiresOption[T Headered](m T) (time.Time, bool) {
	t, err := Expires(m)
	return t, err == nil
}

// WithExpires sets the Expires header.
func WithExpires[T Headered](m T, t time.Time) T { return withDate(m, hExpires, t) }

// WithoutExpires removes the Expires header.
func WithoutExpires[T Headered](m T) T { return withoutHeader(m, hExpires) }

const hIfModifiedSince = "If-Modified-Since"

// HasIfModifiedSince reports whether m carries an If-Modified-Since header.
func HasIfModifiedSince[T Headered](m T) bool { return has(m, hIfModifiedSince) }

// IfModifiedSince returns m's parsed If-Modified-Since.
func IfModifiedSince[T Headered](m T) (time.Time, error) { return getDate(m, hIfModifiedSince) }

// IfModifiedSinceOption is the non-error variant of [IfModifiedSince].
func IfModifiedSinceOption[T Headered](m T) (time.Time, bool) {
	t, err := IfModifiedSince(m)
	return t, err == nil
}

// WithIfModifiedSince sets the If-Modified-Since header.
func WithIfModifiedSince[T Headered](m T, t time.Time) T { return withDate(m, hIfModifiedSince, t) }

// WithoutIfModifiedSince removes the If-Modified-Since header.
func WithoutIfModifiedSince[T Headered](m T) T { return withoutHeader(m, hIfModifiedSince) }

const hIfUnmodifiedSince = "If-Unmodified-Since"

// HasIfUnmodifiedSince reports whether m carries an If-Unmodified-Since header.
func HasIfUnmodifiedSince[T Headered](m T) bool { return has(m, hIfUnmodifiedSince) }

// IfUnmodifiedSince returns m's parsed If-Unmodified-Since.
func IfUnmodifiedSince[T Headered](m T) (time.Time, error) { return getDate(m, hIfUnmodifiedSince) }

// IfUnmodifiedSinceOption is the non-error variant of [IfUnmodifiedSince].
func IfUnmodifiedSinceOption[T Headered](m T) (time.Time, bool) {
	t, err := IfUnmodifiedSince(m)
	return t, err == nil
}

// WithIfUnmodifiedSince sets the If-Unmodified-Since header.
func WithIfUnmodifiedSince[T Headered](m T, t time.Time) T {
	return withDate(m, hIfUnmodifiedSince, t)
}

// WithoutIfUnmodifiedSince removes the If-Unmodified-Since header.
func WithoutIfUnmodifiedSince[T Headered](m T) T { return withoutHeader(m, hIfUnmodifiedSince) }
