package httpheader

import (
	"fmt"
	"strconv"

	"github.com/wovenwire/wovenwire/pkg/header"
)

const hContentType = "Content-Type"

// HasContentType reports whether m carries a Content-Type header.
func HasContentType[T Headered](m T) bool { return has(m, hContentType) }

// ContentType returns m's parsed Content-Type, failing with
// [ErrHeaderNotFound] if absent.
func ContentType[T Headered](m T) (header.MediaType, error) {
	v, ok := getRaw(m, hContentType)
	if !ok {
		return header.MediaType{}, ErrHeaderNotFound
	}
	mt, ok := header.ParseMediaType(v)
	if !ok {
		return header.MediaType{}, fmt.Errorf("httpheader: malformed Content-Type: %q", v)
	}
	return mt, nil
}

// ContentTypeOption is the non-error variant of [ContentType].
func ContentTypeOption[T Headered](m T) (header.MediaType, bool) {
	mt, err := ContentType(m)
	return mt, err == nil
}

// WithContentType sets the Content-Type header.
func WithContentType[T Headered](m T, mt header.MediaType) T {
	return withHeader(m, hContentType, mt.Format())
}

// WithoutContentType removes the Content-Type header.
func WithoutContentType[T Headered](m T) T { return withoutHeader(m, hContentType) }

const hContentLength = "Content-Length"

// HasContentLength reports whether m carries a Content-Length header.
func HasContentLength[T Headered](m T) bool { return has(m, hContentLength) }

// ContentLength returns m's parsed Content-Length.
func ContentLength[T Headered](m T) (uint64, error) {
	v, ok := getRaw(m, hContentLength)
	if !ok {
		return 0, ErrHeaderNotFound
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("httpheader: malformed Content-Length: %q", v)
	}
	return n, nil
}

// ContentLengthOption is the non-error variant of [ContentLength].
func ContentLengthOption[T Headered](m T) (uint64, bool) {
	n, err := ContentLength(m)
	return n, err == nil
}

// WithContentLength sets the Content-Length header.
func WithContentLength[T Headered](m T, n uint64) T {
	return withHeader(m, hContentLength, strconv.FormatUint(n, 10))
}

// WithoutContentLength removes the Content-Length header.
func WithoutContentLength[T Headered](m T) T { return withoutHeader(m, hContentLength) }
