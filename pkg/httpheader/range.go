package httpheader

import (
	"fmt"

	"github.com/wovenwire/wovenwire/pkg/header"
)

const hRange = "Range"

// HasRange reports whether m carries a Range header.
func HasRange[T Headered](m T) bool { return has(m, hRange) }

// Range returns m's parsed Range byte-range-specs.
func Range[T Headered](m T) ([]header.ByteRange, error) {
	v, ok := getRaw(m, hRange)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	ranges, ok := header.ParseRange(v)
	if !ok {
		return nil, fmt.Errorf("httpheader: malformed Range: %q", v)
	}
	return ranges, nil
}

// RangeOption is the non-error variant of [Range].
func RangeOption[T Headered](m T) ([]header.ByteRange, bool) {
	r, err := Range(m)
	return r, err == nil
}

// WithRange sets the Range header.
func WithRange[T Headered](m T, ranges ...header.ByteRange) T {
	return withHeader(m, hRange, header.FormatRange(ranges))
}

// WithoutRange removes the Range header.
func WithoutRange[T Headered](m T) T { return withoutHeader(m, hRange) }

const hContentRange = "Content-Range"

// HasContentRange reports whether m carries a Content-Range header.
func HasContentRange[T Headered](m T) bool { return has(m, hContentRange) }

// ContentRange returns m's parsed Content-Range.
func ContentRange[T Headered](m T) (header.ContentRange, error) {
	v, ok := getRaw(m, hContentRange)
	if !ok {
		return header.ContentRange{}, ErrHeaderNotFound
	}
	cr, ok := header.ParseContentRange(v)
	if !ok {
		return header.ContentRange{}, fmt.Errorf("httpheader: malformed Content-Range: %q", v)
	}
	return cr, nil
}

// ContentRangeOption is the non-error variant of [ContentRange].
func ContentRangeOption[T Headered](m T) (header.ContentRange, bool) {
	cr, err := ContentRange(m)
	return cr, err == nil
}

// WithContentRange sets the Content-Range header.
func WithContentRange[T Headered](m T, cr header.ContentRange) T {
	return withHeader(m, hContentRange, cr.Format())
}

// WithoutContentRange removes the Content-Range header.
func WithoutContentRange[T Headered](m T) T { return withoutHeader(m, hContentRange) }

const hAcceptRanges = "Accept-Ranges"

// HasAcceptRanges reports whether m carries an Accept-Ranges header.
func HasAcceptRanges[T Headered](m T) bool { return has(m, hAcceptRanges) }

// AcceptRanges returns m's Accept-Ranges units (e.g. "bytes", "none").
func AcceptRanges[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hAcceptRanges)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// AcceptRangesOption is the non-error variant of [AcceptRanges].
func AcceptRangesOption[T Headered](m T) (string, bool) {
	return getRaw(m, hAcceptRanges)
}

// WithAcceptRanges sets the Accept-Ranges header.
func WithAcceptRanges[T Headered](m T, units string) T {
	return withHeader(m, hAcceptRanges, units)
}

// WithoutAcceptRanges removes the Accept-Ranges header.
func WithoutAcceptRanges[T Headered](m T) T { return withoutHeader(m, hAcceptRanges) }
