package httpheader

import (
	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/header"
)

const hAcceptLanguage = "Accept-Language"

// HasAcceptLanguage reports whether m carries an Accept-Language header.
func HasAcceptLanguage[T Headered](m T) bool { return has(m, hAcceptLanguage) }

// AcceptLanguage returns m's parsed Accept-Language ranges, sorted by
// descending weight.
func AcceptLanguage[T Headered](m T) ([]header.LanguageRange, error) {
	v, ok := getRaw(m, hAcceptLanguage)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	ranges := header.ParseLanguageRanges(v)
	grammar.SortByWeight(ranges)
	return ranges, nil
}

// AcceptLanguageOption is the non-error variant of [AcceptLanguage].
func AcceptLanguageOption[T Headered](m T) ([]header.LanguageRange, bool) {
	r, err := AcceptLanguage(m)
	return r, err == nil
}

// WithAcceptLanguage sets the Accept-Language header.
func WithAcceptLanguage[T Headered](m T, ranges ...header.LanguageRange) T {
	return withHeader(m, hAcceptLanguage, grammar.FormatWeightedList(ranges))
}

// WithoutAcceptLanguage removes the Accept-Language header.
func WithoutAcceptLanguage[T Headered](m T) T { return withoutHeader(m, hAcceptLanguage) }

const hAcceptCharset = "Accept-Charset"

// HasAcceptCharset reports whether m carries an Accept-Charset header.
func HasAcceptCharset[T Headered](m T) bool { return has(m, hAcceptCharset) }

// AcceptCharset returns m's parsed Accept-Charset ranges, sorted by
// descending weight.
func AcceptCharset[T Headered](m T) ([]header.CharsetRange, error) {
	v, ok := getRaw(m, hAcceptCharset)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	ranges := header.ParseCharsetRanges(v)
	grammar.SortByWeight(ranges)
	return ranges, nil
}

// AcceptCharsetOption is the non-error variant of [AcceptCharset].
func AcceptCharsetOption[T Headered](m T) ([]header.CharsetRange, bool) {
	r, err := AcceptCharset(m)
	return r, err == nil
}

// WithAcceptCharset sets the Accept-Charset header.
func WithAcceptCharset[T Headered](m T, ranges ...header.CharsetRange) T {
	return withHeader(m, hAcceptCharset, grammar.FormatWeightedList(ranges))
}

// WithoutAcceptCharset removes the Accept-Charset header.
func WithoutAcceptCharset[T Headered](m T) T { return withoutHeader(m, hAcceptCharset) }

const hAcceptEncoding = "Accept-Encoding"

// HasAcceptEncoding reports whether m carries an Accept-Encoding header.
func HasAcceptEncoding[T Headered](m T) bool { return has(m, hAcceptEncoding) }

// AcceptEncoding returns m's parsed Accept-Encoding codings, sorted by
// descending weight.
func AcceptEncoding[T Headered](m T) ([]header.CodingRange, error) {
	v, ok := getRaw(m, hAcceptEncoding)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	ranges := header.ParseCodingRanges(v)
	grammar.SortByWeight(ranges)
	return ranges, nil
}

// AcceptEncodingOption is the non-error variant of [AcceptEncoding].
func AcceptEncodingOption[T Headered](m T) ([]header.CodingRange, bool) {
	r, err := AcceptEncoding(m)
	return r, err == nil
}

// WithAcceptEncoding sets the Accept-Encoding header.
func WithAcceptEncoding[T Headered](m T, ranges ...header.CodingRange) T {
	return withHeader(m, hAcceptEncoding, grammar.FormatWeightedList(ranges))
}

// WithoutAcceptEncoding removes the Accept-Encoding header.
func WithoutAcceptEncoding[T Headered](m T) T { return withoutHeader(m, hAcceptEncoding) }

const hTE = "TE"

// HasTE reports whether m carries a TE header.
func HasTE[T Headered](m T) bool { return has(m, hTE) }

// TE returns m's parsed TE codings, sorted by descending weight.
func TE[T Headered](m T) ([]header.CodingRange, error) {
	v, ok := getRaw(m, hTE)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	ranges := header.ParseCodingRanges(v)
	grammar.SortByWeight(ranges)
	return ranges, nil
}

// TEOption is the non-error variant of [TE].
func TEOption[T Headered](m T) ([]header.CodingRange, bool) {
	r, err := TE(m)
	return r, err == nil
}

// WithTE sets the TE header.
func WithTE[T Headered](m T, ranges ...header.CodingRange) T {
	return withHeader(m, hTE, grammar.FormatWeightedList(ranges))
}

// WithoutTE removes the TE header.
func WithoutTE[T Headered](m T) T { return withoutHeader(m, hTE) }
