// Package httpheader implements the uniform has/get/getOption/with/without
// accessor pattern spec.md §4.2 requires for ~50 well-known headers, as a
// thin typed layer over [pkg/message]'s Request/Response and
// [pkg/header]'s structured value parsers. spec.md §9's "single
// header-accessor abstraction parameterized by target kind" collapses
// here to a Go type parameter over the Request|Response union, since the
// two message types share no common interface.
package httpheader

import (
	"errors"

	"github.com/wovenwire/wovenwire/pkg/header"
	"github.com/wovenwire/wovenwire/pkg/message"
)

// ErrHeaderNotFound is returned by a header's typed Get accessor when the
// header is absent, per spec.md §7's HeaderNotFound kind.
var ErrHeaderNotFound = errors.New("httpheader: header not found")

// Headered is the set of message types these accessors operate over.
type Headered interface {
	message.Request | message.Response
}

func headerList[T Headered](m T) header.List {
	switch v := any(m).(type) {
	case message.Request:
		return v.Headers
	case message.Response:
		return v.Headers
	default:
		panic("httpheader: unreachable message type")
	}
}

func withHeader[T Headered](m T, name, value string) T {
	switch v := any(m).(type) {
	case message.Request:
		return any(v.WithHeader(name, value)).(T)
	case message.Response:
		return any(v.WithHeader(name, value)).(T)
	default:
		panic("httpheader: unreachable message type")
	}
}

func withAddedHeader[T Headered](m T, name, value string) T {
	switch v := any(m).(type) {
	case message.Request:
		return any(v.WithAddedHeader(name, value)).(T)
	case message.Response:
		return any(v.WithAddedHeader(name, value)).(T)
	default:
		panic("httpheader: unreachable message type")
	}
}

func withoutHeader[T Headered](m T, name string) T {
	switch v := any(m).(type) {
	case message.Request:
		return any(v.WithoutHeader(name)).(T)
	case message.Response:
		return any(v.WithoutHeader(name)).(T)
	default:
		panic("httpheader: unreachable message type")
	}
}

// has reports whether header name is present.
func has[T Headered](m T, name string) bool {
	return headerList(m).Has(name)
}

// getRaw returns the first value of header name, and whether it's present.
func getRaw[T Headered](m T, name string) (string, bool) {
	return headerList(m).Get(name)
}

// getAllRaw returns every value of header name, in wire order.
func getAllRaw[T Headered](m T, name string) []string {
	return headerList(m).GetAll(name)
}
