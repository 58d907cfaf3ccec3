package httpheader

import (
	"github.com/wovenwire/wovenwire/pkg/header"
)

const hSecWebSocketKey = "Sec-WebSocket-Key"

// HasSecWebSocketKey reports whether m carries a Sec-WebSocket-Key header.
func HasSecWebSocketKey[T Headered](m T) bool { return has(m, hSecWebSocketKey) }

// SecWebSocketKey returns m's Sec-WebSocket-Key value.
func SecWebSocketKey[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hSecWebSocketKey)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// SecWebSocketKeyOption is the non-error variant of [SecWebSocketKey].
func SecWebSocketKeyOption[T Headered](m T) (string, bool) { return getRaw(m, hSecWebSocketKey) }

// WithSecWebSocketKey sets the Sec-WebSocket-Key header.
func WithSecWebSocketKey[T Headered](m T, v string) T { return withHeader(m, hSecWebSocketKey, v) }

// WithoutSecWebSocketKey removes the Sec-WebSocket-Key header.
func WithoutSecWebSocketKey[T Headered](m T) T { return withoutHeader(m, hSecWebSocketKey) }

const hSecWebSocketAccept = "Sec-WebSocket-Accept"

// HasSecWebSocketAccept reports whether m carries a Sec-WebSocket-Accept header.
func HasSecWebSocketAccept[T Headered](m T) bool { return has(m, hSecWebSocketAccept) }

// SecWebSocketAccept returns m's Sec-WebSocket-Accept value.
func SecWebSocketAccept[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hSecWebSocketAccept)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// SecWebSocketAcceptOption is the non-error variant of [SecWebSocketAccept].
func SecWebSocketAcceptOption[T Headered](m T) (string, bool) {
	return getRaw(m, hSecWebSocketAccept)
}

// WithSecWebSocketAccept sets the Sec-WebSocket-Accept header.
func WithSecWebSocketAccept[T Headered](m T, v string) T {
	return withHeader(m, hSecWebSocketAccept, v)
}

// WithoutSecWebSocketAccept removes the Sec-WebSocket-Accept header.
func WithoutSecWebSocketAccept[T Headered](m T) T { return withoutHeader(m, hSecWebSocketAccept) }

const hSecWebSocketVersion = "Sec-WebSocket-Version"

// HasSecWebSocketVersion reports whether m carries a Sec-WebSocket-Version header.
func HasSecWebSocketVersion[T Headered](m T) bool { return has(m, hSecWebSocketVersion) }

// SecWebSocketVersion returns m's Sec-WebSocket-Version value.
func SecWebSocketVersion[T Headered](m T) (string, error) {
	v, ok := getRaw(m, hSecWebSocketVersion)
	if !ok {
		return "", ErrHeaderNotFound
	}
	return v, nil
}

// SecWebSocketVersionOption is the non-error variant of [SecWebSocketVersion].
func SecWebSocketVersionOption[T Headered](m T) (string, bool) {
	return getRaw(m, hSecWebSocketVersion)
}

// WithSecWebSocketVersion sets the Sec-WebSocket-Version header.
func WithSecWebSocketVersion[T Headered](m T, v string) T {
	return withHeader(m, hSecWebSocketVersion, v)
}

// WithoutSecWebSocketVersion removes the Sec-WebSocket-Version header.
func WithoutSecWebSocketVersion[T Headered](m T) T { return withoutHeader(m, hSecWebSocketVersion) }

const hSecWebSocketProtocol = "Sec-WebSocket-Protocol"

// HasSecWebSocketProtocol reports whether m carries a Sec-WebSocket-Protocol header.
func HasSecWebSocketProtocol[T Headered](m T) bool { return has(m, hSecWebSocketProtocol) }

// SecWebSocketProtocol returns m's offered/selected subprotocols.
func SecWebSocketProtocol[T Headered](m T) ([]string, error) {
	v, ok := getRaw(m, hSecWebSocketProtocol)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return splitCommaList(v), nil
}

// SecWebSocketProtocolOption is the non-error variant of [SecWebSocketProtocol].
func SecWebSocketProtocolOption[T Headered](m T) ([]string, bool) {
	p, err := SecWebSocketProtocol(m)
	return p, err == nil
}

// WithSecWebSocketProtocol sets the Sec-WebSocket-Protocol header.
func WithSecWebSocketProtocol[T Headered](m T, protocols ...string) T {
	s := ""
	for i, p := range protocols {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return withHeader(m, hSecWebSocketProtocol, s)
}

// WithoutSecWebSocketProtocol removes the Sec-WebSocket-Protocol header.
func WithoutSecWebSocketProtocol[T Headered](m T) T {
	return withoutHeader(m, hSecWebSocketProtocol)
}

const hSecWebSocketExtensions = "Sec-WebSocket-Extensions"

// HasSecWebSocketExtensions reports whether m carries a Sec-WebSocket-Extensions header.
func HasSecWebSocketExtensions[T Headered](m T) bool { return has(m, hSecWebSocketExtensions) }

// SecWebSocketExtensions returns m's parsed extension offers/agreements.
func SecWebSocketExtensions[T Headered](m T) ([]header.Extension, error) {
	v, ok := getRaw(m, hSecWebSocketExtensions)
	if !ok {
		return nil, ErrHeaderNotFound
	}
	return header.ParseExtensions(v), nil
}

// SecWebSocketExtensionsOption is the non-error variant of [SecWebSocketExtensions].
func SecWebSocketExtensionsOption[T Headered](m T) ([]header.Extension, bool) {
	e, err := SecWebSocketExtensions(m)
	return e, err == nil
}

// WithSecWebSocketExtensions sets the Sec-WebSocket-Extensions header.
func WithSecWebSocketExtensions[T Headered](m T, exts ...header.Extension) T {
	return withHeader(m, hSecWebSocketExtensions, header.FormatExtensions(exts))
}

// WithoutSecWebSocketExtensions removes the Sec-WebSocket-Extensions header.
func WithoutSecWebSocketExtensions[T Headered](m T) T {
	return withoutHeader(m, hSecWebSocketExtensions)
}
