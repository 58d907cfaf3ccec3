package websocket

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"

	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/header"
)

// deflateTail is the 4-byte empty stored block that ends a flushed DEFLATE
// stream. Per RFC 7692 §7.2.1 senders strip it from each compressed
// message, and receivers append it again before inflating.
var deflateTail = []byte{0x00, 0x00, 0xff, 0xff}

// deflateCodec implements RFC 7692 permessage-deflate for one direction
// of a session. Per spec.md's design notes, when context takeover isn't
// negotiated for that direction a fresh flate reader/writer is used per
// message; this module never negotiates context takeover (it always
// offers/accepts client_no_context_takeover and server_no_context_takeover),
// so codecs here are always single-message.
type deflateCodec struct{}

// negotiateDeflate inspects a client's Sec-WebSocket-Extensions offer and
// decides whether to agree to permessage-deflate, always declining context
// takeover in both directions (spec.md's "External Interfaces" note on
// RFC 7692). Returns ok=false when the client didn't offer it.
func negotiateDeflate(offers []header.Extension) (agreed header.Extension, ok bool) {
	if _, found := header.FindPermessageDeflate(offers); !found {
		return header.Extension{}, false
	}
	return header.Extension{
		Name: header.PermessageDeflateName,
		Params: grammar.ParamList{
			{Name: "client_no_context_takeover"},
			{Name: "server_no_context_takeover"},
		},
	}, true
}

// NegotiateDeflate is the exported form of [negotiateDeflate], for server
// applications that parse a request's Sec-WebSocket-Extensions themselves
// (via [header.ParseExtensions]) before calling [BuildUpgradeResponse].
func NegotiateDeflate(offers []header.Extension) (agreed header.Extension, ok bool) {
	return negotiateDeflate(offers)
}

// deflatePayload compresses payload with DEFLATE and strips the
// synthetic RFC 7692 §7.2.1 trailer.
func deflatePayload(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create deflate writer: %w", err)
	}
	if _, err := fw.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to compress WebSocket payload: %w", err)
	}
	if err := fw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush deflate writer: %w", err)
	}
	out := buf.Bytes()
	return bytes.TrimSuffix(out, deflateTail), nil
}

// inflatePayload restores the RFC 7692 §7.2.1 trailer and decompresses.
func inflatePayload(payload []byte) ([]byte, error) {
	r := flate.NewReader(io.MultiReader(bytes.NewReader(payload), bytes.NewReader(deflateTail)))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress WebSocket payload: %w", err)
	}
	return out, nil
}
