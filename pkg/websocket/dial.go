package websocket

import (
	"context"
	"fmt"

	"github.com/wovenwire/wovenwire/internal/randsrc"
	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/httpwire"
	"github.com/wovenwire/wovenwire/pkg/message"
	"github.com/wovenwire/wovenwire/pkg/transport"
)

// DialOpt configures [Dial] beyond the [SessionOpt]s it passes through to
// [NewSession].
type DialOpt func(*dialConfig)

type dialConfig struct {
	rnd randsrc.Source
}

// WithDialRandomSource overrides the [randsrc.Source] used to generate the
// client nonce (Sec-WebSocket-Key). This is independent of the eventual
// [Session]'s masking-key source, set via [WithRandomSource].
func WithDialRandomSource(r randsrc.Source) DialOpt {
	return func(c *dialConfig) { c.rnd = r }
}

// Dial performs the RFC 6455 §4.1 opening handshake for target over ch,
// which must already be a connected byte stream (this module treats
// socket dialing and TLS termination as external, per spec.md §6). On
// success it returns a pending [Session] in the [RoleClient] role;
// callers must still call [Session.Run] to start exchanging frames.
func Dial(ctx context.Context, target message.Uri, ch transport.ByteChannel, handler SessionHandler, dialOpts []DialOpt, sessionOpts ...SessionOpt) (*Session, error) {
	cfg := dialConfig{rnd: randsrc.CryptoRandom{}}
	for _, opt := range dialOpts {
		opt(&cfg)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to dial WebSocket server: %w", err)
	}

	nonce := generateNonce(cfg.rnd)
	req := BuildDialRequest(target, nonce)

	if err := httpwire.NewWriter(byteChannelWriter{ch}).WriteRequest(req); err != nil {
		return nil, fmt.Errorf("failed to write WebSocket handshake request: %w", err)
	}

	resp, err := httpwire.NewReader(byteChannelReader{ch}).ReadResponse(req.Method)
	if err != nil {
		return nil, fmt.Errorf("failed to read WebSocket handshake response: %w", err)
	}
	if err := CheckDialResponse(resp, nonce); err != nil {
		return nil, err
	}

	return NewSession(ch, RoleClient, handler, sessionOpts...), nil
}

// generateNonce produces a random 16-byte Sec-WebSocket-Key, base64-encoded
// per RFC 6455 §4.1.
func generateNonce(rnd randsrc.Source) string {
	var key [16]byte
	rnd.Fill(key[:])
	return grammar.EncodeBase64(key[:])
}
