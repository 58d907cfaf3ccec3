package websocket

import (
	"crypto/sha1" //nolint:gosec // required by RFC 6455, not used for security.
	"fmt"
	"strings"

	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/header"
	"github.com/wovenwire/wovenwire/pkg/message"
)

// acceptGUID is RFC 6455 §4.2.2's fixed magic value concatenated with the
// client's nonce before hashing to derive Sec-WebSocket-Accept.
var acceptGUID = []byte("258EAFA5-E914-47DA-95CA-C5AB0DC85B11")

// computeAccept derives the Sec-WebSocket-Accept value for client nonce
// key, per RFC 6455 §4.2.2.
func computeAccept(key string) string {
	h := sha1.New() //nolint:gosec // required by RFC 6455.
	h.Write([]byte(key))
	h.Write(acceptGUID)
	return grammar.EncodeBase64(h.Sum(nil))
}

// HandshakeError reports a malformed or non-conforming WebSocket upgrade
// request, per spec.md §7's InvalidWebSocketRequest kind: callers should
// respond with 400 Bad Request and not upgrade the connection.
type HandshakeError struct {
	Reason string
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("invalid WebSocket handshake request: %s", e.Reason)
}

// ValidateUpgradeRequest checks req against RFC 6455 §4.2.1's server
// requirements for an opening handshake, and returns the client's nonce
// (Sec-WebSocket-Key).
func ValidateUpgradeRequest(req message.Request) (nonce string, err error) {
	if req.Method != "GET" {
		return "", &HandshakeError{"method must be GET"}
	}
	if req.Version != message.HTTP11 {
		return "", &HandshakeError{"HTTP version must be 1.1"}
	}
	if !headerContainsToken(req.Headers, "Connection", "upgrade") {
		return "", &HandshakeError{"Connection header must include \"upgrade\""}
	}
	if v, _ := req.Headers.Get("Upgrade"); !strings.EqualFold(strings.TrimSpace(v), "websocket") {
		return "", &HandshakeError{"Upgrade header must be \"websocket\""}
	}
	if v, _ := req.Headers.Get("Sec-WebSocket-Version"); v != "13" {
		return "", &HandshakeError{"Sec-WebSocket-Version must be 13"}
	}
	key, ok := req.Headers.Get("Sec-WebSocket-Key")
	if !ok || key == "" {
		return "", &HandshakeError{"Sec-WebSocket-Key header is required"}
	}
	if raw, decErr := grammar.DecodeBase64(key); decErr != nil || len(raw) != 16 {
		return "", &HandshakeError{"Sec-WebSocket-Key must decode to 16 bytes"}
	}
	return key, nil
}

// BuildUpgradeResponse constructs the 101 Switching Protocols response
// for a validated upgrade request, optionally agreeing to permessage-deflate
// when the offer is acceptable (agreedExtension is nil to decline).
func BuildUpgradeResponse(nonce string, agreedExtension *header.Extension) message.Response {
	resp := message.NewResponse(101, "Switching Protocols", message.HTTP11)
	resp = resp.WithHeader("Upgrade", "websocket")
	resp = resp.WithHeader("Connection", "Upgrade")
	resp = resp.WithHeader("Sec-WebSocket-Accept", computeAccept(nonce))
	if agreedExtension != nil {
		resp = resp.WithHeader("Sec-WebSocket-Extensions", header.FormatExtensions([]header.Extension{*agreedExtension}))
	}
	return resp
}

func headerContainsToken(hdrs header.List, name, token string) bool {
	v, ok := hdrs.Get(name)
	if !ok {
		return false
	}
	for _, part := range strings.Split(v, ",") {
		if strings.EqualFold(strings.TrimSpace(part), token) {
			return true
		}
	}
	return false
}

// BuildDialRequest constructs the client-side opening handshake request
// for target, per RFC 6455 §4.1, carrying nonce as its Sec-WebSocket-Key;
// pass the same nonce to [CheckDialResponse] to validate the 101 response.
func BuildDialRequest(target message.Uri, nonce string) message.Request {
	path := target.Path
	if path == "" {
		path = "/"
	}
	if target.RawQuery != "" {
		path += "?" + target.RawQuery
	}
	req := message.NewRequest("GET", path, message.HTTP11)
	req = req.WithHeader("Host", target.Authority())
	req = req.WithHeader("Upgrade", "websocket")
	req = req.WithHeader("Connection", "Upgrade")
	req = req.WithHeader("Sec-WebSocket-Key", nonce)
	req = req.WithHeader("Sec-WebSocket-Version", "13")
	return req
}

// CheckDialResponse validates a server's opening handshake response
// against the nonce this client sent, per RFC 6455 §4.2.2.
func CheckDialResponse(resp message.Response, nonce string) error {
	if resp.StatusCode != 101 {
		return fmt.Errorf("WebSocket handshake response status: got %d, want 101", resp.StatusCode)
	}
	if err := checkHeader(resp.Headers, "Upgrade", "websocket"); err != nil {
		return err
	}
	if err := checkHeader(resp.Headers, "Connection", "Upgrade"); err != nil {
		return err
	}
	return checkHeader(resp.Headers, "Sec-WebSocket-Accept", computeAccept(nonce))
}

func checkHeader(hdrs header.List, name, want string) error {
	got, _ := hdrs.Get(name)
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("WebSocket handshake response header %q: got %q, want %q", name, got, want)
	}
	return nil
}
