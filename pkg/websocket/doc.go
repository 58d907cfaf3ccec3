// Package websocket implements RFC 6455: the opening handshake (both
// serving an incoming upgrade request and dialing out to a remote
// server), the frame codec (masking, length encoding, fragmentation),
// and the [Session] state machine (pending -> open -> closed) with
// message reassembly and optional per-message deflate (RFC 7692).
//
// A [Session] dispatches received messages and the close event to a
// [SessionHandler] on its own read goroutine, which must not block
// indefinitely; handlers that do heavy work should hand off.
package websocket
