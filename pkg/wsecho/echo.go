// Package wsecho implements a loopback WebSocket handler that echoes
// every text and binary message back to its sender unchanged, for use as
// a conformance and demo endpoint (spec.md §8's round-trip scenarios all
// assume such an endpoint exists on the other side of the wire).
package wsecho

import (
	"log/slog"
	"sync/atomic"

	"github.com/wovenwire/wovenwire/pkg/websocket"
)

// Handler echoes every message a [websocket.Session] receives back to
// the sender, optionally fragmenting replies and logging traffic.
//
// The zero value echoes whole messages with no fragmentation and no
// logging; use [New] to customize either.
type Handler struct {
	logger      *slog.Logger
	maxFragment int

	messages atomic.Int64
	bytes    atomic.Int64
}

// Opt configures a [Handler].
type Opt func(*Handler)

// WithLogger attaches a logger that records each echoed message and the
// eventual close.
func WithLogger(l *slog.Logger) Opt {
	return func(h *Handler) { h.logger = l }
}

// WithMaxFragment re-fragments outgoing echoes at n bytes, exercising the
// same reassembly path a real fragmented sender would (spec.md §8's
// "message split by the sender at payload_limit" invariant). 0 (the
// default) sends each reply as a single frame.
func WithMaxFragment(n int) Opt {
	return func(h *Handler) { h.maxFragment = n }
}

// New returns a [Handler] configured by opts.
func New(opts ...Opt) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MessageCount reports how many messages this handler has echoed so far.
func (h *Handler) MessageCount() int64 { return h.messages.Load() }

// ByteCount reports how many payload bytes this handler has echoed so
// far, across both text and binary messages.
func (h *Handler) ByteCount() int64 { return h.bytes.Load() }

func (h *Handler) OnText(s *websocket.Session, data []byte) {
	h.record(s, "text", data)
	<-s.SendText(data, h.maxFragment)
}

func (h *Handler) OnBinary(s *websocket.Session, data []byte) {
	h.record(s, "binary", data)
	<-s.SendBinary(data, h.maxFragment)
}

func (h *Handler) OnClose(s *websocket.Session, code websocket.StatusCode, reason string) {
	if h.logger != nil {
		h.logger.Info("WebSocket session closed",
			slog.String("session_id", s.ID()),
			slog.Int("code", int(code)),
			slog.String("reason", reason),
			slog.Int64("messages_echoed", h.messages.Load()),
		)
	}
}

func (h *Handler) record(s *websocket.Session, kind string, data []byte) {
	h.messages.Add(1)
	h.bytes.Add(int64(len(data)))
	if h.logger != nil {
		h.logger.Debug("echoing WebSocket message",
			slog.String("session_id", s.ID()),
			slog.String("type", kind),
			slog.Int("bytes", len(data)),
		)
	}
}
