package websocket

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"

	"github.com/wovenwire/wovenwire/internal/logger"
	"github.com/wovenwire/wovenwire/internal/randsrc"
	"github.com/wovenwire/wovenwire/pkg/transport"
)

// Role distinguishes which side of the connection a [Session] plays,
// since RFC 6455 framing rules (who masks, who may initiate a handshake)
// differ by role.
type Role int

const (
	RoleServer Role = iota
	RoleClient
)

// State is a position in the session lifecycle spec.md §1 requires:
// pending (handshake not yet completed), open (frames flow both ways),
// closed (closing handshake finished or the channel failed).
type State int32

const (
	StatePending State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Message is one reassembled, non-control WebSocket message.
type Message struct {
	Opcode Opcode
	Data   []byte
}

// SessionHandler receives events from a [Session]'s read loop. Calls
// happen on that single goroutine and must not block indefinitely
// (spec.md §9's "Session callbacks" design note); handlers that need to
// do slow work should hand off to their own goroutine.
type SessionHandler interface {
	OnText(s *Session, data []byte)
	OnBinary(s *Session, data []byte)
	OnClose(s *Session, code StatusCode, reason string)
}

// fragment is one wire frame within an outboundFrame job. A data message
// split across [Session.sendData]'s maxFragment boundary becomes several
// fragments in a single job, so the write loop emits them back-to-back
// with no control frame able to interleave mid-message.
type fragment struct {
	opcode Opcode
	data   []byte
	fin    bool
}

type outboundFrame struct {
	fragments []fragment
	errCh     chan<- error
}

// Session is one WebSocket connection's protocol state machine, layered
// over a [transport.ByteChannel]. Construct with [NewSession], then call
// [Session.Run] to move it from pending to open and start processing
// frames until the connection closes.
type Session struct {
	id      string
	role    Role
	ch      transport.ByteChannel
	br      *bufio.Reader
	handler SessionHandler
	logger  *slog.Logger
	rnd     randsrc.Source

	deflateEnabled bool // permessage-deflate negotiated, per [negotiateDeflate]

	state atomic.Int32

	outbound chan outboundFrame

	// connMu serializes every byte-level write to ch, whether it comes
	// from writeLoop's outbound jobs or sendClose's direct write, so the
	// two paths can never interleave partial frames on the wire.
	connMu sync.Mutex

	closeSentMu   sync.Mutex
	closeSent     bool
	closeReceived bool

	readBuf [8]byte
}

// SessionOpt configures a [Session] at construction time.
type SessionOpt func(*Session)

// WithLogger overrides the session's [slog.Logger].
func WithLogger(l *slog.Logger) SessionOpt {
	return func(s *Session) { s.logger = l }
}

// WithRandomSource overrides the [randsrc.Source] used for client
// masking keys (production defaults to [randsrc.CryptoRandom]).
func WithRandomSource(r randsrc.Source) SessionOpt {
	return func(s *Session) { s.rnd = r }
}

// WithDeflate enables permessage-deflate for this session. Callers
// decide this after running [negotiateDeflate] (server) or inspecting
// the dial response's agreed extensions (client).
func WithDeflate(enabled bool) SessionOpt {
	return func(s *Session) { s.deflateEnabled = enabled }
}

// NewSession constructs a pending [Session] over ch, for the given role
// and connection-level event handler. Call [Session.Run] to open it.
func NewSession(ch transport.ByteChannel, role Role, handler SessionHandler, opts ...SessionOpt) *Session {
	s := &Session{
		id:       shortuuid.New(),
		role:     role,
		ch:       ch,
		br:       bufio.NewReader(byteChannelReader{ch}),
		handler:  handler,
		rnd:      randsrc.CryptoRandom{},
		outbound: make(chan outboundFrame),
	}
	s.state.Store(int32(StatePending))
	return s
}

// ID returns a short, unique identifier for this session, suitable for
// correlating log lines across the read and write goroutines.
func (s *Session) ID() string { return s.id }

// State reports the session's current lifecycle position.
func (s *Session) State() State { return State(s.state.Load()) }

// byteChannelReader adapts [transport.ByteChannel] to [io.Reader], so the
// session can layer a [bufio.Reader] over it for frame header parsing.
type byteChannelReader struct{ ch transport.ByteChannel }

func (r byteChannelReader) Read(buf []byte) (int, error) {
	n, ok, err := r.ch.Read(buf)
	if err != nil {
		return n, err
	}
	if !ok {
		return n, io.EOF
	}
	return n, nil
}

// Run transitions the session to open and blocks, running its read and
// write loops (via [errgroup.Group], per spec.md §9's one-reader/one-writer
// design) until the connection closes or ctx is canceled. Neither loop
// reports an error to the group, so Run returns nil.
func (s *Session) Run(ctx context.Context) error {
	if s.logger == nil {
		s.logger = logger.FromContext(ctx)
	}
	s.state.Store(int32(StateOpen))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.readLoop()
		return nil
	})
	g.Go(func() error {
		s.writeLoop(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		if s.State() != StateClosed {
			_ = s.ch.Close()
		}
		return nil
	})

	err := g.Wait()
	s.state.Store(int32(StateClosed))
	return err
}

// readLoop reads and dispatches frames until the connection is closed or
// a protocol error forces it shut. It is the session's sole reader.
func (s *Session) readLoop() {
	var buf bytes.Buffer
	var msgType Opcode = opcodeContinuation

	wantMasked := s.role == RoleServer // servers require masked client frames.

	for {
		h, err := readFrameHeader(s.br, &s.readBuf)
		if err != nil {
			s.closeReceived = true
			s.markClosed()
			return
		}

		payload := make([]byte, h.payloadLength)
		if h.payloadLength > 0 {
			if _, err := io.ReadFull(s.br, payload); err != nil {
				s.fail(StatusInternalError, "frame payload read error")
				return
			}
		}
		if h.mask {
			applyMask(payload, payload, h.maskKey)
		}

		if reason, err := checkFrameHeader(h, msgType, wantMasked, s.deflateEnabled); err != nil {
			s.logger.Error("WebSocket protocol error", slog.String("reason", reason), slog.Any("error", err))
			s.fail(StatusProtocolError, reason)
			return
		}

		switch h.opcode {
		case opcodeContinuation, OpcodeText, OpcodeBinary:
			if h.opcode != opcodeContinuation {
				msgType = h.opcode
			}
			if len(payload) > 0 {
				buf.Write(payload)
			}
			if h.fin {
				data := buf.Bytes()
				if h.rsv[0] && s.deflateEnabled {
					inflated, err := inflatePayload(data)
					if err != nil {
						s.fail(StatusInvalidData, "invalid compressed payload")
						return
					}
					data = inflated
				}
				if !s.dispatchMessage(msgType, data) {
					return
				}
				buf.Reset()
				msgType = opcodeContinuation
			}

		case opcodeClose:
			s.closeReceived = true
			status, reason := parseClosePayload(payload)
			status, reason = checkClosePayload(status, reason)
			s.sendClose(status, reason)
			if s.handler != nil {
				s.handler.OnClose(s, status, reason)
			}
			s.markClosed()
			return

		case opcodePing:
			s.enqueue(opcodePong, payload, false)

		case opcodePong:
			// No unsolicited pings are sent by this module, so pongs are ignored.
		}
	}
}

func (s *Session) dispatchMessage(op Opcode, data []byte) bool {
	if data == nil {
		data = []byte{}
	}
	if op == OpcodeText && !utf8.Valid(data) {
		s.fail(StatusInvalidData, "invalid UTF-8 text message")
		return false
	}
	if s.handler != nil {
		switch op {
		case OpcodeText:
			s.handler.OnText(s, data)
		case OpcodeBinary:
			s.handler.OnBinary(s, data)
		}
	}
	return true
}

func (s *Session) fail(status StatusCode, reason string) {
	s.sendClose(status, reason)
	if s.handler != nil {
		s.handler.OnClose(s, status, reason)
	}
	s.markClosed()
}

func (s *Session) markClosed() {
	s.state.Store(int32(StateClosed))
	_ = s.ch.Close()
}

// writeLoop serializes every outbound job — a single control frame, or
// the several fragments of one data message — onto the channel. It is
// the session's sole writer, so a job's fragments always reach the wire
// back-to-back with no other frame interleaved (spec.md §9's
// control-frame-interleaving note only permits this between, not
// within, a job).
func (s *Session) writeLoop(ctx context.Context) {
	bw := byteChannelWriter{s.ch}
	masked := s.role == RoleClient
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-s.outbound:
			if !ok {
				return
			}
			s.connMu.Lock()
			var err error
			for _, f := range job.fragments {
				if err = writeFrame(bw, f.opcode, f.data, f.fin, false, masked, s.rnd); err != nil {
					break
				}
			}
			s.connMu.Unlock()
			if job.errCh != nil {
				job.errCh <- err
				close(job.errCh)
			}
		}
	}
}

type byteChannelWriter struct{ ch transport.ByteChannel }

func (w byteChannelWriter) Write(buf []byte) (int, error) {
	if err := w.ch.Write(buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func (s *Session) enqueue(op Opcode, data []byte, wait bool) <-chan error {
	errCh := make(chan error, 1)
	job := outboundFrame{fragments: []fragment{{opcode: op, data: data, fin: true}}}
	if wait {
		job.errCh = errCh
	} else {
		close(errCh)
	}
	go func() { s.outbound <- job }()
	return errCh
}

// SendText sends a UTF-8 text message, splitting it into multiple
// fragments no larger than maxFragment bytes when maxFragment > 0 (spec.md
// §8's "message split by the sender at payload_limit" invariant).
func (s *Session) SendText(data []byte, maxFragment int) <-chan error {
	return s.sendData(OpcodeText, data, maxFragment)
}

// SendBinary sends a binary message, with the same fragmentation rule as
// [Session.SendText].
func (s *Session) SendBinary(data []byte, maxFragment int) <-chan error {
	return s.sendData(OpcodeBinary, data, maxFragment)
}

func (s *Session) sendData(op Opcode, data []byte, maxFragment int) <-chan error {
	if maxFragment <= 0 || len(data) <= maxFragment {
		return s.enqueue(op, data, true)
	}

	var fragments []fragment
	for i := 0; i < len(data); i += maxFragment {
		end := i + maxFragment
		if end > len(data) {
			end = len(data)
		}
		op := op
		if i > 0 {
			op = opcodeContinuation
		}
		fragments = append(fragments, fragment{opcode: op, data: data[i:end], fin: end == len(data)})
	}

	errCh := make(chan error, 1)
	go func() { s.outbound <- outboundFrame{fragments: fragments, errCh: errCh} }()
	return errCh
}

// Close initiates (or, if the peer already sent one, completes) the
// WebSocket closing handshake, per RFC 6455 §7.1.2. It is idempotent:
// calls after the first are no-ops, matching spec.md §8's
// `close(code); close(code)` invariant.
func (s *Session) Close(code StatusCode, reason string) {
	s.sendClose(code, reason)
}

func (s *Session) sendClose(status StatusCode, reason string) {
	s.closeSentMu.Lock()
	defer s.closeSentMu.Unlock()
	if s.closeSent {
		return
	}

	status, reason = checkClosePayload(status, reason)
	payload := encodeClosePayload(status, reason)

	bw := byteChannelWriter{s.ch}
	s.connMu.Lock()
	err := writeFrame(bw, opcodeClose, payload, true, false, s.role == RoleClient, s.rnd)
	s.connMu.Unlock()
	if err != nil {
		s.logger.Error("failed to send WebSocket close frame", slog.Any("error", err))
	}
	s.closeSent = true

	if s.closeReceived {
		_ = s.ch.Close()
	}
}
