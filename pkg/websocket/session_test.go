package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wovenwire/wovenwire/pkg/transport"
)

type recordingHandler struct {
	mu     sync.Mutex
	texts  [][]byte
	bins   [][]byte
	closed bool
	code   StatusCode
	reason string

	textCh  chan []byte
	closeCh chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		textCh:  make(chan []byte, 16),
		closeCh: make(chan struct{}),
	}
}

func (h *recordingHandler) OnText(_ *Session, data []byte) {
	h.mu.Lock()
	h.texts = append(h.texts, append([]byte(nil), data...))
	h.mu.Unlock()
	h.textCh <- data
}

func (h *recordingHandler) OnBinary(_ *Session, data []byte) {
	h.mu.Lock()
	h.bins = append(h.bins, append([]byte(nil), data...))
	h.mu.Unlock()
}

func (h *recordingHandler) OnClose(_ *Session, code StatusCode, reason string) {
	h.mu.Lock()
	h.closed = true
	h.code = code
	h.reason = reason
	h.mu.Unlock()
	close(h.closeCh)
}

// echoHandler echoes every text/binary message it receives back to the
// sender, standing in for a server-side application.
type echoHandler struct{}

func (echoHandler) OnText(s *Session, data []byte)   { <-s.SendText(data, 0) }
func (echoHandler) OnBinary(s *Session, data []byte) { <-s.SendBinary(data, 0) }
func (echoHandler) OnClose(*Session, StatusCode, string) {}

func newSessionPair(t *testing.T, serverHandler, clientHandler SessionHandler) (server, client *Session) {
	t.Helper()
	clientCh, serverCh := transport.NewPipe()
	server = NewSession(serverCh, RoleServer, serverHandler)
	client = NewSession(clientCh, RoleClient, clientHandler)
	return server, client
}

func runSession(t *testing.T, ctx context.Context, s *Session) {
	t.Helper()
	go func() { _ = s.Run(ctx) }()
}

func TestSessionEchoTextMessage(t *testing.T) {
	clientHandler := newRecordingHandler()
	server, client := newSessionPair(t, echoHandler{}, clientHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runSession(t, ctx, server)
	runSession(t, ctx, client)

	if err := <-client.SendText([]byte("hello"), 0); err != nil {
		t.Fatalf("SendText() error = %v", err)
	}

	select {
	case got := <-clientHandler.textCh:
		if string(got) != "hello" {
			t.Errorf("echoed text = %q, want %q", got, "hello")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for echoed text")
	}
}

func TestSessionEchoBinaryMessageFragmented(t *testing.T) {
	serverHandler := newRecordingHandler()
	server, client := newSessionPair(t, serverHandler, echoHandler{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runSession(t, ctx, server)
	runSession(t, ctx, client)

	payload := make([]byte, 500)
	for i := range payload {
		payload[i] = byte(i)
	}

	if err := <-client.SendBinary(payload, 64); err != nil {
		t.Fatalf("SendBinary() error = %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		serverHandler.mu.Lock()
		n := len(serverHandler.bins)
		serverHandler.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for fragmented binary message")
		case <-time.After(10 * time.Millisecond):
		}
	}

	serverHandler.mu.Lock()
	got := serverHandler.bins[0]
	serverHandler.mu.Unlock()
	if len(got) != len(payload) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(payload))
	}
	for i := range payload {
		if got[i] != payload[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], payload[i])
		}
	}
}

func TestSessionCloseHandshakeIdempotent(t *testing.T) {
	serverHandler := newRecordingHandler()
	clientHandler := newRecordingHandler()
	server, client := newSessionPair(t, serverHandler, clientHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runSession(t, ctx, server)
	runSession(t, ctx, client)

	client.Close(StatusNormalClosure, "done")
	client.Close(StatusGoingAway, "done again") // no-op, already sent.

	select {
	case <-serverHandler.closeCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server-side close notification")
	}

	serverHandler.mu.Lock()
	code := serverHandler.code
	serverHandler.mu.Unlock()
	if code != StatusNormalClosure {
		t.Errorf("received close code = %v, want %v", code, StatusNormalClosure)
	}

	select {
	case <-clientHandler.closeCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client-side close completion")
	}
}

func TestSessionStateTransitions(t *testing.T) {
	server, client := newSessionPair(t, newRecordingHandler(), newRecordingHandler())
	if server.State() != StatePending {
		t.Errorf("initial state = %v, want %v", server.State(), StatePending)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { _ = server.Run(ctx); close(done) }()
	runSession(t, ctx, client)

	time.Sleep(20 * time.Millisecond)
	if server.State() != StateOpen {
		t.Errorf("state after Run = %v, want %v", server.State(), StateOpen)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session to close")
	}
	if server.State() != StateClosed {
		t.Errorf("state after cancel = %v, want %v", server.State(), StateClosed)
	}
}
