package wsecho

import (
	"context"
	"testing"
	"time"

	"github.com/wovenwire/wovenwire/pkg/transport"
	"github.com/wovenwire/wovenwire/pkg/websocket"
)

type captureHandler struct {
	textCh chan []byte
}

func (h *captureHandler) OnText(_ *websocket.Session, data []byte) {
	h.textCh <- data
}

func (h *captureHandler) OnBinary(*websocket.Session, []byte) {}

func (h *captureHandler) OnClose(*websocket.Session, websocket.StatusCode, string) {}

func TestHandlerEchoesTextAndCounts(t *testing.T) {
	echo := New()
	capture := &captureHandler{textCh: make(chan []byte, 4)}

	clientCh, serverCh := transport.NewPipe()
	server := websocket.NewSession(serverCh, websocket.RoleServer, echo)
	client := websocket.NewSession(clientCh, websocket.RoleClient, capture)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = server.Run(ctx) }()
	go func() { _ = client.Run(ctx) }()

	if err := <-client.SendText([]byte("ping"), 0); err != nil {
		t.Fatalf("SendText() error = %v", err)
	}

	select {
	case got := <-capture.textCh:
		if string(got) != "ping" {
			t.Errorf("echoed text = %q, want %q", got, "ping")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for echo")
	}

	if n := echo.MessageCount(); n != 1 {
		t.Errorf("MessageCount() = %d, want 1", n)
	}
	if n := echo.ByteCount(); n != 4 {
		t.Errorf("ByteCount() = %d, want 4", n)
	}
}

func TestHandlerFragmentsEchoWhenConfigured(t *testing.T) {
	echo := New(WithMaxFragment(2))
	capture := &captureHandler{textCh: make(chan []byte, 4)}

	clientCh, serverCh := transport.NewPipe()
	server := websocket.NewSession(serverCh, websocket.RoleServer, echo)
	client := websocket.NewSession(clientCh, websocket.RoleClient, capture)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = server.Run(ctx) }()
	go func() { _ = client.Run(ctx) }()

	if err := <-client.SendText([]byte("hello"), 0); err != nil {
		t.Fatalf("SendText() error = %v", err)
	}

	select {
	case got := <-capture.textCh:
		if string(got) != "hello" {
			t.Errorf("reassembled echo = %q, want %q", got, "hello")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fragmented echo")
	}
}
