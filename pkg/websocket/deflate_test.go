package websocket

import (
	"bytes"
	"testing"

	"github.com/wovenwire/wovenwire/pkg/header"
)

func TestDeflateInflateRoundTrip(t *testing.T) {
	tests := [][]byte{
		[]byte(""),
		[]byte("hello world"),
		bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200),
	}

	for _, payload := range tests {
		compressed, err := deflatePayload(payload)
		if err != nil {
			t.Fatalf("deflatePayload() error = %v", err)
		}
		restored, err := inflatePayload(compressed)
		if err != nil {
			t.Fatalf("inflatePayload() error = %v", err)
		}
		if !bytes.Equal(restored, payload) {
			t.Errorf("round trip = %q, want %q", restored, payload)
		}
	}
}

func TestNegotiateDeflateAcceptsOffer(t *testing.T) {
	offers := []header.Extension{{Name: header.PermessageDeflateName}}
	agreed, ok := negotiateDeflate(offers)
	if !ok {
		t.Fatal("negotiateDeflate() ok = false, want true")
	}
	if agreed.Name != header.PermessageDeflateName {
		t.Errorf("Name = %q", agreed.Name)
	}

	var gotClient, gotServer bool
	for _, p := range agreed.Params {
		switch p.Name {
		case "client_no_context_takeover":
			gotClient = true
		case "server_no_context_takeover":
			gotServer = true
		}
	}
	if !gotClient || !gotServer {
		t.Errorf("agreed params = %+v, want both no_context_takeover directions", agreed.Params)
	}
}

func TestNegotiateDeflateDeclinesWithoutOffer(t *testing.T) {
	if _, ok := negotiateDeflate(nil); ok {
		t.Error("negotiateDeflate(nil) ok = true, want false")
	}
}
