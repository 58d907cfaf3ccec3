package websocket

import (
	"bytes"
	"testing"

	"github.com/wovenwire/wovenwire/internal/randsrc"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		masked  bool
	}{
		{"empty unmasked", nil, false},
		{"short unmasked", []byte("hello"), false},
		{"short masked", []byte("hello"), true},
		{"boundary 125", bytes.Repeat([]byte{'a'}, 125), false},
		{"boundary 126", bytes.Repeat([]byte{'a'}, 126), false},
		{"boundary 65535", bytes.Repeat([]byte{'a'}, 65535), false},
		{"boundary 65536", bytes.Repeat([]byte{'a'}, 65536), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rnd := randsrc.NewFake([]byte{1, 2, 3, 4})
			if err := writeFrame(&buf, OpcodeBinary, tt.payload, true, false, tt.masked, rnd); err != nil {
				t.Fatalf("writeFrame() error = %v", err)
			}

			var scratch [8]byte
			h, err := readFrameHeader(&buf, &scratch)
			if err != nil {
				t.Fatalf("readFrameHeader() error = %v", err)
			}
			if h.opcode != OpcodeBinary {
				t.Errorf("opcode = %v, want %v", h.opcode, OpcodeBinary)
			}
			if !h.fin {
				t.Error("fin = false, want true")
			}
			if h.mask != tt.masked {
				t.Errorf("mask = %v, want %v", h.mask, tt.masked)
			}
			if int(h.payloadLength) != len(tt.payload) {
				t.Fatalf("payloadLength = %d, want %d", h.payloadLength, len(tt.payload))
			}

			got := make([]byte, h.payloadLength)
			if _, err := buf.Read(got); err != nil && h.payloadLength > 0 {
				t.Fatalf("reading payload: %v", err)
			}
			if h.mask {
				applyMask(got, got, h.maskKey)
			}
			if !bytes.Equal(got, tt.payload) {
				t.Errorf("payload = %v, want %v", got, tt.payload)
			}
		})
	}
}

func TestCheckFrameHeaderMaskingRequirements(t *testing.T) {
	masked := frameHeader{opcode: OpcodeText, fin: true, mask: true, maskKey: [4]byte{1, 2, 3, 4}}
	unmasked := frameHeader{opcode: OpcodeText, fin: true, mask: false}

	if _, err := checkFrameHeader(unmasked, opcodeContinuation, true, false); err == nil {
		t.Error("server accepted unmasked client frame, want rejection")
	}
	if _, err := checkFrameHeader(masked, opcodeContinuation, false, false); err == nil {
		t.Error("client accepted masked server frame, want rejection")
	}
	if _, err := checkFrameHeader(masked, opcodeContinuation, true, false); err != nil {
		t.Errorf("server rejected valid masked client frame: %v", err)
	}
}

func TestCheckFrameHeaderZeroMaskKeyRejected(t *testing.T) {
	h := frameHeader{opcode: OpcodeText, fin: true, mask: true, maskKey: [4]byte{}}
	if _, err := checkFrameHeader(h, opcodeContinuation, true, false); err == nil {
		t.Error("accepted all-zero masking key, want rejection")
	}
}

func TestCheckFrameHeaderControlFrameRules(t *testing.T) {
	fragmented := frameHeader{opcode: opcodePing, fin: false, mask: true, maskKey: [4]byte{1, 2, 3, 4}}
	if _, err := checkFrameHeader(fragmented, opcodeContinuation, true, false); err == nil {
		t.Error("accepted FIN=0 control frame, want rejection")
	}

	tooLarge := frameHeader{
		opcode: opcodePing, fin: true, mask: true, maskKey: [4]byte{1, 2, 3, 4},
		payloadLength: maxControlPayload + 1,
	}
	if _, err := checkFrameHeader(tooLarge, opcodeContinuation, true, false); err == nil {
		t.Error("accepted oversized control frame payload, want rejection")
	}
}

func TestCheckFrameHeaderReservedBits(t *testing.T) {
	h := frameHeader{opcode: OpcodeText, fin: true, mask: true, maskKey: [4]byte{1, 2, 3, 4}, rsv: [3]bool{false, true, false}}
	if _, err := checkFrameHeader(h, opcodeContinuation, true, false); err == nil {
		t.Error("accepted RSV2 set without extension negotiated, want rejection")
	}

	deflateBit := frameHeader{opcode: OpcodeText, fin: true, mask: true, maskKey: [4]byte{1, 2, 3, 4}, rsv: [3]bool{true, false, false}}
	if _, err := checkFrameHeader(deflateBit, opcodeContinuation, true, false); err == nil {
		t.Error("accepted RSV1 set without permessage-deflate negotiated, want rejection")
	}
	if _, err := checkFrameHeader(deflateBit, opcodeContinuation, true, true); err != nil {
		t.Errorf("rejected RSV1 with permessage-deflate negotiated: %v", err)
	}
}

func TestCheckFrameHeaderFragmentationSequencing(t *testing.T) {
	dataFrame := frameHeader{opcode: OpcodeText, fin: false, mask: true, maskKey: [4]byte{1, 2, 3, 4}}
	if _, err := checkFrameHeader(dataFrame, OpcodeBinary, true, false); err == nil {
		t.Error("accepted new data frame mid-fragmentation, want rejection")
	}

	orphanContinuation := frameHeader{opcode: opcodeContinuation, fin: true, mask: true, maskKey: [4]byte{1, 2, 3, 4}}
	if _, err := checkFrameHeader(orphanContinuation, opcodeContinuation, true, false); err == nil {
		t.Error("accepted continuation frame with nothing to continue, want rejection")
	}
}

func TestApplyMaskRoundTrip(t *testing.T) {
	key := [4]byte{0xde, 0xad, 0xbe, 0xef}
	src := []byte("the quick brown fox")
	masked := make([]byte, len(src))
	applyMask(masked, src, key)
	if bytes.Equal(masked, src) {
		t.Fatal("masking did not change the payload")
	}
	unmasked := make([]byte, len(masked))
	applyMask(unmasked, masked, key)
	if !bytes.Equal(unmasked, src) {
		t.Errorf("applyMask() round trip = %v, want %v", unmasked, src)
	}
}
