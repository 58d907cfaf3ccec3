package websocket

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/wovenwire/wovenwire/internal/randsrc"
)

// Opcode denotes the type of a WebSocket frame, as defined in RFC 6455
// §5.2 and §11.8.
type Opcode int

const (
	opcodeContinuation Opcode = iota
	OpcodeText
	OpcodeBinary
	// 3-7 are reserved for further non-control frames.
	_
	_
	_
	_
	_
	opcodeClose
	opcodePing
	opcodePong
	// 11-16 are reserved for further control frames.
)

// String returns the opcode's name, or its number if it's unrecognized.
func (o Opcode) String() string {
	switch o {
	case opcodeContinuation:
		return "continuation"
	case OpcodeText:
		return "text"
	case OpcodeBinary:
		return "binary"
	case opcodeClose:
		return "close"
	case opcodePing:
		return "ping"
	case opcodePong:
		return "pong"
	default:
		return strconv.Itoa(int(o))
	}
}

func (o Opcode) isControl() bool { return o > 7 }

// Frame parsing/construction constants, per RFC 6455 §5.2.
const (
	bit0     = 0x80
	bit1     = 0x40
	bit2     = 0x20
	bit3     = 0x10
	bits1to7 = 0x7f
	bits4to7 = 0x0f

	len7bits  = 125 // Payload length of up to 125 bytes.
	len16bits = 126 // Extended payload length of up to 64 KiB.
	len64bits = 127 // Extended payload length of up to 16 EiB.

	// maxControlPayload is the maximum length of a control frame payload,
	// per RFC 6455 §5.5.
	maxControlPayload = 125
)

// frameHeader is RFC 6455 §5.2's frame header, excluding the payload.
type frameHeader struct {
	fin           bool
	rsv           [3]bool
	opcode        Opcode
	mask          bool
	maskKey       [4]byte
	payloadLength uint64
}

// readFrameHeader reads one frame header (without its payload) off br. It
// blocks until a full header is available.
func readFrameHeader(br io.Reader, scratch *[8]byte) (frameHeader, error) {
	h := frameHeader{}

	if _, err := io.ReadFull(br, scratch[:2]); err != nil {
		return h, fmt.Errorf("failed to read WebSocket frame header: %w", err)
	}
	b0, b1 := scratch[0], scratch[1]

	h.fin = (b0 & bit0) != 0
	h.rsv[0] = (b0 & bit1) != 0
	h.rsv[1] = (b0 & bit2) != 0
	h.rsv[2] = (b0 & bit3) != 0
	h.opcode = Opcode(b0 & bits4to7)

	h.mask = (b1 & bit0) != 0
	length := b1 & bits1to7

	var err error
	switch {
	case length <= len7bits:
		h.payloadLength = uint64(length)
	case length == len16bits:
		_, err = io.ReadFull(br, scratch[:2])
		h.payloadLength = uint64(binary.BigEndian.Uint16(scratch[:2]))
	case length == len64bits:
		_, err = io.ReadFull(br, scratch[:8])
		h.payloadLength = binary.BigEndian.Uint64(scratch[:8])
	}
	if err != nil {
		return h, fmt.Errorf("failed to read WebSocket frame payload length: %w", err)
	}

	if h.mask {
		if _, err := io.ReadFull(br, h.maskKey[:]); err != nil {
			return h, fmt.Errorf("failed to read WebSocket frame masking key: %w", err)
		}
	}

	return h, nil
}

// checkFrameHeader checks whether the connection must be failed because
// of an invalid frame, per RFC 6455 §5.1, §5.2, and §5.5. msgType is the
// opcode of the data message currently being reassembled (or
// opcodeContinuation if none). wantMasked is true when reading frames
// from a client (a server MUST reject unmasked client frames), and false
// when reading frames from a server (a client MUST reject masked ones).
func checkFrameHeader(h frameHeader, msgType Opcode, wantMasked bool, deflateNegotiated bool) (reason string, err error) {
	if h.rsv[1] || h.rsv[2] || (h.rsv[0] && !deflateNegotiated) {
		return "invalid reserved bits", fmt.Errorf("peer sent frame with invalid reserved bits")
	}
	if (h.opcode > 2 && h.opcode < 8) || h.opcode > 10 {
		return fmt.Sprintf("unknown opcode %d", h.opcode), fmt.Errorf("peer sent frame with unknown opcode %d", h.opcode)
	}
	if h.opcode == opcodeContinuation && msgType == opcodeContinuation {
		return "continuation frame with nothing to continue", fmt.Errorf("peer sent unexpected continuation frame")
	}
	if (h.opcode == OpcodeText || h.opcode == OpcodeBinary) && msgType != opcodeContinuation {
		return "data frame interrupts a fragmented message", fmt.Errorf("peer sent new data frame mid-fragmentation")
	}
	if h.opcode.isControl() {
		if h.payloadLength > maxControlPayload {
			return "control frame payload too large", fmt.Errorf("control frame (opcode %d) too large: %d bytes", h.opcode, h.payloadLength)
		}
		if !h.fin {
			return "control frame must not be fragmented", fmt.Errorf("control frame (opcode %d) has FIN=0", h.opcode)
		}
	}
	if h.mask != wantMasked {
		if wantMasked {
			return "client frame must be masked", fmt.Errorf("peer sent unmasked frame, masking required")
		}
		return "server frame must not be masked", fmt.Errorf("peer sent masked frame, masking forbidden")
	}
	if h.mask && h.maskKey == [4]byte{} {
		return "masking key must not be zero", fmt.Errorf("peer sent frame with all-zero masking key")
	}
	return "", nil
}

// writeFrame writes one unfragmented frame to bw. masked selects client
// framing (random masking key, bit set) vs. server framing (unmasked).
func writeFrame(bw io.Writer, op Opcode, payload []byte, fin bool, rsv1 bool, masked bool, rnd randsrc.Source) error {
	b0 := byte(op)
	if fin {
		b0 |= bit0
	}
	if rsv1 {
		b0 |= bit1
	}
	if _, err := bw.Write([]byte{b0}); err != nil {
		return fmt.Errorf("failed to write WebSocket frame header: %w", err)
	}

	if err := writePayloadLength(bw, len(payload), masked); err != nil {
		return fmt.Errorf("failed to write WebSocket frame length: %w", err)
	}

	if masked {
		var key [4]byte
		rnd.Fill(key[:])
		if _, err := bw.Write(key[:]); err != nil {
			return fmt.Errorf("failed to write WebSocket masking key: %w", err)
		}
		if len(payload) > 0 {
			out := make([]byte, len(payload))
			applyMask(out, payload, key)
			if _, err := bw.Write(out); err != nil {
				return fmt.Errorf("failed to write WebSocket masked payload: %w", err)
			}
		}
		return nil
	}

	if len(payload) > 0 {
		if _, err := bw.Write(payload); err != nil {
			return fmt.Errorf("failed to write WebSocket payload: %w", err)
		}
	}
	return nil
}

func writePayloadLength(bw io.Writer, n int, masked bool) error {
	maskBit := byte(0)
	if masked {
		maskBit = bit0
	}

	switch {
	case n <= len7bits:
		_, err := bw.Write([]byte{maskBit | byte(n)})
		return err
	case n <= math.MaxUint16:
		var buf [3]byte
		buf[0] = maskBit | len16bits
		binary.BigEndian.PutUint16(buf[1:3], uint16(n)) //nolint:gosec // bounded by the case above.
		_, err := bw.Write(buf[:])
		return err
	default:
		var buf [9]byte
		buf[0] = maskBit | len64bits
		binary.BigEndian.PutUint64(buf[1:9], uint64(n)) //nolint:gosec // n is a non-negative int.
		_, err := bw.Write(buf[:])
		return err
	}
}

// applyMask XORs src with key (repeating every 4 bytes), per RFC 6455
// §5.3, writing the result to dst. dst and src may be the same slice.
func applyMask(dst, src []byte, key [4]byte) {
	for i := range src {
		dst[i] = src[i] ^ key[i&3]
	}
}
