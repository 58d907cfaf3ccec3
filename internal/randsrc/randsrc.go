// Package randsrc provides the SecureRandom collaborator used to generate
// WebSocket masking keys (pkg/websocket) and multipart boundaries
// (pkg/multipart), with a deterministic fake for tests.
package randsrc

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// Source fills buffers with random bytes, and draws random uint32s and
// bounded integers. Production code uses [CryptoRandom]; tests use [NewFake].
type Source interface {
	Fill(buf []byte)
	NextUint32() uint32
	NextIntRange(lo, hi int) int
}

// CryptoRandom is a [Source] backed by [crypto/rand].
type CryptoRandom struct{}

func (CryptoRandom) Fill(buf []byte) {
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		panic("randsrc: system entropy source failed: " + err.Error())
	}
}

func (c CryptoRandom) NextUint32() uint32 {
	var b [4]byte
	c.Fill(b[:])
	return binary.BigEndian.Uint32(b[:])
}

func (c CryptoRandom) NextIntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint32(hi - lo)
	return lo + int(c.NextUint32()%span)
}

// Fake is a [Source] that replays a fixed byte stream, for reproducible tests
// (e.g. asserting an exact masking key or multipart boundary value).
type Fake struct {
	bytes []byte
	pos   int
}

// NewFake returns a [Source] that cycles through seed, wrapping around
// when exhausted.
func NewFake(seed []byte) *Fake {
	if len(seed) == 0 {
		seed = []byte{0}
	}
	return &Fake{bytes: seed}
}

func (f *Fake) Fill(buf []byte) {
	for i := range buf {
		buf[i] = f.bytes[f.pos%len(f.bytes)]
		f.pos++
	}
}

func (f *Fake) NextUint32() uint32 {
	var b [4]byte
	f.Fill(b[:])
	return binary.BigEndian.Uint32(b[:])
}

func (f *Fake) NextIntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(f.NextUint32())%(hi-lo)
}
