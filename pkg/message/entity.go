package message

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrAlreadyOpened is returned by [Entity.Open] when the entity's
// single-consumer byte source has already been drawn, per spec.md §3's
// "Ownership" rule: an Entity's source may be opened at most once unless
// it's explicitly restartable.
var ErrAlreadyOpened = errors.New("message: entity body already opened")

// Opener lazily yields the entity's byte source. It's called at most once
// per [Entity] unless the entity was built with [NewRestartableEntity].
type Opener func() (io.ReadCloser, error)

// Entity is a streaming message body: a byte source the caller can open
// at most once (spec.md §3), plus an optional known length.
type Entity struct {
	// KnownSize is present iff Content-Length applies to this body.
	KnownSize *uint64

	open        Opener
	restartable bool

	mu     sync.Mutex
	opened bool
}

// NewEntity wraps opener as a single-consumer [Entity] with the given
// known size (nil when unknown — chunked or read-until-EOF framing).
func NewEntity(opener Opener, knownSize *uint64) *Entity {
	return &Entity{open: opener, KnownSize: knownSize}
}

// NewRestartableEntity wraps opener as an [Entity] whose source may be
// opened more than once (e.g. a file-backed or in-memory source).
func NewRestartableEntity(opener Opener, knownSize *uint64) *Entity {
	return &Entity{open: opener, KnownSize: knownSize, restartable: true}
}

// NewBytesEntity returns a restartable [Entity] backed by an in-memory
// buffer, with KnownSize set to len(b).
func NewBytesEntity(b []byte) *Entity {
	size := uint64(len(b))
	return NewRestartableEntity(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	}, &size)
}

// EmptyEntity returns a restartable, zero-length [Entity].
func EmptyEntity() *Entity {
	return NewBytesEntity(nil)
}

// Open returns the entity's byte source. It fails with [ErrAlreadyOpened]
// on a second call unless the entity was constructed as restartable.
func (e *Entity) Open() (io.ReadCloser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.opened && !e.restartable {
		return nil, ErrAlreadyOpened
	}
	e.opened = true
	return e.open()
}

// IsKnownEmpty reports whether the body is known, without opening it, to
// be exactly zero bytes (spec.md §3's is_known_empty predicate).
func (e *Entity) IsKnownEmpty() bool {
	return e.KnownSize != nil && *e.KnownSize == 0
}
