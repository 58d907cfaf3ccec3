package httpwire

import (
	"sync"

	"github.com/wovenwire/wovenwire/pkg/header"
	"github.com/wovenwire/wovenwire/pkg/message"
)

// trailerBox is written once, by the chunked body reader, after it
// consumes the terminating "0\r\n" chunk and its trailer header block
// (spec.md §4.1 step 5: "deliver them as promoted headers on the
// message"). Since [message.Request]/[message.Response] are immutable
// value types already returned to the caller by the time trailers become
// available, this box is reachable through a message attribute instead.
type trailerBox struct {
	mu    sync.Mutex
	list  header.List
	ready bool
}

func (b *trailerBox) set(l header.List) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.list, b.ready = l, true
}

func (b *trailerBox) get() (header.List, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.list, b.ready
}

const (
	trailerAttrKey = "httpwire.trailers"
	codingsAttrKey = "httpwire.codings"
)

// RequestTrailers returns the trailer headers promoted after fully
// draining req's chunked body, and whether they're available yet (they
// never are before the body has been read to EOF).
func RequestTrailers(req message.Request) (header.List, bool) {
	v, ok := req.Attr(trailerAttrKey)
	if !ok {
		return nil, false
	}
	return v.(*trailerBox).get()
}

// ResponseTrailers is the response analogue of [RequestTrailers].
func ResponseTrailers(resp message.Response) (header.List, bool) {
	v, ok := resp.Attr(trailerAttrKey)
	if !ok {
		return nil, false
	}
	return v.(*trailerBox).get()
}
