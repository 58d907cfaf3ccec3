package message

import "github.com/wovenwire/wovenwire/pkg/header"

// Version is an HTTP version, e.g. "HTTP/1.1".
type Version string

const (
	HTTP10 Version = "HTTP/1.0"
	HTTP11 Version = "HTTP/1.1"
)

// Request is the request variant of spec.md §3's HttpMessage: value-like,
// with WithXxx mutators that return a new Request rather than mutating
// the receiver (spec.md §9 "Builder immutability").
type Request struct {
	Method  string
	Target  string // origin-form, absolute-form, authority-form, or "*".
	Version Version

	Headers header.List
	Body    *Entity

	attrs map[string]any
}

// NewRequest constructs a Request with an empty body and no headers.
func NewRequest(method, target string, version Version) Request {
	return Request{Method: method, Target: target, Version: version, Body: EmptyEntity()}
}

// Attr returns the value of attribute key, and whether it was set.
// Attributes are never serialized to the wire (spec.md §3).
func (r Request) Attr(key string) (any, bool) {
	v, ok := r.attrs[key]
	return v, ok
}

// WithAttr returns a copy of r with attribute key set to value.
func (r Request) WithAttr(key string, value any) Request {
	out := r
	out.attrs = cloneAttrs(r.attrs)
	out.attrs[key] = value
	return out
}

// WithHeader returns a copy of r with header name set to value (replacing
// any existing occurrence(s), per [header.List.Set]).
func (r Request) WithHeader(name, value string) Request {
	out := r
	out.Headers = r.Headers.Set(name, value)
	return out
}

// WithAddedHeader returns a copy of r with an additional header appended,
// preserving any existing header of the same name.
func (r Request) WithAddedHeader(name, value string) Request {
	out := r
	out.Headers = r.Headers.Add(name, value)
	return out
}

// WithoutHeader returns a copy of r with every header named name removed.
func (r Request) WithoutHeader(name string) Request {
	out := r
	out.Headers = r.Headers.Remove(name)
	return out
}

// WithBody returns a copy of r with its entity body replaced.
func (r Request) WithBody(body *Entity) Request {
	out := r
	out.Body = body
	return out
}

func cloneAttrs(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
