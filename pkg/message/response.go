package message

import "github.com/wovenwire/wovenwire/pkg/header"

// Response is the response variant of spec.md §3's HttpMessage.
type Response struct {
	StatusCode int
	Reason     string
	Version    Version

	Headers header.List
	Body    *Entity

	attrs map[string]any
}

// NewResponse constructs a Response with an empty body and no headers.
func NewResponse(statusCode int, reason string, version Version) Response {
	return Response{StatusCode: statusCode, Reason: reason, Version: version, Body: EmptyEntity()}
}

func (r Response) Attr(key string) (any, bool) {
	v, ok := r.attrs[key]
	return v, ok
}

func (r Response) WithAttr(key string, value any) Response {
	out := r
	out.attrs = cloneAttrs(r.attrs)
	out.attrs[key] = value
	return out
}

func (r Response) WithHeader(name, value string) Response {
	out := r
	out.Headers = r.Headers.Set(name, value)
	return out
}

func (r Response) WithAddedHeader(name, value string) Response {
	out := r
	out.Headers = r.Headers.Add(name, value)
	return out
}

func (r Response) WithoutHeader(name string) Response {
	out := r
	out.Headers = r.Headers.Remove(name)
	return out
}

func (r Response) WithBody(body *Entity) Response {
	out := r
	out.Body = body
	return out
}

// NoBodyExpected reports whether a response with this status, to a
// request made with reqMethod, must carry no body, per spec.md §4.1 step
// 3: 1xx, 204, 304, or any response to HEAD/CONNECT.
func (r Response) NoBodyExpected(reqMethod string) bool {
	if r.StatusCode >= 100 && r.StatusCode < 200 {
		return true
	}
	switch r.StatusCode {
	case 204, 304:
		return true
	}
	switch reqMethod {
	case "HEAD", "CONNECT":
		return true
	}
	return false
}
