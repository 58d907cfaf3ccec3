package httpwire

import (
	"io"
	"strings"
	"testing"
)

func TestReadRequestContentLength(t *testing.T) {
	raw := "POST /echo HTTP/1.1\r\nHost: example.com\r\nContent-Length: 5\r\n\r\nhello"
	r := NewReader(strings.NewReader(raw))

	req, err := r.ReadRequest()
	if err != nil {
		t.Fatalf("ReadRequest() error = %v", err)
	}
	if req.Method != "POST" || req.Target != "/echo" {
		t.Fatalf("ReadRequest() = %+v", req)
	}

	rc, err := req.Body.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(b) != "hello" {
		t.Errorf("body = %q, want hello", b)
	}
}

func TestReadResponseChunkedWithTrailer(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" +
		"5\r\nhello\r\n6\r\n world\r\n0\r\nX-Trailer: t\r\n\r\n"
	r := NewReader(strings.NewReader(raw))

	resp, err := r.ReadResponse("GET")
	if err != nil {
		t.Fatalf("ReadResponse() error = %v", err)
	}

	rc, err := resp.Body.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(b) != "hello world" {
		t.Errorf("body = %q, want %q", b, "hello world")
	}

	trailers, ok := ResponseTrailers(resp)
	if !ok {
		t.Fatal("ResponseTrailers() not ready after draining body")
	}
	if v, ok := trailers.Get("X-Trailer"); !ok || v != "t" {
		t.Errorf("X-Trailer = %q, %v", v, ok)
	}
}

func TestReadResponseNoBodyForHEAD(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\n"
	r := NewReader(strings.NewReader(raw))

	resp, err := r.ReadResponse("HEAD")
	if err != nil {
		t.Fatalf("ReadResponse() error = %v", err)
	}
	if !resp.Body.IsKnownEmpty() {
		t.Error("HEAD response body should be known-empty regardless of Content-Length")
	}
}

func TestReadRequestMalformedStartLine(t *testing.T) {
	r := NewReader(strings.NewReader("GET\r\n\r\n"))
	if _, err := r.ReadRequest(); err == nil {
		t.Fatal("expected error for malformed start line")
	}
}

func TestReadRequestHeaderLimitExceeded(t *testing.T) {
	huge := strings.Repeat("a", DefaultMaxHeaderBytes+1)
	raw := "GET / HTTP/1.1\r\nX-Big: " + huge + "\r\n\r\n"
	r := NewReader(strings.NewReader(raw))

	_, err := r.ReadRequest()
	if err == nil {
		t.Fatal("expected HeaderLimitExceeded error")
	}
	httpErr, ok := err.(*Error)
	if !ok || httpErr.Kind != HeaderLimitExceeded {
		t.Errorf("error = %v, want Kind=HeaderLimitExceeded", err)
	}
}

func TestReadRequestObsFold(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nX-Folded: line1\r\n line2\r\n\r\n"
	r := NewReader(strings.NewReader(raw))

	req, err := r.ReadRequest()
	if err != nil {
		t.Fatalf("ReadRequest() error = %v", err)
	}
	if v, ok := req.Headers.Get("X-Folded"); !ok || v != "line1 line2" {
		t.Errorf("X-Folded = %q, %v", v, ok)
	}
}
