package httpwire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/wovenwire/wovenwire/pkg/message"
)

func TestWriteRequestAddsContentLength(t *testing.T) {
	req := message.NewRequest("POST", "/echo", message.HTTP11)
	req = req.WithHeader("Host", "example.com")
	req = req.WithBody(message.NewBytesEntity([]byte("hello")))

	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteRequest(req); err != nil {
		t.Fatalf("WriteRequest() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "Content-Length: 5\r\n") {
		t.Errorf("missing Content-Length header in:\n%s", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\nhello") {
		t.Errorf("unexpected body framing in:\n%s", got)
	}
}

func TestWriteResponseChunkedUnknownSize(t *testing.T) {
	resp := message.NewResponse(200, "OK", message.HTTP11)
	body := message.NewEntity(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader("hello world")), nil
	}, nil)
	resp = resp.WithBody(body)

	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteResponse(resp, "GET"); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "Transfer-Encoding: chunked\r\n") {
		t.Errorf("missing Transfer-Encoding header in:\n%s", got)
	}
	if !strings.HasSuffix(got, "0\r\n\r\n") {
		t.Errorf("missing terminating chunk in:\n%s", got)
	}

	// Round-trip it back through the Reader to confirm the framing decodes.
	decoded, err := NewReader(strings.NewReader(got)).ReadResponse("GET")
	if err != nil {
		t.Fatalf("round-trip ReadResponse() error = %v", err)
	}
	rc, err := decoded.Body.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(b) != "hello world" {
		t.Errorf("round-tripped body = %q, want %q", b, "hello world")
	}
}

func TestWriteResponseNoBodyFor204(t *testing.T) {
	resp := message.NewResponse(204, "No Content", message.HTTP11)
	resp = resp.WithBody(message.NewBytesEntity([]byte("ignored")))

	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteResponse(resp, "GET"); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	got := buf.String()
	if strings.Contains(got, "Content-Length") {
		t.Errorf("204 response should carry no length header:\n%s", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\n") {
		t.Errorf("204 response should have no body bytes:\n%s", got)
	}
}
