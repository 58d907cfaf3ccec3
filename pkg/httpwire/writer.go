package httpwire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wovenwire/wovenwire/pkg/header"
	"github.com/wovenwire/wovenwire/pkg/message"
)

// Writer serializes [message.Request]/[message.Response] values back onto
// the wire, choosing Content-Length or chunked framing for a body whose
// length isn't already pinned down by caller-set headers (spec.md §4.1's
// Writer contract).
type Writer struct {
	bw *bufio.Writer
}

// NewWriter wraps w as a [Writer].
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteRequest serializes req's start line, headers, and body.
func (w *Writer) WriteRequest(req message.Request) error {
	if _, err := fmt.Fprintf(w.bw, "%s %s %s\r\n", req.Method, req.Target, req.Version); err != nil {
		return newError(IoError, "write request line", err)
	}
	return w.writeMessage(req.Headers, req.Body, false)
}

// WriteResponse serializes resp's status line, headers, and body.
// reqMethod is the method of the request resp answers, needed to decide
// whether a body is permitted at all (spec.md §4.1 step 3).
func (w *Writer) WriteResponse(resp message.Response, reqMethod string) error {
	reason := resp.Reason
	if _, err := fmt.Fprintf(w.bw, "%s %d %s\r\n", resp.Version, resp.StatusCode, reason); err != nil {
		return newError(IoError, "write status line", err)
	}
	return w.writeMessage(resp.Headers, resp.Body, resp.NoBodyExpected(reqMethod))
}

func (w *Writer) writeMessage(hdrs header.List, body *message.Entity, bodyForbidden bool) error {
	knownEmpty := body == nil || body.IsKnownEmpty()
	hasCL := hdrs.Has("Content-Length")
	hasTE := hdrs.Has("Transfer-Encoding")
	chunked := false

	switch {
	case bodyForbidden:
		// No body bytes and no length headers, regardless of entity state.
	case knownEmpty:
		if !hasCL && !hasTE {
			hdrs = hdrs.Set("Content-Length", "0")
		}
	case body.KnownSize != nil:
		if !hasCL && !hasTE {
			hdrs = hdrs.Set("Content-Length", strconv.FormatUint(*body.KnownSize, 10))
		}
	default:
		if !hasTE {
			hdrs = hdrs.Set("Transfer-Encoding", "chunked")
		}
	}
	if !bodyForbidden && !knownEmpty {
		if te, ok := hdrs.Get("Transfer-Encoding"); ok && strings.Contains(strings.ToLower(te), "chunked") {
			chunked = true
		}
	}

	for _, h := range hdrs {
		if _, err := fmt.Fprintf(w.bw, "%s: %s\r\n", h.Name, h.Value); err != nil {
			return newError(IoError, "write header", err)
		}
	}
	if _, err := w.bw.WriteString("\r\n"); err != nil {
		return newError(IoError, "write header block terminator", err)
	}

	if bodyForbidden || knownEmpty {
		return w.flush()
	}

	rc, err := body.Open()
	if err != nil {
		return newError(IoError, "open body entity", err)
	}
	defer rc.Close()

	if chunked {
		if err := w.writeChunked(rc); err != nil {
			return err
		}
	} else if _, err := io.Copy(w.bw, rc); err != nil {
		return newError(IoError, "write body", err)
	}
	return w.flush()
}

func (w *Writer) writeChunked(r io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := fmt.Fprintf(w.bw, "%x\r\n", n); werr != nil {
				return newError(IoError, "write chunk size", werr)
			}
			if _, werr := w.bw.Write(buf[:n]); werr != nil {
				return newError(IoError, "write chunk data", werr)
			}
			if _, werr := w.bw.WriteString("\r\n"); werr != nil {
				return newError(IoError, "write chunk terminator", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return newError(IoError, "read body for chunked write", err)
		}
	}
	if _, err := w.bw.WriteString("0\r\n\r\n"); err != nil {
		return newError(IoError, "write terminating chunk", err)
	}
	return nil
}

func (w *Writer) flush() error {
	if err := w.bw.Flush(); err != nil {
		return newError(IoError, "flush", err)
	}
	return nil
}
