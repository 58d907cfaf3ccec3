package httpwire

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/header"
	"github.com/wovenwire/wovenwire/pkg/message"
)

// DefaultMaxHeaderBytes is the default cap on a single header line and on
// the cumulative header block, per spec.md §4.1's configurable limit.
const DefaultMaxHeaderBytes = 8 * 1024

// ReaderOpt configures a [Reader] at construction time.
type ReaderOpt func(*Reader)

// WithMaxHeaderBytes overrides [DefaultMaxHeaderBytes].
func WithMaxHeaderBytes(n int) ReaderOpt {
	return func(r *Reader) { r.maxHeaderBytes = n }
}

// Reader parses one [message.Request] or [message.Response] at a time off
// a byte stream, per spec.md §4.1. Callers must fully drain (or discard)
// a message's body before reading the next message off the same Reader,
// since the body may still be unconsumed bytes on the wire.
type Reader struct {
	br             *bufio.Reader
	maxHeaderBytes int
}

// NewReader wraps r as a [Reader] with [DefaultMaxHeaderBytes].
func NewReader(r io.Reader, opts ...ReaderOpt) *Reader {
	rd := &Reader{br: bufio.NewReader(r), maxHeaderBytes: DefaultMaxHeaderBytes}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// ReadRequest parses one request's start line and header block, and
// constructs its body as a lazily-opened [message.Entity] per the body
// framing rules in spec.md §4.1 step 3. It returns an error wrapping
// [io.EOF] if the stream ended cleanly before any bytes of a new message
// were read (e.g. a persistent connection the client closed between
// requests).
func (r *Reader) ReadRequest() (message.Request, error) {
	line, err := r.readLine()
	if err != nil {
		return message.Request{}, err
	}

	method, target, version, err := parseRequestLine(line)
	if err != nil {
		return message.Request{}, err
	}

	hdrs, err := r.readHeaderBlock()
	if err != nil {
		return message.Request{}, err
	}

	f, err := determineBodyFraming(hdrs, true, 0, "")
	if err != nil {
		return message.Request{}, err
	}

	tb := &trailerBox{}
	req := message.Request{Method: method, Target: target, Version: version, Headers: hdrs}
	req = req.WithBody(r.makeBodyEntity(f, tb))
	req = req.WithAttr(trailerAttrKey, tb)
	req = req.WithAttr(codingsAttrKey, f.codings)
	return req, nil
}

// ReadResponse is the response analogue of [ReadRequest]. reqMethod is the
// method of the request this response answers, since body framing for
// statuses like 204/304 and methods like HEAD depends on it (spec.md
// §4.1 step 3).
func (r *Reader) ReadResponse(reqMethod string) (message.Response, error) {
	line, err := r.readLine()
	if err != nil {
		return message.Response{}, err
	}

	version, statusCode, reason, err := parseStatusLine(line)
	if err != nil {
		return message.Response{}, err
	}

	hdrs, err := r.readHeaderBlock()
	if err != nil {
		return message.Response{}, err
	}

	f, err := determineBodyFraming(hdrs, false, statusCode, reqMethod)
	if err != nil {
		return message.Response{}, err
	}

	tb := &trailerBox{}
	resp := message.Response{StatusCode: statusCode, Reason: reason, Version: version, Headers: hdrs}
	resp = resp.WithBody(r.makeBodyEntity(f, tb))
	resp = resp.WithAttr(trailerAttrKey, tb)
	resp = resp.WithAttr(codingsAttrKey, f.codings)
	return resp, nil
}

func parseRequestLine(line string) (method, target string, version message.Version, err error) {
	if line == "" {
		return "", "", "", newError(MalformedStartLine, "empty request line", nil)
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return "", "", "", newError(MalformedStartLine, "expected method, target, and version", nil)
	}
	method, target, versionStr := parts[0], parts[1], parts[2]
	if !grammar.IsToken(method) {
		return "", "", "", newError(MalformedStartLine, "invalid method token", nil)
	}
	if target == "" {
		return "", "", "", newError(MalformedStartLine, "empty request target", nil)
	}
	v, ok := parseVersion(versionStr)
	if !ok {
		return "", "", "", newError(MalformedStartLine, "unsupported HTTP version", nil)
	}
	return method, target, v, nil
}

func parseStatusLine(line string) (version message.Version, statusCode int, reason string, err error) {
	if line == "" {
		return "", 0, "", newError(MalformedStartLine, "empty status line", nil)
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return "", 0, "", newError(MalformedStartLine, "expected version and status code", nil)
	}
	v, ok := parseVersion(parts[0])
	if !ok {
		return "", 0, "", newError(MalformedStartLine, "unsupported HTTP version", nil)
	}
	code, convErr := strconv.Atoi(parts[1])
	if convErr != nil || code < 100 || code > 599 {
		return "", 0, "", newError(MalformedStartLine, "invalid status code", nil)
	}
	if len(parts) == 3 {
		reason = parts[2]
	}
	return v, code, reason, nil
}

func parseVersion(s string) (message.Version, bool) {
	switch s {
	case string(message.HTTP11):
		return message.HTTP11, true
	case string(message.HTTP10):
		return message.HTTP10, true
	default:
		return "", false
	}
}

// readLine reads one CRLF- (or bare LF-) terminated line, stripped of its
// terminator, enforcing maxHeaderBytes as a per-line cap.
func (r *Reader) readLine() (string, error) {
	var buf []byte
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if len(buf) == 0 {
				return "", newError(IoError, "connection closed", err)
			}
			return "", newError(Truncated, "connection closed mid-line", err)
		}
		if b == '\n' {
			break
		}
		buf = append(buf, b)
		if len(buf) > r.maxHeaderBytes {
			return "", newError(HeaderLimitExceeded, "line exceeds configured maximum", nil)
		}
	}
	if n := len(buf); n > 0 && buf[n-1] == '\r' {
		buf = buf[:n-1]
	}
	return string(buf), nil
}

// readHeaderBlock reads header lines up to the terminating empty line,
// unfolding obs-fold continuations (a line starting with SP/HTAB extends
// the previous header's value, per RFC 7230 §3.2.4) and enforcing
// maxHeaderBytes as a cumulative cap over the whole block.
func (r *Reader) readHeaderBlock() (header.List, error) {
	var hdrs header.List
	total := 0
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return hdrs, nil
		}

		total += len(line)
		if total > r.maxHeaderBytes {
			return nil, newError(HeaderLimitExceeded, "header block exceeds configured maximum", nil)
		}

		if line[0] == ' ' || line[0] == '\t' {
			if len(hdrs) == 0 {
				return nil, newError(MalformedHeader, "obs-fold continuation before any header", nil)
			}
			hdrs[len(hdrs)-1].Value += " " + grammar.TrimOWS(line)
			continue
		}

		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			return nil, newError(MalformedHeader, "header line missing colon", nil)
		}
		name := line[:colon]
		if strings.TrimSpace(name) != name {
			return nil, newError(MalformedHeader, "whitespace before colon in header name", nil)
		}
		if !grammar.IsToken(name) {
			return nil, newError(MalformedHeader, "invalid header field name", nil)
		}
		value := grammar.TrimOWS(line[colon+1:])
		if !grammar.IsFieldValue(value) {
			return nil, newError(MalformedHeader, "invalid header field value", nil)
		}
		hdrs = append(hdrs, header.Header{Name: name, Value: value})
	}
}

type framingKind int

const (
	framingEmpty framingKind = iota
	framingFixed
	framingChunked
	framingEOF
)

// framing is the outcome of applying spec.md §4.1 step 3's body-framing
// priority (chunked, then Content-Length, then empty/EOF by method or
// status) to a parsed header block.
type framing struct {
	kind    framingKind
	length  uint64
	codings []string // non-"chunked" Transfer-Encoding codings, in the order applied (innermost first).
}

func determineBodyFraming(hdrs header.List, isRequest bool, statusCode int, reqMethod string) (framing, error) {
	if te, ok := hdrs.Get("Transfer-Encoding"); ok {
		var codings []string
		for _, part := range strings.Split(te, ",") {
			if c := strings.TrimSpace(part); c != "" {
				codings = append(codings, c)
			}
		}
		if len(codings) == 0 || !strings.EqualFold(codings[len(codings)-1], "chunked") {
			return framing{}, newError(MalformedMessage, "Transfer-Encoding present without a final chunked coding", nil)
		}
		return framing{kind: framingChunked, codings: codings[:len(codings)-1]}, nil
	}

	if cls := hdrs.GetAll("Content-Length"); len(cls) > 0 {
		length, err := parseContentLengths(cls)
		if err != nil {
			return framing{}, err
		}
		return framing{kind: framingFixed, length: length}, nil
	}

	if isRequest {
		return framing{kind: framingEmpty}, nil
	}
	if noResponseBody(statusCode, reqMethod) {
		return framing{kind: framingEmpty}, nil
	}
	return framing{kind: framingEOF}, nil
}

func noResponseBody(statusCode int, reqMethod string) bool {
	if statusCode >= 100 && statusCode < 200 {
		return true
	}
	switch statusCode {
	case 204, 304:
		return true
	}
	switch reqMethod {
	case "HEAD", "CONNECT":
		return true
	}
	return false
}

func parseContentLengths(values []string) (uint64, error) {
	var length uint64
	seen := false
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return 0, newError(MalformedMessage, "invalid Content-Length value", err)
			}
			if !seen {
				length, seen = n, true
			} else if n != length {
				return 0, newError(MalformedMessage, "conflicting Content-Length values", nil)
			}
		}
	}
	return length, nil
}

func (r *Reader) makeBodyEntity(f framing, tb *trailerBox) *message.Entity {
	switch f.kind {
	case framingEmpty:
		return message.EmptyEntity()
	case framingFixed:
		length := f.length
		if length == 0 {
			return message.EmptyEntity()
		}
		return message.NewEntity(func() (io.ReadCloser, error) {
			return io.NopCloser(io.LimitReader(r.br, int64(length))), nil
		}, &length)
	case framingChunked:
		return message.NewEntity(func() (io.ReadCloser, error) {
			return newChunkedReader(r, tb), nil
		}, nil)
	default: // framingEOF
		return message.NewEntity(func() (io.ReadCloser, error) {
			return io.NopCloser(r.br), nil
		}, nil)
	}
}
