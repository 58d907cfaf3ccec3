package multipart

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/wovenwire/wovenwire/internal/tempstore"
	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/header"
)

// ReaderOpt configures a [Reader].
type ReaderOpt func(*Reader)

// WithMaxLength caps the total payload bytes (across all parts) the
// reader will accept before failing with [BodyTooLarge], per spec.md
// §4.4's max_length enforcement. 0 (the default) means unlimited.
func WithMaxLength(n int64) ReaderOpt {
	return func(r *Reader) { r.maxLength = n }
}

// Reader parses an RFC 7578 multipart/form-data body, spooling non-text
// parts to disk through store.
type Reader struct {
	br        *bufio.Reader
	boundary  string
	store     tempstore.Store
	maxLength int64
	total     int64
	started   bool
	done      bool
}

// NewReader returns a [Reader] over r, splitting on boundary (without its
// leading "--") and spooling non-text parts via store.
func NewReader(r io.Reader, boundary string, store tempstore.Store, opts ...ReaderOpt) *Reader {
	reader := &Reader{
		br:       bufio.NewReader(r),
		boundary: boundary,
		store:    store,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Next parses and returns the next part, or io.EOF once the closing
// delimiter has been read.
func (r *Reader) Next() (ReadPart, error) {
	if r.done {
		return ReadPart{}, io.EOF
	}

	if !r.started {
		r.started = true
		line, err := r.readLine()
		if err != nil {
			return ReadPart{}, err
		}
		switch line {
		case "--" + r.boundary:
			// First part begins.
		case "--" + r.boundary + "--":
			r.done = true
			return ReadPart{}, io.EOF
		default:
			return ReadPart{}, newError(MalformedPart, fmt.Sprintf("expected opening boundary, got %q", line), nil)
		}
	}

	hdrs, err := r.readHeaderBlock()
	if err != nil {
		return ReadPart{}, err
	}

	disp, ct, err := partHeaders(hdrs)
	if err != nil {
		return ReadPart{}, err
	}

	part := ReadPart{Disposition: disp, ContentType: ct}
	if isTextType(ct) {
		data, terminal, err := r.readTextPayload(ct)
		if err != nil {
			return ReadPart{}, err
		}
		part.Data = data
		r.done = terminal
		return part, nil
	}

	f, terminal, err := r.readSpooledPayload()
	if err != nil {
		return ReadPart{}, err
	}
	part.File = f
	r.done = terminal
	return part, nil
}

func partHeaders(hdrs header.List) (header.Disposition, header.MediaType, error) {
	dispValue, ok := hdrs.Get("Content-Disposition")
	if !ok {
		return header.Disposition{}, header.MediaType{}, newError(MalformedPart, "part missing Content-Disposition", nil)
	}
	disp, ok := header.ParseDisposition(dispValue)
	if !ok || disp.Kind != "form-data" || disp.Name == "" {
		return header.Disposition{}, header.MediaType{}, newError(MalformedPart, "Content-Disposition must be form-data with a name parameter", nil)
	}

	ct := header.MediaType{Type: "text", Subtype: "plain"}
	if ctValue, ok := hdrs.Get("Content-Type"); ok {
		parsed, ok := header.ParseMediaType(ctValue)
		if !ok {
			return header.Disposition{}, header.MediaType{}, newError(MalformedPart, fmt.Sprintf("malformed Content-Type: %q", ctValue), nil)
		}
		ct = parsed
	}
	return disp, ct, nil
}

func isTextType(ct header.MediaType) bool { return ct.Type == "text" }

// readTextPayload reads raw payload lines until the boundary, decodes them
// from the part's declared charset, and reports whether the boundary read
// was the closing one.
func (r *Reader) readTextPayload(ct header.MediaType) ([]byte, bool, error) {
	var buf []byte
	first := true
	for {
		line, terminal, isDelim, err := r.readPayloadLine()
		if err != nil {
			return nil, false, err
		}
		if isDelim {
			decoded, err := decodeCharset(buf, ct.Charset())
			if err != nil {
				return nil, false, err
			}
			return decoded, terminal, nil
		}
		if !first {
			buf = append(buf, '\r', '\n')
		}
		buf = append(buf, line...)
		first = false
	}
}

// readSpooledPayload streams payload lines to a temp file, then truncates
// the trailing CRLF spec.md §4.4 says to strip, since a streamed write
// can't retroactively omit it the way an in-memory buffer can.
func (r *Reader) readSpooledPayload() (*os.File, bool, error) {
	f, err := r.store.CreateTempFile("wovenwire-multipart-", ".part")
	if err != nil {
		return nil, false, newError(IoError, "creating spool file", err)
	}

	var size int64
	for {
		line, terminal, isDelim, err := r.readPayloadLine()
		if err != nil {
			f.Close()
			return nil, false, err
		}
		if isDelim {
			if size >= 2 {
				if err := f.Truncate(size - 2); err != nil {
					f.Close()
					return nil, false, newError(IoError, "truncating spool file", err)
				}
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				f.Close()
				return nil, false, newError(IoError, "rewinding spool file", err)
			}
			return f, terminal, nil
		}

		n, err := f.Write(append(line, '\r', '\n'))
		if err != nil {
			f.Close()
			return nil, false, newError(IoError, "writing spool file", err)
		}
		size += int64(n)
	}
}

// readPayloadLine reads one line, classifying it against the boundary.
func (r *Reader) readPayloadLine() (line []byte, terminal, isDelim bool, err error) {
	s, err := r.readLine()
	if err != nil {
		return nil, false, false, err
	}
	switch s {
	case "--" + r.boundary:
		return nil, false, true, nil
	case "--" + r.boundary + "--":
		return nil, true, true, nil
	default:
		r.total += int64(len(s))
		if r.maxLength > 0 && r.total > r.maxLength {
			return nil, false, false, newError(BodyTooLarge, "multipart body exceeds configured maximum", nil)
		}
		return []byte(s), false, false, nil
	}
}

func decodeCharset(raw []byte, charset string) ([]byte, error) {
	if strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "us-ascii") {
		return raw, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, newError(MalformedPart, fmt.Sprintf("unknown charset %q", charset), err)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, newError(MalformedPart, fmt.Sprintf("decoding charset %q", charset), err)
	}
	return decoded, nil
}

func (r *Reader) readLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return "", newError(Truncated, "stream ended mid-line", nil)
		}
		return "", newError(IoError, "reading multipart stream", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (r *Reader) readHeaderBlock() (header.List, error) {
	var hdrs header.List
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			return hdrs, nil
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(hdrs) == 0 {
				return nil, newError(MalformedPart, "obs-fold continuation before any header", nil)
			}
			hdrs[len(hdrs)-1].Value += " " + grammar.TrimOWS(line)
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			return nil, newError(MalformedPart, "header line missing colon", nil)
		}
		name := line[:colon]
		if !grammar.IsToken(name) {
			return nil, newError(MalformedPart, "invalid header field name", nil)
		}
		value := grammar.TrimOWS(line[colon+1:])
		hdrs = append(hdrs, header.Header{Name: name, Value: value})
	}
}
