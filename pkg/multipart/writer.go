package multipart

import (
	"io"

	"github.com/wovenwire/wovenwire/pkg/header"
)

// Writer serializes a sequence of [Part]s to the RFC 7578 wire format
// with a fixed boundary, per spec.md §4.4's writer rule.
type Writer struct {
	w        io.Writer
	boundary string
}

// NewWriter returns a [Writer] that emits parts delimited by boundary.
func NewWriter(w io.Writer, boundary string) *Writer {
	return &Writer{w: w, boundary: boundary}
}

// Boundary returns the boundary this writer was constructed with.
func (w *Writer) Boundary() string { return w.boundary }

// WritePart emits one part: "--B", its headers, a blank line, the payload,
// and a trailing CRLF.
func (w *Writer) WritePart(p Part) error {
	if _, err := io.WriteString(w.w, "--"+w.boundary+"\r\n"); err != nil {
		return newError(IoError, "writing part delimiter", err)
	}

	headerBlock := "Content-Disposition: " + p.Disposition.Format() + "\r\n"
	if p.HasContentType || !isDefaultTextPlain(p.ContentType) {
		headerBlock += "Content-Type: " + p.ContentType.Format() + "\r\n"
	}
	headerBlock += "\r\n"
	if _, err := io.WriteString(w.w, headerBlock); err != nil {
		return newError(IoError, "writing part headers", err)
	}

	if _, err := w.w.Write(p.Data); err != nil {
		return newError(IoError, "writing part payload", err)
	}
	if _, err := io.WriteString(w.w, "\r\n"); err != nil {
		return newError(IoError, "writing part trailer", err)
	}
	return nil
}

// Close writes the closing "--B--" delimiter. No further parts may be
// written afterward.
func (w *Writer) Close() error {
	if _, err := io.WriteString(w.w, "--"+w.boundary+"--\r\n"); err != nil {
		return newError(IoError, "writing closing delimiter", err)
	}
	return nil
}

func isDefaultTextPlain(mt header.MediaType) bool {
	return mt.Type == "text" && mt.Subtype == "plain" && len(mt.Params) == 0
}
