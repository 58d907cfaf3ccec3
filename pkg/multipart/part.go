package multipart

import (
	"os"

	"github.com/wovenwire/wovenwire/pkg/grammar"
	"github.com/wovenwire/wovenwire/pkg/header"
)

// Part is a single multipart/form-data part to write, or a source for one
// to be constructed via a convenience constructor.
type Part struct {
	Disposition    header.Disposition
	ContentType    header.MediaType
	HasContentType bool // whether a Content-Type line is emitted at all.
	Data           []byte
}

// NewFieldPart builds a plain text/plain form field (spec.md §4.4's
// writer rule: the Content-Type line is omitted for "text/plain" with no
// parameters).
func NewFieldPart(name, value string) Part {
	return Part{
		Disposition: formDataDisposition(name, ""),
		ContentType: header.MediaType{Type: "text", Subtype: "plain"},
		Data:        []byte(value),
	}
}

// NewFilePart builds a file form field. An empty contentType defaults to
// "application/octet-stream".
func NewFilePart(name, filename string, contentType header.MediaType, data []byte) Part {
	if contentType.Type == "" {
		contentType = header.MediaType{Type: "application", Subtype: "octet-stream"}
	}
	return Part{
		Disposition:    formDataDisposition(name, filename),
		ContentType:    contentType,
		HasContentType: true,
		Data:           data,
	}
}

func formDataDisposition(name, filename string) header.Disposition {
	params := grammar.ParamList{{Name: "name", Value: name}}
	if filename != "" {
		params = append(params, grammar.Param{Name: "filename", Value: filename})
	}
	return header.Disposition{Kind: "form-data", Name: name, Params: params}
}

// ReadPart is a single part as produced by [Reader.Next]: text parts are
// held in Data; non-text parts are spooled to File via the reader's
// [tempstore.Store] collaborator and Data is nil.
type ReadPart struct {
	Disposition header.Disposition
	ContentType header.MediaType
	Data        []byte
	File        *os.File
}

// IsText reports whether p was decoded in memory (ContentType's top-level
// type is "text") rather than spooled to disk.
func (p ReadPart) IsText() bool { return p.File == nil }
