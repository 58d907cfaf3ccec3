package multipart

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/wovenwire/wovenwire/internal/randsrc"
	"github.com/wovenwire/wovenwire/pkg/header"
)

type memStore struct {
	dir string
}

func (m memStore) CreateTempFile(prefix, suffix string) (*os.File, error) {
	return os.CreateTemp(m.dir, prefix+"*"+suffix)
}

func TestWriterReaderRoundTrip(t *testing.T) {
	boundary := GenerateBoundary(randsrc.NewFake([]byte{1, 2, 3, 4}))

	binary := make([]byte, 1024)
	for i := range binary {
		binary[i] = byte((i * 7) % 200) // includes bare \n (10, e.g. i=30) and \r (13, e.g. i=59) bytes.
	}

	var buf bytes.Buffer
	w := NewWriter(&buf, boundary)
	if err := w.WritePart(NewFieldPart("greeting", "hello")); err != nil {
		t.Fatalf("WritePart(greeting) error = %v", err)
	}
	if err := w.WritePart(NewFilePart("file", "", header.MediaType{}, binary)); err != nil {
		t.Fatalf("WritePart(file) error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r := NewReader(&buf, boundary, memStore{dir: t.TempDir()})

	p1, err := r.Next()
	if err != nil {
		t.Fatalf("Next() #1 error = %v", err)
	}
	if p1.Disposition.Name != "greeting" || string(p1.Data) != "hello" {
		t.Fatalf("part 1 = %+v, data %q", p1.Disposition, p1.Data)
	}
	if p1.ContentType.Full() != "text/plain" {
		t.Errorf("part 1 content type = %q, want text/plain", p1.ContentType.Full())
	}

	p2, err := r.Next()
	if err != nil {
		t.Fatalf("Next() #2 error = %v", err)
	}
	if p2.Disposition.Name != "file" {
		t.Fatalf("part 2 disposition = %+v", p2.Disposition)
	}
	if p2.ContentType.Full() != "application/octet-stream" {
		t.Errorf("part 2 content type = %q, want application/octet-stream", p2.ContentType.Full())
	}
	if p2.File == nil {
		t.Fatal("part 2 File = nil, want spooled temp file")
	}
	got, err := io.ReadAll(p2.File)
	if err != nil {
		t.Fatalf("reading spooled file: %v", err)
	}
	if !bytes.Equal(got, binary) {
		t.Fatalf("spooled file content mismatch: len(got)=%d len(want)=%d", len(got), len(binary))
	}

	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next() after last part error = %v, want io.EOF", err)
	}
}

func TestReaderRejectsMissingDisposition(t *testing.T) {
	boundary := "B"
	body := "--B\r\nContent-Type: text/plain\r\n\r\nhi\r\n--B--\r\n"
	r := NewReader(bytes.NewBufferString(body), boundary, memStore{dir: t.TempDir()})
	if _, err := r.Next(); err == nil {
		t.Fatal("Next() with missing Content-Disposition = nil error, want MalformedPart")
	}
}

func TestReaderEnforcesMaxLength(t *testing.T) {
	boundary := "B"
	body := "--B\r\nContent-Disposition: form-data; name=\"f\"\r\n\r\n" +
		"0123456789\r\n--B--\r\n"
	r := NewReader(bytes.NewBufferString(body), boundary, memStore{dir: t.TempDir()}, WithMaxLength(5))
	if _, err := r.Next(); err == nil {
		t.Fatal("Next() exceeding max length = nil error, want BodyTooLarge")
	}
}

func TestReaderEmptyMultipart(t *testing.T) {
	boundary := "B"
	body := "--B--\r\n"
	r := NewReader(bytes.NewBufferString(body), boundary, memStore{dir: t.TempDir()})
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next() on empty multipart error = %v, want io.EOF", err)
	}
}
