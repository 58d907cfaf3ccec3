package header

import "testing"

func TestMediaTypeRoundTrip(t *testing.T) {
	tests := []string{
		"text/plain",
		"text/plain; charset=utf-8",
		"multipart/form-data; boundary=----MultipartBoundary_abc",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			mt, ok := ParseMediaType(in)
			if !ok {
				t.Fatalf("ParseMediaType(%q) failed", in)
			}
			if got := mt.Format(); got != in {
				t.Errorf("Format() = %q, want %q", got, in)
			}
		})
	}
}

func TestMediaTypeCharsetDefault(t *testing.T) {
	mt, ok := ParseMediaType("text/plain")
	if !ok {
		t.Fatal("parse failed")
	}
	if got := mt.Charset(); got != "utf-8" {
		t.Errorf("Charset() = %q, want utf-8", got)
	}
}

func TestParseMediaTypeInvalid(t *testing.T) {
	if _, ok := ParseMediaType("not-a-media-type"); ok {
		t.Error("expected parse failure")
	}
}
