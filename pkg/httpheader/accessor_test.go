package httpheader

import (
	"testing"

	"github.com/wovenwire/wovenwire/pkg/header"
	"github.com/wovenwire/wovenwire/pkg/message"
)

func TestContentTypeAccessors(t *testing.T) {
	req := message.NewRequest("POST", "/", message.HTTP11)

	if HasContentType(req) {
		t.Fatal("HasContentType() on empty request = true, want false")
	}
	if _, err := ContentType(req); err != ErrHeaderNotFound {
		t.Fatalf("ContentType() error = %v, want ErrHeaderNotFound", err)
	}

	mt := header.MediaType{Type: "application", Subtype: "json"}
	req = WithContentType(req, mt)

	if !HasContentType(req) {
		t.Fatal("HasContentType() after WithContentType = false, want true")
	}
	got, err := ContentType(req)
	if err != nil {
		t.Fatalf("ContentType() error = %v", err)
	}
	if got.Full() != "application/json" {
		t.Errorf("ContentType() = %q, want application/json", got.Full())
	}

	req = WithoutContentType(req)
	if HasContentType(req) {
		t.Fatal("HasContentType() after WithoutContentType = true, want false")
	}
}

func TestContentLengthAccessors(t *testing.T) {
	resp := message.NewResponse(200, "OK", message.HTTP11)
	resp = WithContentLength(resp, 42)

	n, ok := ContentLengthOption(resp)
	if !ok || n != 42 {
		t.Fatalf("ContentLengthOption() = (%d, %v), want (42, true)", n, ok)
	}
}

func TestCacheControlRoundTrip(t *testing.T) {
	resp := message.NewResponse(200, "OK", message.HTTP11)
	resp = WithCacheControl(resp,
		header.CacheDirective{Name: "max-age", Value: "3600", HasValue: true},
		header.CacheDirective{Name: "no-transform"},
	)

	directives, ok := CacheControlOption(resp)
	if !ok {
		t.Fatal("CacheControlOption() ok = false, want true")
	}
	if len(directives) != 2 {
		t.Fatalf("len(directives) = %d, want 2", len(directives))
	}
	if directives[0].Name != "max-age" || directives[0].Value != "3600" {
		t.Errorf("directives[0] = %+v, want max-age=3600", directives[0])
	}
}

func TestRangeAccessors(t *testing.T) {
	req := message.NewRequest("GET", "/file", message.HTTP11)
	req = WithRange(req, header.ByteRange{First: 0, Last: 499})

	rng, err := Range(req)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(rng) != 1 || rng[0].First != 0 || rng[0].Last != 499 {
		t.Errorf("Range() = %+v", rng)
	}
}

func TestCookieAccessorsStayRaw(t *testing.T) {
	req := message.NewRequest("GET", "/", message.HTTP11)
	req = WithCookie(req, "a=1; b=2")

	v, ok := CookieOption(req)
	if !ok || v != "a=1; b=2" {
		t.Fatalf("CookieOption() = (%q, %v)", v, ok)
	}

	resp := message.NewResponse(200, "OK", message.HTTP11)
	resp = WithAddedSetCookie(resp, "a=1")
	resp = WithAddedSetCookie(resp, "b=2")

	values, err := SetCookie(resp)
	if err != nil {
		t.Fatalf("SetCookie() error = %v", err)
	}
	if len(values) != 2 || values[0] != "a=1" || values[1] != "b=2" {
		t.Errorf("SetCookie() = %v, want [a=1 b=2]", values)
	}
}

func TestWebSocketKeyAndVersionAccessors(t *testing.T) {
	req := message.NewRequest("GET", "/", message.HTTP11)
	req = WithSecWebSocketKey(req, "dGhlIHNhbXBsZSBub25jZQ==")
	req = WithSecWebSocketVersion(req, "13")

	key, ok := SecWebSocketKeyOption(req)
	if !ok || key != "dGhlIHNhbXBsZSBub25jZQ==" {
		t.Fatalf("SecWebSocketKeyOption() = (%q, %v)", key, ok)
	}
	version, ok := SecWebSocketVersionOption(req)
	if !ok || version != "13" {
		t.Fatalf("SecWebSocketVersionOption() = (%q, %v)", version, ok)
	}
}

func TestGenericAccessorsWorkOnBothMessageTypes(t *testing.T) {
	req := message.NewRequest("GET", "/", message.HTTP11)
	resp := message.NewResponse(200, "OK", message.HTTP11)

	req = WithHost(req, "example.com")
	resp = WithServer(resp, "wovend/1")

	if v, ok := HostOption(req); !ok || v != "example.com" {
		t.Errorf("HostOption(req) = (%q, %v)", v, ok)
	}
	if v, ok := ServerOption(resp); !ok || v != "wovend/1" {
		t.Errorf("ServerOption(resp) = (%q, %v)", v, ok)
	}
}
