package cookiejar

import (
	"testing"
	"time"

	"github.com/wovenwire/wovenwire/internal/clock"
	"github.com/wovenwire/wovenwire/pkg/message"
)

type fakePSL struct {
	suffixes map[string]bool
}

func (f fakePSL) IsPublicSuffix(domain string) bool { return f.suffixes[domain] }

func mustURI(t *testing.T, raw string) message.Uri {
	t.Helper()
	u, err := message.ParseUri(raw)
	if err != nil {
		t.Fatalf("ParseUri(%q) error = %v", raw, err)
	}
	return u
}

func TestJarPutGetDomainAndPathMatching(t *testing.T) {
	fc := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	j := NewJar(fc, fakePSL{})

	aTarget := mustURI(t, "https://abc.com/")
	if err := j.Put(aTarget, SetCookie{Name: "a", Value: "1", Path: "/a"}); err != nil {
		t.Fatalf("Put(a) error = %v", err)
	}

	bTarget := mustURI(t, "https://ht.abc.com/")
	if err := j.Put(bTarget, SetCookie{Name: "b", Value: "2", Domain: "abc.com", Secure: true}); err != nil {
		t.Fatalf("Put(b) error = %v", err)
	}

	cTarget := mustURI(t, "https://us.abc.com/")
	if err := j.Put(cTarget, SetCookie{Name: "c", Value: "3", Path: "/c"}); err != nil {
		t.Fatalf("Put(c) error = %v", err)
	}

	got := j.Get(mustURI(t, "https://ht.abc.com/a/b/c"))
	if len(got) != 1 || got[0].Name != "b" {
		t.Fatalf("get(ht.abc.com/a/b/c) = %v, want [b] (a is host-only to abc.com, c is host-only to us.abc.com)", got)
	}

	got = j.Get(mustURI(t, "http://abc.com/a/b/c"))
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("get(http://abc.com/a/b/c) = %v, want [a] (b requires Secure, c is host-only elsewhere)", got)
	}
}

func TestJarPutSameKeyPreservesCreationAndLeavesSizeUnchanged(t *testing.T) {
	fc := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	j := NewJar(fc, fakePSL{})
	target := mustURI(t, "https://example.com/")

	if err := j.Put(target, SetCookie{Name: "s", Value: "1"}); err != nil {
		t.Fatal(err)
	}
	if j.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", j.Len())
	}

	fc.Advance(time.Hour)
	if err := j.Put(target, SetCookie{Name: "s", Value: "2"}); err != nil {
		t.Fatal(err)
	}
	if j.Len() != 1 {
		t.Fatalf("Len() after re-Put = %d, want 1 (same key)", j.Len())
	}

	got := j.Get(target)
	if len(got) != 1 || got[0].Value != "2" {
		t.Fatalf("Get() after re-Put = %v, want value overwritten to 2", got)
	}

	stored := j.cookies[cookieKey{name: "s", domain: "example.com", path: "/"}]
	if want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC); !stored.Creation.Equal(want) {
		t.Fatalf("Creation after re-Put = %v, want %v (first Put's time)", stored.Creation, want)
	}
}

func TestJarGetOmitsExpiredCookies(t *testing.T) {
	fc := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	j := NewJar(fc, fakePSL{})
	target := mustURI(t, "https://example.com/")

	if err := j.Put(target, SetCookie{Name: "s", Value: "1", MaxAge: 10, HasMaxAge: true}); err != nil {
		t.Fatal(err)
	}

	fc.Advance(20 * time.Second)
	if got := j.Get(target); len(got) != 0 {
		t.Fatalf("Get() after expiry = %v, want empty", got)
	}
}

func TestJarClearExpiredOnly(t *testing.T) {
	fc := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	j := NewJar(fc, fakePSL{})
	target := mustURI(t, "https://example.com/")

	if err := j.Put(target, SetCookie{Name: "expiring", Value: "1", MaxAge: 10, HasMaxAge: true}); err != nil {
		t.Fatal(err)
	}
	if err := j.Put(target, SetCookie{Name: "persistent", Value: "2", MaxAge: 3600, HasMaxAge: true}); err != nil {
		t.Fatal(err)
	}

	fc.Advance(20 * time.Second)
	j.Clear(true)
	if j.Len() != 1 {
		t.Fatalf("Len() after Clear(true) = %d, want 1", j.Len())
	}

	j.Clear(false)
	if j.Len() != 0 {
		t.Fatalf("Len() after Clear(false) = %d, want 0", j.Len())
	}
}

func TestJarRejectsPublicSuffixDomain(t *testing.T) {
	fc := clock.NewFixed(time.Now())
	j := NewJar(fc, fakePSL{suffixes: map[string]bool{"co.uk": true}})

	target := mustURI(t, "https://example.co.uk/")
	err := j.Put(target, SetCookie{Name: "s", Value: "1", Domain: "co.uk"})
	if err == nil {
		t.Fatal("Put() with public-suffix Domain = nil error, want rejection")
	}
}

func TestParseSetCookieAttributes(t *testing.T) {
	sc, ok := ParseSetCookie("id=abc123; Domain=example.com; Path=/app; Secure; HttpOnly; Max-Age=60")
	if !ok {
		t.Fatal("ParseSetCookie() ok = false")
	}
	if sc.Name != "id" || sc.Value != "abc123" || sc.Domain != "example.com" || sc.Path != "/app" {
		t.Fatalf("ParseSetCookie() = %+v", sc)
	}
	if !sc.Secure || !sc.HTTPOnly || !sc.HasMaxAge || sc.MaxAge != 60 {
		t.Fatalf("ParseSetCookie() flags = %+v", sc)
	}
}

func TestFormatCookieHeader(t *testing.T) {
	got := FormatCookieHeader([]PlainCookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}})
	want := "a=1; b=2"
	if got != want {
		t.Errorf("FormatCookieHeader() = %q, want %q", got, want)
	}
}
