package message

import "testing"

func TestParseUri(t *testing.T) {
	u, err := ParseUri("https://Example.com:8443/a/b?x=1&x=2#frag")
	if err != nil {
		t.Fatalf("ParseUri() error = %v", err)
	}
	if u.Scheme != "https" || u.Host != "example.com" || u.Port != "8443" || u.Path != "/a/b" {
		t.Errorf("ParseUri() = %+v", u)
	}
	if u.Fragment != "frag" {
		t.Errorf("Fragment = %q", u.Fragment)
	}

	q := u.Query()
	if got := q.Values("x"); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("Query().Values(x) = %v", got)
	}
}

func TestUriIsIPLiteral(t *testing.T) {
	u, err := ParseUri("http://127.0.0.1/")
	if err != nil {
		t.Fatal(err)
	}
	if !u.IsIPLiteral() {
		t.Error("expected IP literal")
	}

	u2, err := ParseUri("http://example.com/")
	if err != nil {
		t.Fatal(err)
	}
	if u2.IsIPLiteral() {
		t.Error("expected non-IP literal")
	}
}

func TestUriStringRoundTrip(t *testing.T) {
	in := "https://example.com/a?b=1"
	u, err := ParseUri(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := u.String(); got != in {
		t.Errorf("String() = %q, want %q", got, in)
	}
}
