package textvalue

import (
	"errors"
	"testing"

	"github.com/danmuck/stellartoml/internal/testutil/testlog"
)

func TestParseURIRoundTrip(t *testing.T) {
	testlog.Start(t)
	for _, in := range []string{
		"https://history.example.org/",
		"https://api.example.org/sep24",
		"http://127.0.0.1:8000/auth?x=1",
	} {
		u, err := ParseURI(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		out, err := Format(u)
		if err != nil {
			t.Fatalf("format %q: %v", in, err)
		}
		if out != in {
			t.Fatalf("round trip mismatch: in=%q out=%q", in, out)
		}
	}
}

func TestParseURIRejectsMalformed(t *testing.T) {
	testlog.Start(t)
	cases := map[string]error{
		"":                      ErrEmpty,
		"example.org/path":      ErrRelativeURI,
		"/just/a/path":          ErrRelativeURI,
		"https://exa mple.org/": ErrURISpace,
	}
	for in, want := range cases {
		_, err := ParseURI(in)
		if err == nil {
			t.Fatalf("expected error for %q", in)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ParseError for %q, got %T", in, err)
		}
		if pe.Input != in {
			t.Fatalf("unexpected input on error: %q", pe.Input)
		}
		if !errors.Is(err, want) {
			t.Fatalf("parse %q: got %v want %v", in, err, want)
		}
	}

	if _, err := ParseURI("https://%zz"); err == nil {
		t.Fatalf("expected url syntax error")
	}
}

func TestParseOptionalSkipsAbsent(t *testing.T) {
	testlog.Start(t)
	got, err := ParseOptional[URI](nil)
	if err != nil || got != nil {
		t.Fatalf("absent: got=%v err=%v", got, err)
	}

	s := "https://example.org/"
	got, err = ParseOptional[URI](&s)
	if err != nil || got == nil || got.String() != s {
		t.Fatalf("present: got=%v err=%v", got, err)
	}

	empty := ""
	if _, err := ParseOptional[URI](&empty); !errors.Is(err, ErrEmpty) {
		t.Fatalf("present but empty: expected ErrEmpty, got %v", err)
	}
}

func TestURIAccessors(t *testing.T) {
	testlog.Start(t)
	u := MustParseURI("https://core.example.org:11626/info")
	if u.Scheme() != "https" || u.Host() != "core.example.org:11626" {
		t.Fatalf("unexpected parts: scheme=%q host=%q", u.Scheme(), u.Host())
	}
	cp := u.URL()
	cp.Path = "/changed"
	if u.String() != "https://core.example.org:11626/info" {
		t.Fatalf("URL copy leaked mutation: %s", u.String())
	}
}
