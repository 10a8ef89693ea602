package resolve

import (
	"errors"
	"testing"

	"github.com/danmuck/stellartoml/internal/testutil/testlog"
)

func TestSecureAddress(t *testing.T) {
	testlog.Start(t)
	u, err := SecureAddress("foo.bar.example.org")
	if err != nil {
		t.Fatalf("secure address: %v", err)
	}
	if u.String() != "https://foo.bar.example.org/.well-known/stellar.toml" {
		t.Fatalf("unexpected address: %s", u)
	}
}

func TestInsecureAddress(t *testing.T) {
	testlog.Start(t)
	u, err := InsecureAddress("foo.bar.example.org")
	if err != nil {
		t.Fatalf("insecure address: %v", err)
	}
	if u.String() != "http://foo.bar.example.org/.well-known/stellar.toml" {
		t.Fatalf("unexpected address: %s", u)
	}
}

func TestAddressAcceptsPortsAndIPs(t *testing.T) {
	testlog.Start(t)
	for _, domain := range []string{"127.0.0.1:8000", "[::1]:443", "anchor_test.example.org"} {
		if _, err := SecureAddress(domain); err != nil {
			t.Fatalf("domain %q: %v", domain, err)
		}
	}
}

func TestAddressRejectsMalformedDomains(t *testing.T) {
	testlog.Start(t)
	for _, domain := range []string{
		"",
		"foo bar.org",
		"example.org/evil",
		"user@example.org",
		"example.org?x=1",
		"exa<mple.org",
		"example.org:port",
		"exämple.org",
	} {
		_, err := SecureAddress(domain)
		if !errors.Is(err, ErrAddress) {
			t.Fatalf("domain %q: expected ErrAddress, got %v", domain, err)
		}
		if KindOf(err) != KindAddress {
			t.Fatalf("domain %q: unexpected kind %v", domain, KindOf(err))
		}
		var re *Error
		if !errors.As(err, &re) || re.Retryable() {
			t.Fatalf("domain %q: address errors are not retryable", domain)
		}
	}
}

func TestParseAddress(t *testing.T) {
	testlog.Start(t)
	if _, err := parseAddress("https://example.org/custom/stellar.toml"); err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, bad := range []string{"ftp://example.org/x", "https:///nohost", "://bad"} {
		if _, err := parseAddress(bad); !errors.Is(err, ErrAddress) {
			t.Fatalf("%q: expected ErrAddress, got %v", bad, err)
		}
	}
}
