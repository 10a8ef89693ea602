package resolve

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// WellKnownPath is where the document is published on a domain.
const WellKnownPath = "/.well-known/stellar.toml"

// SecureAddress returns https://<domain>/.well-known/stellar.toml.
func SecureAddress(domain string) (*url.URL, error) {
	return buildAddress("https", domain)
}

// InsecureAddress returns the http:// form of SecureAddress. Plain http
// should not be used in production.
func InsecureAddress(domain string) (*url.URL, error) {
	return buildAddress("http", domain)
}

func buildAddress(scheme, domain string) (*url.URL, error) {
	if domain == "" {
		return nil, &Error{Kind: KindAddress, Err: fmt.Errorf("empty domain")}
	}
	if i := strings.IndexFunc(domain, invalidDomainRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(domain[i:])
		return nil, &Error{Kind: KindAddress, Err: fmt.Errorf("invalid character %q in domain %q", r, domain)}
	}
	raw := scheme + "://" + domain + WellKnownPath
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &Error{Kind: KindAddress, Err: err}
	}
	if u.Host != domain {
		return nil, &Error{Kind: KindAddress, Err: fmt.Errorf("domain %q does not form a host", domain)}
	}
	return u, nil
}

// invalidDomainRune admits host names, IPv4, bracketed IPv6, and a port.
func invalidDomainRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '-', r == '.', r == '_', r == ':', r == '[', r == ']':
		return false
	default:
		return true
	}
}

// parseAddress validates an explicit document address.
func parseAddress(address string) (*url.URL, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, &Error{Kind: KindAddress, Address: address, Err: err}
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, &Error{Kind: KindAddress, Address: address, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return nil, &Error{Kind: KindAddress, Address: address, Err: fmt.Errorf("missing host")}
	}
	return u, nil
}
