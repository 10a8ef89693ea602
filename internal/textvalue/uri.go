package textvalue

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrRelativeURI = errors.New("uri must be absolute with scheme and host")
	ErrURISpace    = errors.New("uri must not contain whitespace")
)

// URI is an absolute network address such as https://example.org/sep24.
type URI struct {
	u url.URL
}

// ParseURI parses s as an absolute URI.
func ParseURI(s string) (URI, error) {
	return Parse[URI](s)
}

// MustParseURI is ParseURI for literals known to be valid.
func MustParseURI(s string) URI {
	u, err := ParseURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *URI) UnmarshalText(text []byte) error {
	s := string(text)
	if strings.ContainsAny(s, " \t\r\n") {
		return ErrURISpace
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return ErrRelativeURI
	}
	u.u = *parsed
	return nil
}

func (u URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u URI) String() string {
	return u.u.String()
}

// URL returns a copy of the underlying url.URL.
func (u URI) URL() *url.URL {
	c := u.u
	return &c
}

func (u URI) Scheme() string { return u.u.Scheme }

func (u URI) Host() string { return u.u.Host }
