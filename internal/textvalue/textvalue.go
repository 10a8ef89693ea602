package textvalue

import (
	"encoding"
	"errors"
	"fmt"
)

// ErrEmpty is returned when a present value is the empty string.
var ErrEmpty = errors.New("textvalue: empty value")

// Text is the capability pair the adapter needs: parse from text into *T and
// format T back to text.
type Text[T any] interface {
	*T
	encoding.TextUnmarshaler
	encoding.TextMarshaler
}

// ParseError records a failed coercion of one textual value.
type ParseError struct {
	Type  string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("textvalue: parse %s %q: %v", e.Type, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse coerces s into T. Empty input is always rejected.
func Parse[T any, PT Text[T]](s string) (T, error) {
	var out T
	if s == "" {
		return out, &ParseError{Type: typeName[T](), Input: s, Err: ErrEmpty}
	}
	if err := PT(&out).UnmarshalText([]byte(s)); err != nil {
		var zero T
		return zero, &ParseError{Type: typeName[T](), Input: s, Err: err}
	}
	return out, nil
}

// Format returns the canonical textual form of v.
func Format[T any, PT Text[T]](v T) (string, error) {
	b, err := PT(&v).MarshalText()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseOptional maps an absent value to nil without invoking the parser.
func ParseOptional[T any, PT Text[T]](s *string) (*T, error) {
	if s == nil {
		return nil, nil
	}
	v, err := Parse[T, PT](*s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
