package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/stellartoml/internal/document"
)

// Policy selects how a malformed element of a table sequence is handled.
type Policy int

const (
	// PolicyAbort fails the whole bind on the first malformed field.
	PolicyAbort Policy = iota
	// PolicySkip drops malformed PRINCIPALS, CURRENCIES and VALIDATORS
	// elements and records them on Manifest.Skipped. Malformed root fields
	// and DOCUMENTATION fields still abort.
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts "abort" or "skip". Empty selects PolicyAbort.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "abort":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyAbort, fmt.Errorf("manifest: unknown policy %q", s)
	}
}

type options struct {
	policy Policy
	parser document.Parser
}

// Option configures Bind and Decode.
type Option func(*options)

func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithParser selects the document parser used by Decode.
func WithParser(p document.Parser) Option {
	return func(o *options) {
		if p != nil {
			o.parser = p
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{policy: PolicyAbort, parser: document.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type binder struct {
	policy  Policy
	skipped []*FieldError
}

// skip records err and reports true when the policy allows dropping the element.
func (b *binder) skip(err error) bool {
	if b.policy != PolicySkip {
		return false
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		return false
	}
	b.skipped = append(b.skipped, fe)
	return true
}

// Bind maps a decoded document tree onto a Manifest. On failure it returns a
// *FieldError and no Manifest.
func Bind(tree document.Tree, opts ...Option) (Manifest, error) {
	o := buildOptions(opts)
	if tree == nil {
		tree = document.Tree{}
	}
	b := &binder{policy: o.policy}
	m, err := manifestSchema.bind(tree, "", b)
	if err != nil {
		return Manifest{}, err
	}
	m.Skipped = b.skipped
	return m, nil
}

// Decode parses raw document bytes and binds them. Syntax errors are returned
// as *document.ParseError, decoding errors as *FieldError.
func Decode(data []byte, opts ...Option) (Manifest, error) {
	o := buildOptions(opts)
	tree, err := o.parser.Parse(data)
	if err != nil {
		return Manifest{}, err
	}
	return Bind(tree, opts...)
}
