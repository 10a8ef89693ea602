package resolve

import (
	"errors"
	"fmt"

	"github.com/danmuck/stellartoml/internal/manifest"
)

// Kind identifies the stage that failed.
type Kind int

const (
	KindAddress Kind = iota + 1
	KindTransport
	KindClientResponse
	KindServerResponse
	KindDocumentParse
	KindFieldDecoding
)

func (k Kind) String() string {
	switch k {
	case KindAddress:
		return "address"
	case KindTransport:
		return "transport"
	case KindClientResponse:
		return "client_response"
	case KindServerResponse:
		return "server_response"
	case KindDocumentParse:
		return "document_parse"
	case KindFieldDecoding:
		return "field_decoding"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels matched by Error.Is, one per Kind.
var (
	ErrAddress        = errors.New("resolve: invalid address")
	ErrTransport      = errors.New("resolve: transport failure")
	ErrClientResponse = errors.New("resolve: client error response")
	ErrServerResponse = errors.New("resolve: server error response")
	ErrDocumentParse  = errors.New("resolve: invalid document syntax")
	ErrFieldDecoding  = errors.New("resolve: field decoding failed")

	ErrBodyTooLarge = errors.New("resolve: response body too large")
)

var kindSentinels = map[Kind]error{
	KindAddress:        ErrAddress,
	KindTransport:      ErrTransport,
	KindClientResponse: ErrClientResponse,
	KindServerResponse: ErrServerResponse,
	KindDocumentParse:  ErrDocumentParse,
	KindFieldDecoding:  ErrFieldDecoding,
}

// Error is the single error type returned by resolution.
//
// Status and Body are set for response errors. Body is a bounded excerpt of
// the response, not the response itself. Field is set for KindFieldDecoding.
type Error struct {
	Kind    Kind
	Address string
	Status  int
	Body    string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("resolve: %s", e.Kind)
	if e.Address != "" {
		msg += fmt.Sprintf(" address=%s", e.Address)
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" status=%d", e.Status)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" field=%s", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Retryable reports whether the same request may succeed later.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransport || e.Kind == KindServerResponse
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

func fieldError(address string, err error) *Error {
	out := &Error{Kind: KindFieldDecoding, Address: address, Err: err}
	var fe *manifest.FieldError
	if errors.As(err, &fe) {
		out.Field = fe.Path
	}
	return out
}
