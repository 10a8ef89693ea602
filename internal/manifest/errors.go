package manifest

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrTypeMismatch = errors.New("manifest: type mismatch")
	ErrOutOfRange   = errors.New("manifest: value out of range")
)

const maxValueExcerpt = 64

// FieldError reports a present field whose value could not be decoded into
// its declared type. Path is dotted from the document root using the key that
// matched, with sequence indexes in brackets: CURRENCIES[2].STATUS.
type FieldError struct {
	Path  string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("manifest: field %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("manifest: field %s (value %s): %v", e.Path, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func mismatch(want string, raw any) error {
	return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, want, describe(raw))
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case map[string]any:
		return "table"
	case []any, []map[string]any, []string:
		return "array"
	default:
		return fmt.Sprintf("%T", raw)
	}
}

func excerpt(raw any) string {
	var s string
	switch v := raw.(type) {
	case map[string]any, []any, []map[string]any:
		return ""
	case string:
		s = fmt.Sprintf("%q", v)
	default:
		s = fmt.Sprint(v)
	}
	if len(s) > maxValueExcerpt {
		cut := maxValueExcerpt
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
