package manifest

import (
	"errors"
	"fmt"
	"math"

	"github.com/danmuck/stellartoml/internal/textvalue"
)

// field declares one schema entry: the accepted keys in lookup order and how
// to store a matched value into E.
type field[E any] struct {
	keys   []string
	set    func(dst *E, raw any, path string, b *binder) error
	absent func(dst *E)
}

// schema is the ordered field table of one entity.
type schema[E any] []field[E]

func (s schema[E]) bind(table map[string]any, path string, b *binder) (E, error) {
	var out E
	for _, f := range s {
		key, raw, ok := lookup(table, f.keys)
		if !ok {
			if f.absent != nil {
				f.absent(&out)
			}
			continue
		}
		fieldPath := joinPath(path, key)
		if err := f.set(&out, raw, fieldPath, b); err != nil {
			var zero E
			var fe *FieldError
			if errors.As(err, &fe) {
				return zero, err
			}
			return zero, &FieldError{Path: fieldPath, Value: excerpt(raw), Err: err}
		}
	}
	return out, nil
}

// lookup returns the first key in keys present in table.
func lookup(table map[string]any, keys []string) (string, any, bool) {
	for _, k := range keys {
		if v, ok := table[k]; ok {
			return k, v, true
		}
	}
	return "", nil, false
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

func stringField[E any](ref func(*E) **string, keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, _ string, _ *binder) error {
			s, ok := raw.(string)
			if !ok {
				return mismatch("string", raw)
			}
			*ref(dst) = &s
			return nil
		},
	}
}

func boolField[E any](ref func(*E) **bool, keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, _ string, _ *binder) error {
			v, ok := raw.(bool)
			if !ok {
				return mismatch("bool", raw)
			}
			*ref(dst) = &v
			return nil
		},
	}
}

func intField[E any](ref func(*E) **int64, keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, _ string, _ *binder) error {
			v, err := asInt(raw)
			if err != nil {
				return err
			}
			*ref(dst) = &v
			return nil
		},
	}
}

func uint8Field[E any](ref func(*E) **uint8, keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, _ string, _ *binder) error {
			v, err := asInt(raw)
			if err != nil {
				return err
			}
			if v < 0 || v > math.MaxUint8 {
				return fmt.Errorf("%w: %d not in 0..%d", ErrOutOfRange, v, math.MaxUint8)
			}
			u := uint8(v)
			*ref(dst) = &u
			return nil
		},
	}
}

// textField coerces a string value through T's text capability pair. Rich
// values (URIs, public keys) and enumerated tags both bind through here.
func textField[E any, T any, PT textvalue.Text[T]](ref func(*E) **T, keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, _ string, _ *binder) error {
			s, ok := raw.(string)
			if !ok {
				return mismatch("string", raw)
			}
			v, err := textvalue.Parse[T, PT](s)
			if err != nil {
				return err
			}
			*ref(dst) = &v
			return nil
		},
	}
}

func stringsField[E any](ref func(*E) *[]string, keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, path string, _ *binder) error {
			items, err := asSlice(raw)
			if err != nil {
				return err
			}
			out := make([]string, 0, len(items))
			for i, item := range items {
				s, ok := item.(string)
				if !ok {
					return &FieldError{Path: indexPath(path, i), Value: excerpt(item), Err: mismatch("string", item)}
				}
				out = append(out, s)
			}
			*ref(dst) = out
			return nil
		},
		absent: func(dst *E) { *ref(dst) = []string{} },
	}
}

func tableField[E any, C any](ref func(*E) **C, s schema[C], keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, path string, b *binder) error {
			table, ok := raw.(map[string]any)
			if !ok {
				return mismatch("table", raw)
			}
			v, err := s.bind(table, path, b)
			if err != nil {
				return err
			}
			*ref(dst) = &v
			return nil
		},
	}
}

// tablesField binds an array of tables. Each element binds independently;
// under PolicySkip a failing element is dropped and recorded on the binder.
func tablesField[E any, C any](ref func(*E) *[]C, s schema[C], keys ...string) field[E] {
	return field[E]{
		keys: keys,
		set: func(dst *E, raw any, path string, b *binder) error {
			items, err := asSlice(raw)
			if err != nil {
				return err
			}
			out := make([]C, 0, len(items))
			for i, item := range items {
				elemPath := indexPath(path, i)
				v, err := bindElement(s, item, elemPath, b)
				if err != nil {
					if b.skip(err) {
						continue
					}
					return err
				}
				out = append(out, v)
			}
			*ref(dst) = out
			return nil
		},
		absent: func(dst *E) { *ref(dst) = []C{} },
	}
}

func bindElement[C any](s schema[C], item any, path string, b *binder) (C, error) {
	table, ok := item.(map[string]any)
	if !ok {
		var zero C
		return zero, &FieldError{Path: path, Value: excerpt(item), Err: mismatch("table", item)}
	}
	return s.bind(table, path, b)
}

func asInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrOutOfRange, v)
		}
		return int64(v), nil
	default:
		return 0, mismatch("integer", raw)
	}
}

// asSlice accepts both array encodings the parsers produce.
func asSlice(raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	default:
		return nil, mismatch("array", raw)
	}
}
