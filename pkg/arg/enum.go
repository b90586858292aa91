package arg

import (
	"fmt"

	"github.com/keshon/slashery/pkg/option"
)

// Entry is one member of a closed enumeration.
type Entry[T any] struct {
	Label string
	Value T
}

type enum[T comparable] struct {
	base    Codec[T]
	entries []Entry[T]
	wire    func(T) any
}

// StringEnum decodes a string option restricted to the given entries and
// publishes them as choices, in order.
func StringEnum[T ~string](entries ...Entry[T]) Codec[T] {
	return enum[T]{
		base: primitive[T]{kind: option.KindString, coerce: func(raw any) (T, string, bool) {
			s, detail, ok := coerceString(raw)
			return T(s), detail, ok
		}},
		entries: entries,
		wire:    func(v T) any { return string(v) },
	}
}

// IntEnum decodes an integer option restricted to the given entries and
// publishes them as choices, in order.
func IntEnum[T ~int64](entries ...Entry[T]) Codec[T] {
	return enum[T]{
		base: primitive[T]{kind: option.KindInteger, coerce: func(raw any) (T, string, bool) {
			n, detail, ok := coerceInteger(raw)
			return T(n), detail, ok
		}},
		entries: entries,
		wire:    func(v T) any { return int64(v) },
	}
}

func (e enum[T]) Decode(v *option.Value) (T, error) {
	out, err := e.base.Decode(v)
	if err != nil {
		return out, err
	}
	for _, entry := range e.entries {
		if entry.Value == out {
			return out, nil
		}
	}
	var zero T
	return zero, &InvalidValueError{
		Expected: e.base.Kind(),
		Got:      v.Raw(),
		Detail:   fmt.Sprintf("not one of %d allowed choices", len(e.entries)),
	}
}

func (e enum[T]) Kind() option.Kind { return e.base.Kind() }
func (e enum[T]) Required() bool    { return true }

func (e enum[T]) Choices() []Choice {
	out := make([]Choice, len(e.entries))
	for i, entry := range e.entries {
		out[i] = Choice{Label: entry.Label, Value: e.wire(entry.Value)}
	}
	return out
}
