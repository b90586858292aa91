// Package arg defines the per-argument decoding contract and the built-in
// codecs for every option kind the platform supports.
//
// A Codec turns an optional option.Value into a Go value and describes the
// wire shape of that value (kind, required-ness, choices) for registration.
// Optionality is a wrapper: Optional(c) reports the same kind and choices as
// c, is not required, and decodes an absent option to nil.
package arg

import (
	"github.com/keshon/slashery/pkg/option"
)

// Codec decodes one argument of type T.
type Codec[T any] interface {
	// Decode converts v; v is nil when the option was not supplied.
	Decode(v *option.Value) (T, error)
	// Kind is the wire-level kind this codec expects.
	Kind() option.Kind
	// Required reports whether the option must be supplied.
	Required() bool
	// Choices lists the allowed values, if the type is a closed enumeration.
	Choices() []Choice
}

// Choice is one allowed value published to the platform. Label is what the
// user sees; Value is what the option carries when selected.
type Choice struct {
	Label string `json:"name"`
	Value any    `json:"value"`
}

// primitive is the shared implementation of the required built-in codecs.
// coerce returns a detail message when the raw value cannot be represented.
type primitive[T any] struct {
	kind   option.Kind
	coerce func(raw any) (T, string, bool)
}

func (p primitive[T]) Decode(v *option.Value) (T, error) {
	var zero T
	if v == nil {
		return zero, ErrFieldNotFound
	}
	if v.Kind() != p.kind {
		return zero, &InvalidTypeError{Expected: p.kind, Got: v.Kind()}
	}
	if v.Raw() == nil {
		return zero, ErrFieldNotFound
	}
	out, detail, ok := p.coerce(v.Raw())
	if !ok {
		return zero, &InvalidValueError{Expected: p.kind, Got: v.Raw(), Detail: detail}
	}
	return out, nil
}

func (p primitive[T]) Kind() option.Kind { return p.kind }
func (p primitive[T]) Required() bool    { return true }
func (p primitive[T]) Choices() []Choice { return nil }
