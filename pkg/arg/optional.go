package arg

import (
	"github.com/keshon/slashery/pkg/option"
)

type optional[T any] struct {
	inner Codec[T]
}

// Optional wraps c so that an absent option decodes to nil instead of
// failing. A present option is decoded by c, errors included.
func Optional[T any](c Codec[T]) Codec[*T] {
	return optional[T]{inner: c}
}

func (o optional[T]) Decode(v *option.Value) (*T, error) {
	if v == nil {
		return nil, nil
	}
	out, err := o.inner.Decode(v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o optional[T]) Kind() option.Kind { return o.inner.Kind() }
func (o optional[T]) Required() bool    { return false }
func (o optional[T]) Choices() []Choice { return o.inner.Choices() }
