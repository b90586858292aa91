package arg

import (
	"errors"
	"fmt"

	"github.com/keshon/slashery/pkg/option"
)

// ErrFieldNotFound is returned when a required option is absent or was sent
// without a value.
var ErrFieldNotFound = errors.New("field not found")

// InvalidTypeError reports an option whose wire kind differs from the kind the
// codec declares.
type InvalidTypeError struct {
	Expected option.Kind
	Got      option.Kind
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: expected %s, got %s", e.Expected, e.Got)
}

// InvalidValueError reports an option of the right kind whose primitive cannot
// be represented by the codec's Go type.
type InvalidValueError struct {
	Expected option.Kind
	Got      any
	Detail   string
}

func (e *InvalidValueError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid value for %s: %#v", e.Expected, e.Got)
	}
	return fmt.Sprintf("invalid value for %s: %#v (%s)", e.Expected, e.Got, e.Detail)
}
