package slash

import (
	"github.com/keshon/slashery/pkg/arg"
	"github.com/keshon/slashery/pkg/option"
)

// Field binds one named argument to a member of the record T.
type Field[T any] struct {
	name   string
	schema func() ArgumentSchema
	decode func(v *option.Value, dst *T) error
}

// Arg declares an argument called name, decoded by codec and stored in the
// member of T that bind points to.
//
//	slash.Arg("who", "Who to greet", arg.String(), func(g *Greet) *string { return &g.Who })
func Arg[T, V any](name, description string, codec arg.Codec[V], bind func(*T) *V) Field[T] {
	return Field[T]{
		name: name,
		schema: func() ArgumentSchema {
			choices := codec.Choices()
			if choices == nil {
				choices = []arg.Choice{}
			}
			return ArgumentSchema{
				Name:        name,
				Description: description,
				Kind:        codec.Kind(),
				Required:    codec.Required(),
				Choices:     choices,
			}
		},
		decode: func(v *option.Value, dst *T) error {
			out, err := codec.Decode(v)
			if err != nil {
				return err
			}
			*bind(dst) = out
			return nil
		},
	}
}

// Definition is the type-erased view of a command used by Set.
type Definition interface {
	Name() string
	Metadata() CommandSchema
	DecodeAny(opts []*option.Value) (any, error)
}

// Command decodes invocations into records of type T.
type Command[T any] struct {
	name        string
	description string
	kind        Kind
	fields      []Field[T]
}

// NewCommand declares a chat input (slash) command.
func NewCommand[T any](name, description string, fields ...Field[T]) *Command[T] {
	return &Command[T]{name: name, description: description, kind: ChatInput, fields: fields}
}

// NewContextCommand declares a user or message context menu command. Context
// menu commands take no options; the handler reads the target from the event.
func NewContextCommand[T any](kind Kind, name string) *Command[T] {
	return &Command[T]{name: name, kind: kind}
}

func (c *Command[T]) isNil() bool { return c == nil }

func (c *Command[T]) Name() string        { return c.name }
func (c *Command[T]) Description() string { return c.description }
func (c *Command[T]) Kind() Kind          { return c.kind }

// Metadata builds the registration descriptor. Every call returns fresh
// slices with identical content.
func (c *Command[T]) Metadata() CommandSchema {
	opts := make([]ArgumentSchema, len(c.fields))
	for i, f := range c.fields {
		opts[i] = f.schema()
	}
	return CommandSchema{
		Name:        c.name,
		Description: c.description,
		Kind:        c.kind,
		Options:     opts,
	}
}

// Decode assembles a T from the received options. When an option name is
// repeated the last one wins. Decoding stops at the first failing argument.
func (c *Command[T]) Decode(opts []*option.Value) (T, error) {
	byName := make(map[string]*option.Value, len(opts))
	for _, o := range opts {
		if o == nil {
			continue
		}
		byName[o.Name()] = o
	}

	var out T
	for _, f := range c.fields {
		if err := f.decode(byName[f.name], &out); err != nil {
			var zero T
			return zero, &ArgError{Name: f.name, Err: err}
		}
	}
	return out, nil
}

// DecodeAny is Decode with the record boxed, for use by Set.
func (c *Command[T]) DecodeAny(opts []*option.Value) (any, error) {
	v, err := c.Decode(opts)
	if err != nil {
		return nil, err
	}
	return v, nil
}
