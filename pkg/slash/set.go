package slash

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/go-multierror"

	"github.com/keshon/slashery/pkg/option"
)

// Invocation is one received command: its name and options.
type Invocation struct {
	Name    string
	Options []*option.Value
}

// InvocationFromData converts the application command payload of an
// interaction.
func InvocationFromData(data discordgo.ApplicationCommandInteractionData) Invocation {
	return Invocation{
		Name:    data.Name,
		Options: option.FromDiscordOptions(data.Options),
	}
}

// Dispatched is the result of a successful dispatch: the matched command name
// and the decoded record, boxed. Handlers type-switch on Value.
type Dispatched struct {
	Name  string
	Value any
}

// Set is a closed, ordered collection of commands. It is read-only after
// NewSet returns and safe for concurrent use.
type Set struct {
	defs []Definition
}

// NewSet builds a Set. Empty or duplicate names, duplicate option names,
// required options listed after optional ones and context menu commands with
// options are rejected; every problem found is reported.
func NewSet(defs ...Definition) (*Set, error) {
	var errs *multierror.Error
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		if isNil(d) {
			errs = multierror.Append(errs, fmt.Errorf("command #%d is nil", i))
			continue
		}
		name := d.Name()
		if name == "" {
			errs = multierror.Append(errs, fmt.Errorf("command #%d has an empty name", i))
		}
		if seen[name] {
			errs = multierror.Append(errs, fmt.Errorf("duplicate command name %q", name))
		}
		seen[name] = true
		errs = multierror.Append(errs, validateSchema(d.Metadata()))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &Set{defs: append([]Definition(nil), defs...)}, nil
}

// isNil also catches a nil *Command stored in a non-nil Definition.
func isNil(d Definition) bool {
	if d == nil {
		return true
	}
	n, ok := d.(interface{ isNil() bool })
	return ok && n.isNil()
}

// MustSet is NewSet that panics on error, for package-level declarations.
func MustSet(defs ...Definition) *Set {
	s, err := NewSet(defs...)
	if err != nil {
		panic(err)
	}
	return s
}

func validateSchema(s CommandSchema) error {
	var errs *multierror.Error
	if s.Kind != ChatInput && len(s.Options) > 0 {
		errs = multierror.Append(errs, fmt.Errorf("context menu command %q cannot have options", s.Name))
	}
	seen := make(map[string]bool, len(s.Options))
	optional := false
	for _, o := range s.Options {
		if o.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("command %q has an option with an empty name", s.Name))
		}
		if seen[o.Name] {
			errs = multierror.Append(errs, fmt.Errorf("command %q: duplicate option %q", s.Name, o.Name))
		}
		seen[o.Name] = true
		if o.Required && optional {
			errs = multierror.Append(errs, fmt.Errorf("command %q: required option %q follows an optional one", s.Name, o.Name))
		}
		optional = optional || !o.Required
	}
	return errs.ErrorOrNil()
}

// Dispatch finds the first command named inv.Name and decodes the options
// with it.
func (s *Set) Dispatch(inv Invocation) (Dispatched, error) {
	for _, d := range s.defs {
		if d.Name() != inv.Name {
			continue
		}
		v, err := d.DecodeAny(inv.Options)
		if err != nil {
			return Dispatched{}, &DispatchError{Name: d.Name(), Err: err}
		}
		return Dispatched{Name: d.Name(), Value: v}, nil
	}
	return Dispatched{}, &UnknownCommandError{Name: inv.Name}
}

// Metadata returns every command's descriptor in registration order.
func (s *Set) Metadata() []CommandSchema {
	out := make([]CommandSchema, 0, len(s.defs))
	for _, d := range s.defs {
		out = append(out, d.Metadata())
	}
	return out
}

// Lookup returns the command registered under name.
func (s *Set) Lookup(name string) (Definition, bool) {
	for _, d := range s.defs {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// Names lists command names in registration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.defs))
	for i, d := range s.defs {
		out[i] = d.Name()
	}
	return out
}
