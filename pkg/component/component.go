// Package component routes message component activations (buttons, select
// menus) to a closed set of variants by custom id.
//
// Each variant has one canonical name, which is what outgoing components
// carry, and any number of aliases that are accepted on the way in, so ids
// can be renamed without breaking components already posted.
package component

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/go-multierror"
)

// UnknownComponentError is returned when no variant matches a custom id.
type UnknownComponentError struct {
	ID string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("unknown component %q", e.ID)
}

// Entry is one registered variant.
type Entry[V comparable] struct {
	Value   V
	Name    string
	Aliases []string
}

// Variant declares value under its canonical name plus aliases.
func Variant[V comparable](value V, name string, aliases ...string) Entry[V] {
	return Entry[V]{Value: value, Name: name, Aliases: aliases}
}

// Set is a closed, ordered collection of variants. It is read-only after
// NewSet returns and safe for concurrent use.
type Set[V comparable] struct {
	entries []Entry[V]
}

// NewSet builds a Set. Every id (canonical name or alias) must be non-empty
// and unique across the whole set, and each value may be registered once.
func NewSet[V comparable](entries ...Entry[V]) (*Set[V], error) {
	var errs *multierror.Error
	owner := make(map[string]string)
	values := make(map[V]bool, len(entries))
	for _, e := range entries {
		if values[e.Value] {
			errs = multierror.Append(errs, fmt.Errorf("variant %q: value %v registered twice", e.Name, e.Value))
		}
		values[e.Value] = true
		for _, id := range append([]string{e.Name}, e.Aliases...) {
			if id == "" {
				errs = multierror.Append(errs, fmt.Errorf("variant %q has an empty id", e.Name))
				continue
			}
			if prev, ok := owner[id]; ok {
				errs = multierror.Append(errs, fmt.Errorf("id %q of %q already used by %q", id, e.Name, prev))
				continue
			}
			owner[id] = e.Name
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	out := make([]Entry[V], len(entries))
	for i, e := range entries {
		e.Aliases = append([]string(nil), e.Aliases...)
		out[i] = e
	}
	return &Set[V]{entries: out}, nil
}

// MustSet is NewSet that panics on error.
func MustSet[V comparable](entries ...Entry[V]) *Set[V] {
	s, err := NewSet(entries...)
	if err != nil {
		panic(err)
	}
	return s
}

// Dispatch returns the first variant whose canonical name or alias equals id.
func (s *Set[V]) Dispatch(id string) (V, error) {
	for _, e := range s.entries {
		if matches(e, id) {
			return e.Value, nil
		}
	}
	var zero V
	return zero, &UnknownComponentError{ID: id}
}

func matches[V comparable](e Entry[V], id string) bool {
	if e.Name == id {
		return true
	}
	for _, a := range e.Aliases {
		if a == id {
			return true
		}
	}
	return false
}

// Resolve is Dispatch with the variant boxed, for callers that do not know V.
func (s *Set[V]) Resolve(id string) (any, error) {
	v, err := s.Dispatch(id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ID returns the canonical name of v, or "" if v is not registered. Aliases
// are never returned.
func (s *Set[V]) ID(v V) string {
	for _, e := range s.entries {
		if e.Value == v {
			return e.Name
		}
	}
	return ""
}

// Button builds an outgoing button that dispatches back to v.
func (s *Set[V]) Button(v V, label string, style discordgo.ButtonStyle) discordgo.Button {
	return discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: s.ID(v),
	}
}
