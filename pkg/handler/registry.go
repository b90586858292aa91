package handler

import (
	"fmt"
	"sort"
)

// Registry stores handlers by name. It does not decode or dispatch; the
// adapter looks handlers up after decoding.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h wrapped with mws. A second handler for the
// same name is an error.
func (r *Registry) Register(h Handler, mws ...Middleware) error {
	if _, exists := r.handlers[h.Name()]; exists {
		return fmt.Errorf("handler %q already registered", h.Name())
	}
	r.handlers[h.Name()] = Apply(h, mws...)
	return nil
}

// Get returns the handler registered under name.
func (r *Registry) Get(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
