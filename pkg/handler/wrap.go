package handler

import "context"

// Wrapped wraps a handler with a custom HandleFunc. Used by middleware.
type Wrapped struct {
	Inner      Handler
	HandleFunc func(ctx context.Context, req *Request) error
}

// Name delegates to the inner handler.
func (w *Wrapped) Name() string { return w.Inner.Name() }

// Handle runs the wrapper's HandleFunc, or the inner handler if none is set.
func (w *Wrapped) Handle(ctx context.Context, req *Request) error {
	if w.HandleFunc != nil {
		return w.HandleFunc(ctx, req)
	}
	return w.Inner.Handle(ctx, req)
}

// Wrap returns a handler that runs fn instead of h.Handle, keeping h's name.
func Wrap(h Handler, fn func(ctx context.Context, req *Request) error) Handler {
	return &Wrapped{Inner: h, HandleFunc: fn}
}
