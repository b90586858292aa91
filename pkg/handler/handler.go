// Package handler runs typed interaction values. A handler has a name (the
// command name, or the component set it serves) and receives the decoded
// value together with the transport context it came from. How values are
// decoded and how handlers are selected is up to the adapter.
package handler

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Request carries one decoded interaction. Session and Event are nil when a
// handler is driven outside Discord (tests, the CLI).
type Request struct {
	Name    string
	Value   any
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate

	// Respond answers the interaction. The adapter sets it; without it the
	// reply helpers fail with ErrNoResponder.
	Respond func(resp *discordgo.InteractionResponse) error
}

// GuildID returns the guild the interaction happened in, "" for DMs.
func (r *Request) GuildID() string {
	if r.Event == nil || r.Event.Interaction == nil {
		return ""
	}
	return r.Event.GuildID
}

// UserID returns the invoking user, whether in a guild or a DM.
func (r *Request) UserID() string {
	if r.Event == nil || r.Event.Interaction == nil {
		return ""
	}
	if r.Event.Member != nil && r.Event.Member.User != nil {
		return r.Event.Member.User.ID
	}
	if r.Event.User != nil {
		return r.Event.User.ID
	}
	return ""
}

// Handler is the universal contract: identity plus execution.
type Handler interface {
	Name() string
	Handle(ctx context.Context, req *Request) error
}

type funcHandler struct {
	name string
	fn   func(ctx context.Context, req *Request) error
}

func (f funcHandler) Name() string { return f.name }

func (f funcHandler) Handle(ctx context.Context, req *Request) error { return f.fn(ctx, req) }

// Func adapts a function to a Handler.
func Func(name string, fn func(ctx context.Context, req *Request) error) Handler {
	return funcHandler{name: name, fn: fn}
}

// Typed adapts a function taking the decoded value directly. A request whose
// value is not a T is rejected with an *UnexpectedValueError.
func Typed[T any](name string, fn func(ctx context.Context, req *Request, v T) error) Handler {
	return Func(name, func(ctx context.Context, req *Request) error {
		v, ok := req.Value.(T)
		if !ok {
			return &UnexpectedValueError{Handler: name, Value: req.Value}
		}
		return fn(ctx, req, v)
	})
}

// UnexpectedValueError reports a request routed to a handler that cannot
// accept its value, which means the handler and decoder registrations
// disagree.
type UnexpectedValueError struct {
	Handler string
	Value   any
}

func (e *UnexpectedValueError) Error() string {
	return fmt.Sprintf("handler %q: unexpected value of type %T", e.Handler, e.Value)
}
