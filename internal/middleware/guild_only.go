package middleware

import (
	"context"

	"github.com/keshon/slashery/pkg/handler"
)

// WithGuildOnly wraps a handler so it only runs inside a guild. Direct
// messages get an ephemeral notice instead.
func WithGuildOnly() handler.Middleware {
	return func(h handler.Handler) handler.Handler {
		return handler.Wrap(h, func(ctx context.Context, req *handler.Request) error {
			if req.GuildID() == "" {
				return req.ReplyEphemeral("This can only be used in a server.")
			}
			return h.Handle(ctx, req)
		})
	}
}
