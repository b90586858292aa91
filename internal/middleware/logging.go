package middleware

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/slashery/pkg/handler"
)

// WithLogging logs every handled interaction with its outcome and duration.
func WithLogging(logger zerolog.Logger) handler.Middleware {
	return func(h handler.Handler) handler.Handler {
		return handler.Wrap(h, func(ctx context.Context, req *handler.Request) error {
			start := time.Now()
			err := h.Handle(ctx, req)

			event := logger.Info()
			if err != nil {
				event = logger.Error().Err(err)
			}
			event.
				Str("handler", h.Name()).
				Str("name", req.Name).
				Str("guild", req.GuildID()).
				Str("user", req.UserID()).
				Dur("took", time.Since(start)).
				Msg("interaction handled")
			return err
		})
	}
}

// WithRecover turns a panicking handler into an error so one bad interaction
// cannot take the gateway connection down.
func WithRecover(logger zerolog.Logger) handler.Middleware {
	return func(h handler.Handler) handler.Handler {
		return handler.Wrap(h, func(ctx context.Context, req *handler.Request) (err error) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error().
						Str("handler", h.Name()).
						Str("stack", string(debug.Stack())).
						Msgf("panic: %v", p)
					err = fmt.Errorf("handler %q panicked: %v", h.Name(), p)
				}
			}()
			return h.Handle(ctx, req)
		})
	}
}
