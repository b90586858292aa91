package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/slashery/internal/storage"
	"github.com/keshon/slashery/pkg/handler"
)

// HistoryStore records handled interactions.
type HistoryStore interface {
	AppendInteraction(scope string, rec storage.InteractionRecord) error
}

// WithCommandLogger records each handled interaction in the per-guild
// history. Direct messages are recorded under storage.GlobalScope.
func WithCommandLogger(store HistoryStore, logger zerolog.Logger) handler.Middleware {
	return func(h handler.Handler) handler.Handler {
		return handler.Wrap(h, func(ctx context.Context, req *handler.Request) error {
			err := h.Handle(ctx, req)

			rec := storage.InteractionRecord{
				UserID:   req.UserID(),
				Name:     req.Name,
				Datetime: time.Now().UTC(),
			}
			if req.Event != nil && req.Event.Interaction != nil {
				rec.ChannelID = req.Event.ChannelID
			}
			if err != nil {
				rec.Error = err.Error()
			}
			scope := req.GuildID()
			if scope == "" {
				scope = storage.GlobalScope
			}
			if logErr := store.AppendInteraction(scope, rec); logErr != nil {
				logger.Warn().Err(logErr).Str("name", req.Name).Msg("failed to record interaction")
			}
			return err
		})
	}
}
