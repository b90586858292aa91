// cmd/discord/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/keshon/slashery/internal/config"
	"github.com/keshon/slashery/internal/demo"
	"github.com/keshon/slashery/internal/discord"
	"github.com/keshon/slashery/internal/logging"
	"github.com/keshon/slashery/internal/middleware"
	"github.com/keshon/slashery/internal/storage"
	v "github.com/keshon/slashery/internal/version"
	"github.com/keshon/slashery/pkg/handler"
	"github.com/keshon/slashery/pkg/slash"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Info().Str("version", v.Version).Msgf("starting %s bot", v.AppName)

	store, err := storage.New(cfg.StoragePath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close storage")
		}
	}()

	router, commands, err := buildRouter(store, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot := discord.New(cfg, store, commands, router, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		err = <-errCh
	case err = <-errCh:
		cancel()
	}
	if err != nil {
		return fmt.Errorf("discord bot error: %w", err)
	}

	logger.Info().Msg("discord bot exited cleanly")
	return nil
}

func buildRouter(store *storage.Storage, logger zerolog.Logger) (*discord.Router, *slash.Set, error) {
	commands := demo.Commands()
	buttons := demo.Buttons()

	handlers := handler.NewRegistry()
	err := demo.NewHandlers(buttons).Register(handlers,
		middleware.WithRecover(logger),
		middleware.WithCommandLogger(store, logger),
		middleware.WithLogging(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug().Strs("handlers", handlers.Names()).Msg("handlers registered")

	router := discord.NewRouter(commands, handlers, logger)
	router.RouteComponents(demo.ButtonsHandler, buttons)
	return router, commands, nil
}
