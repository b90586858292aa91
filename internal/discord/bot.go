package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/slashery/internal/config"
	"github.com/keshon/slashery/internal/storage"
	"github.com/keshon/slashery/pkg/jobmgr"
	"github.com/keshon/slashery/pkg/slash"
)

const syncJob = "sync-commands"

// Bot is a Discord bot serving one command set.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	storage  *storage.Storage
	commands *slash.Set
	router   *Router
	jobs     *jobmgr.Manager
	log      zerolog.Logger

	ctx context.Context
}

func New(cfg *config.Config, store *storage.Storage, commands *slash.Set, router *Router, logger zerolog.Logger) *Bot {
	return &Bot{
		cfg:      cfg,
		storage:  store,
		commands: commands,
		router:   router,
		jobs:     jobmgr.NewManager(logger),
		log:      logger.With().Str("component", "bot").Logger(),
	}
}

// Run connects to Discord and serves interactions until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx

	// Interactions arrive without any privileged intent.
	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Strs("jobs", b.jobs.Running()).Msg("shutdown signal received, cleaning up")
	b.jobs.Shutdown()
	return nil
}

// onReady registers the command set once the gateway session is up. Ready
// fires again after a reconnect; a sync still in progress is left alone.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}

	syncer := NewSyncer(s, b.storage, b.commands, SyncOptions{
		Workers:     b.cfg.SyncWorkers,
		MaxAttempts: b.cfg.SyncMaxAttempts,
		Delay:       b.cfg.SyncDelay,
	}, b.log)

	err := b.jobs.StartAsync(b.ctx, syncJob, func(ctx context.Context) error {
		if err := syncer.Sync(ctx, appID, b.cfg.GuildIDs); err != nil {
			return fmt.Errorf("failed to register commands: %w", err)
		}
		return b.storage.Flush()
	})
	if err != nil {
		b.log.Debug().Err(err).Msg("command sync not started")
	}

	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("discord bot is running")
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Errors are already reported to the user and logged by the router or
	// the handler middleware.
	_ = b.router.Route(b.ctx, s, i)
}
