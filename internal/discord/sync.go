package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/keshon/slashery/internal/storage"
	"github.com/keshon/slashery/pkg/retrylimit"
	"github.com/keshon/slashery/pkg/slash"
)

// CommandAPI is the part of *discordgo.Session the syncer needs.
type CommandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// HashStore persists the hash of every command registered per scope.
// *storage.Storage satisfies it.
type HashStore interface {
	CommandHashes(scope string) (map[string]string, error)
	SetCommandHashes(scope string, hashes map[string]string) error
}

type SyncOptions struct {
	Workers     int
	MaxAttempts int
	Delay       time.Duration // between two creates in the same scope
}

// Syncer registers a command set with Discord: deletes obsolete commands and
// creates those whose definition changed since the last run.
type Syncer struct {
	api     CommandAPI
	store   HashStore
	schemas []slash.CommandSchema
	opts    SyncOptions
	limiter *retrylimit.Limiter
	retry   retrylimit.Policy
	log     zerolog.Logger
}

func NewSyncer(api CommandAPI, store HashStore, commands *slash.Set, opts SyncOptions, logger zerolog.Logger) *Syncer {
	logger = logger.With().Str("component", "sync").Logger()

	retry := retrylimit.DefaultPolicy()
	retry.MaxAttempts = opts.MaxAttempts
	retry.Logger = &logger

	return &Syncer{
		api:     api,
		store:   store,
		schemas: commands.Metadata(),
		opts:    opts,
		limiter: retrylimit.NewLimiter(5, 1, 20),
		retry:   retry,
		log:     logger,
	}
}

// Sync registers the commands in every guild, or globally when guildIDs is
// empty. Guilds are processed concurrently; the first failing guild stops
// the rest.
func (s *Syncer) Sync(ctx context.Context, appID string, guildIDs []string) error {
	scopes := guildIDs
	if len(scopes) == 0 {
		scopes = []string{""}
	}
	return parallel(ctx, scopes, s.opts.Workers, func(ctx context.Context, guildID string) error {
		return s.syncScope(ctx, appID, guildID)
	})
}

func scopeKey(guildID string) string {
	if guildID == "" {
		return storage.GlobalScope
	}
	return guildID
}

func (s *Syncer) withRetry(ctx context.Context, fn func() error) error {
	return retrylimit.Do(ctx, s.limiter, s.retry, fn)
}

func (s *Syncer) syncScope(ctx context.Context, appID, guildID string) error {
	scope := scopeKey(guildID)
	log := s.log.With().Str("scope", scope).Logger()

	var remote []*discordgo.ApplicationCommand
	err := s.withRetry(ctx, func() error {
		var err error
		remote, err = s.api.ApplicationCommands(appID, guildID, discordgo.WithContext(ctx))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to list commands for %s: %w", scope, err)
	}
	remoteByName := make(map[string]*discordgo.ApplicationCommand, len(remote))
	for _, c := range remote {
		remoteByName[c.Name] = c
	}

	cached, err := s.store.CommandHashes(scope)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	hashes := s.deleteObsolete(ctx, log, appID, guildID, remoteByName, cached, &errs)
	s.createChanged(ctx, log, appID, guildID, remoteByName, hashes, &errs)

	if err := s.store.SetCommandHashes(scope, hashes); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// deleteObsolete removes remote commands missing from the local set and
// returns the cached hashes of the commands that remain.
func (s *Syncer) deleteObsolete(ctx context.Context, log zerolog.Logger, appID, guildID string, remote map[string]*discordgo.ApplicationCommand, cached map[string]string, errs **multierror.Error) map[string]string {
	local := make(map[string]struct{}, len(s.schemas))
	for _, schema := range s.schemas {
		local[schema.Name] = struct{}{}
	}

	hashes := make(map[string]string, len(cached))
	for name, h := range cached {
		if _, ok := local[name]; ok {
			hashes[name] = h
		}
	}

	for name, rc := range remote {
		if _, ok := local[name]; ok {
			continue
		}
		log.Info().Str("command", name).Msg("deleting obsolete command")
		err := s.withRetry(ctx, func() error {
			return s.api.ApplicationCommandDelete(appID, guildID, rc.ID, discordgo.WithContext(ctx))
		})
		if err != nil {
			*errs = multierror.Append(*errs, fmt.Errorf("failed to delete %s: %w", name, err))
			continue
		}
		delete(remote, name)
	}
	return hashes
}

// createChanged registers every local command whose hash differs from the
// cached one or that is missing remotely. hashes is updated in place for each
// command Discord accepted.
func (s *Syncer) createChanged(ctx context.Context, log zerolog.Logger, appID, guildID string, remote map[string]*discordgo.ApplicationCommand, hashes map[string]string, errs **multierror.Error) {
	created := 0
	for _, schema := range s.schemas {
		h := hashCommand(schema)
		if _, registered := remote[schema.Name]; registered && hashes[schema.Name] == h {
			continue
		}

		if created > 0 && s.opts.Delay > 0 {
			select {
			case <-ctx.Done():
				*errs = multierror.Append(*errs, ctx.Err())
				return
			case <-time.After(s.opts.Delay):
			}
		}
		created++

		def := schema.Discord()
		err := s.withRetry(ctx, func() error {
			_, err := s.api.ApplicationCommandCreate(appID, guildID, def, discordgo.WithContext(ctx))
			return err
		})
		if err != nil {
			delete(hashes, schema.Name)
			*errs = multierror.Append(*errs, fmt.Errorf("failed to register %s: %w", schema.Name, err))
			continue
		}
		hashes[schema.Name] = h
		log.Info().Str("command", schema.Name).Msg("registered command")
	}
	if created == 0 {
		log.Debug().Msg("commands up to date")
	}
}
