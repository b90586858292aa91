// /internal/storage/storage.go
package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/slashery/datastore"
)

const interactionHistoryLimit int = 20

// GlobalScope keys data for globally registered commands.
const GlobalScope = "global"

type Storage struct {
	ds *datastore.DataStore
	// serializes read-modify-write of guild records
	mu sync.Mutex
}

// InteractionRecord is one handled interaction.
type InteractionRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Error     string    `json:"error,omitempty"`
	Datetime  time.Time `json:"datetime"`
}

// Record is everything stored for one scope (a guild id or GlobalScope).
type Record struct {
	CommandHashes map[string]string   `json:"command_hashes"`
	History       []InteractionRecord `json:"history"`
}

func New(filePath string, logger zerolog.Logger) (*Storage, error) {
	cfg := datastore.DefaultConfig(filePath)
	cfg.Logger = logger.With().Str("component", "datastore").Logger()
	ds, err := datastore.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// Flush writes pending changes to disk.
func (s *Storage) Flush() error {
	return s.ds.SaveToFile()
}

func recordKey(scope string) string {
	return "scope:" + scope
}

// getOrCreateRecord loads the record for scope. Callers hold s.mu.
func (s *Storage) getOrCreateRecord(scope string) (*Record, error) {
	var record Record
	if _, err := s.ds.Get(recordKey(scope), &record); err != nil {
		return nil, fmt.Errorf("error loading record for %s: %w", scope, err)
	}
	if record.CommandHashes == nil {
		record.CommandHashes = map[string]string{}
	}
	if len(record.History) > interactionHistoryLimit {
		record.History = record.History[len(record.History)-interactionHistoryLimit:]
	}
	return &record, nil
}

func (s *Storage) update(scope string, fn func(*Record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateRecord(scope)
	if err != nil {
		return err
	}
	fn(record)
	return s.ds.Put(recordKey(scope), record)
}

// AppendInteraction records a handled interaction, keeping the most recent
// entries only.
func (s *Storage) AppendInteraction(scope string, rec InteractionRecord) error {
	return s.update(scope, func(r *Record) {
		r.History = append(r.History, rec)
		if len(r.History) > interactionHistoryLimit {
			r.History = r.History[len(r.History)-interactionHistoryLimit:]
		}
	})
}

// InteractionHistory returns recorded interactions, oldest first.
func (s *Storage) InteractionHistory(scope string) ([]InteractionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateRecord(scope)
	if err != nil {
		return nil, err
	}
	return record.History, nil
}
