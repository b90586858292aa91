// Package jobmgr runs named background jobs with cancellation and keeps
// track of the ones still running. A name runs at most once at a time.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(logger)
//
//	err := jm.StartAsync(ctx, "sync-commands", func(ctx context.Context) error {
//	    // do work until ctx is cancelled
//	    return nil
//	})
//
//	// on shutdown
//	jm.Shutdown()
package jobmgr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrAlreadyRunning = errors.New("job is already running")
	ErrClosed         = errors.New("job manager is shut down")
)

// Job represents a running unit of work.
// Jobs are added and removed by Manager automatically.
type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// Manager orchestrates starting, stopping and tracking jobs.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	jobs   map[string]*Job
	closed bool
	wg     sync.WaitGroup
	log    zerolog.Logger
}

// NewManager creates a new Manager reporting job lifecycle to logger.
func NewManager(logger zerolog.Logger) *Manager {
	return &Manager{
		jobs: make(map[string]*Job),
		log:  logger.With().Str("component", "jobs").Logger(),
	}
}

// StartAsync runs a job in a separate goroutine and returns immediately.
// The job's context is derived from ctx. If a job with the same name is
// already running, ErrAlreadyRunning is returned; after Shutdown, ErrClosed.
// Jobs are removed automatically after completion (success or failure).
func (m *Manager) StartAsync(ctx context.Context, name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrClosed, name)
	}
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyRunning, name)
	}
	ctx, cancel := context.WithCancel(ctx)
	job := &Job{Name: name, Cancel: cancel}
	m.jobs[name] = job
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()

		m.log.Debug().Str("job", name).Msg("running")
		if err := runner(ctx); err != nil {
			m.log.Error().Err(err).Str("job", name).Msg("job failed")
		} else {
			m.log.Debug().Str("job", name).Msg("done")
		}

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
	}()

	return nil
}

// Running returns the names of active jobs, sorted.
func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Shutdown refuses new jobs, cancels the running ones and waits for them.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	for _, job := range m.jobs {
		job.Cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()
}
