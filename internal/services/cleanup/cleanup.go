// Package cleanup retries deletion of audio blobs whose owning recording
// was never written or has been deleted.
package cleanup

import (
	"context"
	"sync"
	"time"

	"github.com/killallgit/voicenotes-api/internal/logging"
)

// Deleter removes blobs by key; blobstore.Store satisfies it
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Options tune the janitor loop
type Options struct {
	Interval    time.Duration
	MaxAttempts int
	BatchSize   int
}

// Stats summarizes one sweep
type Stats struct {
	Deleted int
	Failed  int
}

// Service periodically drains the orphaned blob table
type Service struct {
	repo    Repository
	store   Deleter
	opts    Options
	cancel  context.CancelFunc
	done    chan struct{}
	stopped sync.Once
}

// NewService creates a new janitor
func NewService(repo Repository, store Deleter, opts Options) *Service {
	if opts.Interval <= 0 {
		opts.Interval = 10 * time.Minute
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 10
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	return &Service{
		repo:  repo,
		store: store,
		opts:  opts,
	}
}

// Start runs one sweep immediately and then one per interval until ctx is
// cancelled or Stop is called
func (s *Service) Start(ctx context.Context) {
	logger := logging.Component("cleanup")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	ticker := time.NewTicker(s.opts.Interval)

	go func() {
		defer close(s.done)
		defer ticker.Stop()

		s.sweep(ctx)
		for {
			select {
			case <-ticker.C:
				s.sweep(ctx)
			case <-ctx.Done():
				logger.Info().Msg("Cleanup service stopped")
				return
			}
		}
	}()

	logger.Info().
		Dur("interval", s.opts.Interval).
		Int("max_attempts", s.opts.MaxAttempts).
		Msg("Cleanup service started")
}

// Stop cancels the loop and waits for the running sweep to finish
func (s *Service) Stop() {
	s.stopped.Do(func() {
		if s.cancel == nil {
			return
		}
		s.cancel()
		<-s.done
	})
}

// RunOnce performs a single sweep
func (s *Service) RunOnce(ctx context.Context) (Stats, error) {
	var stats Stats

	orphans, err := s.repo.Pending(ctx, s.opts.MaxAttempts, s.opts.BatchSize)
	if err != nil {
		return stats, err
	}

	for _, o := range orphans {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		if err := s.store.Delete(ctx, o.StorageKey); err != nil {
			stats.Failed++
			if merr := s.repo.MarkFailed(ctx, o.ID, err); merr != nil {
				return stats, merr
			}
			continue
		}

		if err := s.repo.Remove(ctx, o.ID); err != nil {
			return stats, err
		}
		stats.Deleted++
	}
	return stats, nil
}

func (s *Service) sweep(ctx context.Context) {
	logger := logging.Component("cleanup")

	stats, err := s.RunOnce(ctx)
	if err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("Cleanup sweep failed")
		return
	}
	if stats.Deleted > 0 || stats.Failed > 0 {
		logger.Info().
			Int("deleted", stats.Deleted).
			Int("failed", stats.Failed).
			Msg("Cleanup sweep finished")
	}
}
