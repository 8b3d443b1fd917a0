// Package jobs runs periodic maintenance next to the HTTP server.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/restaurant-pos/internal/domain/repository"
)

const jobTimeout = time.Minute

// Scheduler wraps a cron runner with the point of sale background jobs.
type Scheduler struct {
	cron            *cron.Cron
	idempotencyRepo repository.IdempotencyRepository
	now             func() time.Time
}

// NewScheduler creates a scheduler that purges expired idempotency keys on
// cleanupSpec, a standard five field cron expression or descriptor such as
// "@hourly".
func NewScheduler(idempotencyRepo repository.IdempotencyRepository, cleanupSpec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:            cron.New(),
		idempotencyRepo: idempotencyRepo,
		now:             time.Now,
	}

	if _, err := s.cron.AddFunc(cleanupSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_, _ = s.PurgeExpiredIdempotencyKeys(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid idempotency cleanup schedule %q: %w", cleanupSpec, err)
	}

	return s, nil
}

// Start runs the scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("Background scheduler started")
}

// Stop stops scheduling new runs and waits for running jobs until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("Background scheduler stopped before jobs finished")
	}
}

// PurgeExpiredIdempotencyKeys deletes every key that has already expired.
func (s *Scheduler) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	deleted, err := s.idempotencyRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge expired idempotency keys")
		return 0, err
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("Purged expired idempotency keys")
	}
	return deleted, nil
}
