package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = 2 * time.Minute

// Scheduler runs periodic maintenance jobs inside the server process.
type Scheduler struct {
	cron      *cron.Cron
	presence  presencePurger
	retention time.Duration
	now       func() time.Time
	log       *slog.Logger
}

// NewScheduler creates a scheduler that purges stale presence rows on the
// given cron spec. Standard five-field specs and descriptors such as
// "@every 1h" are accepted; an empty spec disables the job.
func NewScheduler(spec string, presence presencePurger, retention time.Duration, log *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		presence:  presence,
		retention: retention,
		now:       time.Now,
		log:       log.With("component", "scheduler"),
	}
	if spec == "" {
		return s, nil
	}
	if _, err := s.cron.AddFunc(spec, s.purgePresence); err != nil {
		return nil, fmt.Errorf("schedule presence purge %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.log.Info("starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.log.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) purgePresence() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	deleted, err := PurgePresence(ctx, s.presence, s.retention, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "presence purge failed", slog.String("error", err.Error()))
		return
	}
	s.log.InfoContext(ctx, "presence purged", slog.Int64("deleted", deleted))
}
