package app

import (
	"context"
	"fmt"
	"time"
)

type presencePurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgePresence deletes presence rows last seen before now minus retention.
// It is shared by the in-process scheduler and cmd/prune-presence.
func PurgePresence(ctx context.Context, repo presencePurger, retention time.Duration, now time.Time) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("presence retention must be positive, got %s", retention)
	}
	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("purge presence: %w", err)
	}
	return deleted, nil
}
