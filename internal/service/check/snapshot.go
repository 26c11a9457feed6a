package check

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/metrics"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

// loadSnapshot reads the committed state of ev. Queries run concurrently
// unless sequential is set, which is required inside a transaction because
// a pgx transaction serves one query at a time.
func (s *Service) loadSnapshot(ctx context.Context, ev domain.Event, now time.Time, sequential bool) (status.Snapshot, error) {
	snap := status.Snapshot{EventID: ev.ID, Roots: ev.RootIDs}

	steps := []func(ctx context.Context) error{
		func(ctx context.Context) error {
			nodes, err := s.nodes.ListSubtrees(ctx, ev.RootIDs)
			if err != nil {
				return fmt.Errorf("list nodes: %w", err)
			}
			snap.Nodes = nodes
			return nil
		},
		func(ctx context.Context) error {
			records, err := s.records.LatestByEvent(ctx, ev.ID)
			if err != nil {
				return fmt.Errorf("latest verifications: %w", err)
			}
			snap.Records = records
			return nil
		},
		func(ctx context.Context) error {
			loads, err := s.loads.ListByEvent(ctx, ev.ID)
			if err != nil {
				return fmt.Errorf("list load states: %w", err)
			}
			snap.Loads = loads
			return nil
		},
		func(ctx context.Context) error {
			entries, err := s.presence.ListSince(ctx, ev.ID, now.Add(-s.opts.PresenceWindow))
			if err != nil {
				return fmt.Errorf("list presence: %w", err)
			}
			snap.Presence = entries
			return nil
		},
	}

	if sequential {
		for _, step := range steps {
			if err := step(ctx); err != nil {
				return status.Snapshot{}, err
			}
		}
		return snap, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, step := range steps {
		g.Go(func() error { return step(gctx) })
	}
	if err := g.Wait(); err != nil {
		return status.Snapshot{}, err
	}
	return snap, nil
}

// aggregate builds the status document of ev as of now.
func (s *Service) aggregate(ctx context.Context, ev domain.Event, sequential bool) (*status.Document, error) {
	now := s.now()
	snap, err := s.loadSnapshot(ctx, ev, now, sequential)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	doc := status.Aggregate(snap, now, s.opts.PresenceWindow)
	metrics.AggregationDuration.Observe(time.Since(start).Seconds())

	return doc, nil
}
