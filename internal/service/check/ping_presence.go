package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

// PingPresence records that an actor is working on the event, optionally
// on one subtree. Pings are accepted on closed events.
func (s *Service) PingPresence(ctx context.Context, input PingPresenceInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	actor := strings.TrimSpace(input.Actor)

	ev, err := s.events.GetByID(ctx, input.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	if input.SubtreeID != nil {
		nodes, err := s.nodes.ListSubtrees(ctx, ev.RootIDs)
		if err != nil {
			return fmt.Errorf("list nodes: %w", err)
		}
		if _, ok := domain.NewTree(nodes).Node(*input.SubtreeID); !ok {
			return fmt.Errorf("node %s in event %s: %w", *input.SubtreeID, ev.ID, domain.ErrNotFound)
		}
	}

	entry, err := s.presence.Touch(ctx, ev.ID, actor, input.SubtreeID)
	if err != nil {
		return fmt.Errorf("touch presence: %w", err)
	}

	if !s.opts.BroadcastOnPing {
		return nil
	}

	now := s.now()
	entries, err := s.presence.ListSince(ctx, ev.ID, now.Add(-s.opts.PresenceWindow))
	if err != nil {
		return fmt.Errorf("list presence: %w", err)
	}

	s.notifier.Publish(ctx, notify.Change{
		Kind:    notify.KindPresence,
		EventID: ev.ID,
		NodeID:  input.SubtreeID,
		Actor:   actor,
		Busy:    status.BusyActors(entries, now, s.opts.PresenceWindow),
		At:      entry.LastSeen,
	})
	return nil
}
