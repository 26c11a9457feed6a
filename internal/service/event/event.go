package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
)

// CreateEvent opens a new event over the given stock subtrees.
func (s *Service) CreateEvent(ctx context.Context, input CreateEventInput) (domain.Event, error) {
	m, err := managerFromCtx(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Event{}, err
	}

	var created domain.Event
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		roots, err := s.normalizeRoots(txCtx, input.RootIDs)
		if err != nil {
			return err
		}

		created, err = s.events.Create(txCtx, domain.Event{
			ID:        uuid.New(),
			Title:     strings.TrimSpace(input.Title),
			Date:      input.Date,
			Status:    domain.EventStatusOpen,
			RootIDs:   roots,
			CreatedBy: m.name,
		})
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}

		return s.logAudit(txCtx, m, created.ID, domain.EntityTypeEvent, created.ID, domain.AuditActionCreate, map[string]any{
			"title": created.Title,
			"roots": len(roots),
		})
	})
	if err != nil {
		return domain.Event{}, err
	}

	s.log.InfoContext(ctx, "event created",
		slog.String("event_id", created.ID.String()),
		slog.String("actor", m.name),
		slog.Int("roots", len(created.RootIDs)),
	)

	return created, nil
}

// GetEvent returns one event with its included roots.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

// ListEvents returns events newest first.
func (s *Service) ListEvents(ctx context.Context, input ListEventsInput) ([]domain.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var filter *domain.EventStatus
	if input.Status != "" {
		st, _ := domain.ParseEventStatus(input.Status)
		filter = &st
	}

	events, err := s.events.List(ctx, filter, normalizeLimit(input.Limit), input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// SetEventStatus moves an event between OPEN and CLOSED. CLOSED is terminal:
// re-closing is a no-op and reopening fails with domain.ErrEventClosed.
// Closing revokes the active share link.
func (s *Service) SetEventStatus(ctx context.Context, input SetEventStatusInput) (domain.Event, error) {
	m, err := managerFromCtx(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Event{}, err
	}
	target, _ := domain.ParseEventStatus(input.Status)

	var (
		ev      domain.Event
		changed bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.events.GetForUpdate(txCtx, input.EventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		ev = current

		if current.Status == target {
			return nil
		}
		if current.Status == domain.EventStatusClosed {
			return fmt.Errorf("event %s: %w", current.ID, domain.ErrEventClosed)
		}

		ev, err = s.events.UpdateStatus(txCtx, current.ID, target)
		if err != nil {
			return fmt.Errorf("update event status: %w", err)
		}
		changed = true

		changes := map[string]any{
			"status": map[string]any{"old": string(current.Status), "new": string(target)},
		}
		if target == domain.EventStatusClosed {
			revoked, err := s.links.DeactivateByEvent(txCtx, ev.ID)
			if err != nil {
				return fmt.Errorf("revoke share links: %w", err)
			}
			if revoked > 0 {
				changes["share_links_revoked"] = revoked
			}
		}

		return s.logAudit(txCtx, m, ev.ID, domain.EntityTypeEvent, ev.ID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return domain.Event{}, err
	}
	if !changed {
		return ev, nil
	}

	s.log.InfoContext(ctx, "event status changed",
		slog.String("event_id", ev.ID.String()),
		slog.String("status", string(ev.Status)),
		slog.String("actor", m.name),
	)
	s.notifier.Publish(ctx, notify.Change{
		Kind:    notify.KindEventStatus,
		EventID: ev.ID,
		Actor:   m.name,
		Status:  string(ev.Status),
		At:      ev.UpdatedAt,
	})

	return ev, nil
}

// SetInclusions replaces the included roots of an open event.
func (s *Service) SetInclusions(ctx context.Context, input SetInclusionsInput) (domain.Event, error) {
	m, err := managerFromCtx(ctx)
	if err != nil {
		return domain.Event{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.Event{}, err
	}

	var ev domain.Event
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ev, err = s.events.GetForUpdate(txCtx, input.EventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if !ev.IsOpen() {
			return fmt.Errorf("event %s: %w", ev.ID, domain.ErrEventClosed)
		}

		roots, err := s.normalizeRoots(txCtx, input.RootIDs)
		if err != nil {
			return err
		}
		if err := s.events.ReplaceRoots(txCtx, ev.ID, roots); err != nil {
			return fmt.Errorf("replace roots: %w", err)
		}

		old := ev.RootIDs
		ev.RootIDs = roots
		return s.logAudit(txCtx, m, ev.ID, domain.EntityTypeEvent, ev.ID, domain.AuditActionUpdate, map[string]any{
			"roots": map[string]any{"old": len(old), "new": len(roots)},
		})
	})
	if err != nil {
		return domain.Event{}, err
	}

	s.log.InfoContext(ctx, "event roots replaced",
		slog.String("event_id", ev.ID.String()),
		slog.Int("roots", len(ev.RootIDs)),
		slog.String("actor", m.name),
	)

	return ev, nil
}

// ListActivity returns the most recent audit records of an event.
func (s *Service) ListActivity(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	if limit < 0 || limit > maxListLimit {
		return nil, domain.NewValidationError("limit", "must be between 0 and 200")
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	records, err := s.audit.ListByEvent(ctx, eventID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return records, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
