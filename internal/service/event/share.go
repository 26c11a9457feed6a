package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// CreateShareLink returns the active share link of an open event, creating
// one if none exists.
func (s *Service) CreateShareLink(ctx context.Context, eventID uuid.UUID) (domain.ShareLink, error) {
	m, err := managerFromCtx(ctx)
	if err != nil {
		return domain.ShareLink{}, err
	}

	var (
		link    domain.ShareLink
		created bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ev, err := s.events.GetForUpdate(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if !ev.IsOpen() {
			return fmt.Errorf("event %s: %w", ev.ID, domain.ErrEventClosed)
		}

		link, err = s.links.GetActiveByEvent(txCtx, ev.ID)
		if err == nil {
			return nil
		}
		if !isNotFound(err) {
			return fmt.Errorf("get active share link: %w", err)
		}

		token, err := s.newToken()
		if err != nil {
			return fmt.Errorf("generate share token: %w", err)
		}
		link, err = s.links.Create(txCtx, domain.ShareLink{
			ID:        uuid.New(),
			EventID:   ev.ID,
			Token:     token,
			CreatedBy: m.name,
		})
		if err != nil {
			return fmt.Errorf("create share link: %w", err)
		}
		created = true

		return s.logAudit(txCtx, m, ev.ID, domain.EntityTypeShareLink, link.ID, domain.AuditActionCreate, nil)
	})
	if err != nil {
		return domain.ShareLink{}, err
	}

	if created {
		s.log.InfoContext(ctx, "share link created",
			slog.String("event_id", eventID.String()),
			slog.String("link_id", link.ID.String()),
			slog.String("actor", m.name),
		)
	}

	return link, nil
}

// RevokeShareLink deactivates the event's share link. Revoking an event
// without an active link is a no-op.
func (s *Service) RevokeShareLink(ctx context.Context, eventID uuid.UUID) error {
	m, err := managerFromCtx(ctx)
	if err != nil {
		return err
	}

	var revoked int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.events.GetByID(txCtx, eventID); err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		revoked, err = s.links.DeactivateByEvent(txCtx, eventID)
		if err != nil {
			return fmt.Errorf("revoke share links: %w", err)
		}
		if revoked == 0 {
			return nil
		}

		return s.logAudit(txCtx, m, eventID, domain.EntityTypeShareLink, eventID, domain.AuditActionDelete, map[string]any{
			"revoked": revoked,
		})
	})
	if err != nil {
		return err
	}

	if revoked > 0 {
		s.log.InfoContext(ctx, "share link revoked",
			slog.String("event_id", eventID.String()),
			slog.String("actor", m.name),
		)
	}
	return nil
}

// ResolveShareToken returns the open event an active token grants access
// to. Unknown, revoked and closed-event tokens all yield domain.ErrNotFound.
func (s *Service) ResolveShareToken(ctx context.Context, token string) (domain.Event, error) {
	if token == "" {
		return domain.Event{}, domain.ErrNotFound
	}

	link, err := s.links.GetByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, fmt.Errorf("get share link: %w", err)
	}
	if !link.Active {
		return domain.Event{}, domain.ErrNotFound
	}

	ev, err := s.events.GetByID(ctx, link.EventID)
	if err != nil {
		if isNotFound(err) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !ev.IsOpen() {
		return domain.Event{}, domain.ErrNotFound
	}

	return ev, nil
}
