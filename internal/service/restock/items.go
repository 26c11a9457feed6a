package restock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// ListItems returns every restock item with its total quantity.
func (s *Service) ListItems(ctx context.Context) ([]domain.RestockItem, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restock items: %w", err)
	}
	return items, nil
}

// CreateItem adds a restock item. A target must be an ITEM node.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (domain.RestockItem, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.RestockItem{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.RestockItem{}, err
	}

	var created domain.RestockItem
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if input.TargetNodeID != nil {
			if err := s.requireItemNode(txCtx, *input.TargetNodeID); err != nil {
				return err
			}
		}

		created, err = s.repo.CreateItem(txCtx, domain.RestockItem{
			ID:           uuid.New(),
			Name:         strings.TrimSpace(input.Name),
			Note:         blankToNil(input.Note),
			TargetNodeID: input.TargetNodeID,
		})
		if err != nil {
			return fmt.Errorf("create restock item: %w", err)
		}

		return s.logAudit(txCtx, actor, userID, domain.EntityTypeRestockItem, created.ID, domain.AuditActionCreate, map[string]any{
			"name": created.Name,
		})
	})
	if err != nil {
		return domain.RestockItem{}, err
	}

	s.log.InfoContext(ctx, "restock item created",
		slog.String("item_id", created.ID.String()),
		slog.String("actor", actor),
	)

	return created, nil
}

// UpdateItem changes the name, note or target of a restock item.
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (domain.RestockItem, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.RestockItem{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.RestockItem{}, err
	}

	var updated domain.RestockItem
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.GetItem(txCtx, input.ID)
		if err != nil {
			return err
		}

		changes := map[string]any{}
		if input.Name != nil {
			item.Name = strings.TrimSpace(*input.Name)
			changes["name"] = item.Name
		}
		if input.Note != nil {
			item.Note = blankToNil(input.Note)
			changes["note"] = item.Note
		}
		switch {
		case input.ClearTarget:
			item.TargetNodeID = nil
			changes["target_node_id"] = nil
		case input.TargetNodeID != nil:
			if err := s.requireItemNode(txCtx, *input.TargetNodeID); err != nil {
				return err
			}
			item.TargetNodeID = input.TargetNodeID
			changes["target_node_id"] = input.TargetNodeID.String()
		}

		total := item.TotalQuantity
		updated, err = s.repo.UpdateItem(txCtx, item)
		if err != nil {
			return fmt.Errorf("update restock item: %w", err)
		}
		updated.TotalQuantity = total

		return s.logAudit(txCtx, actor, userID, domain.EntityTypeRestockItem, updated.ID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return domain.RestockItem{}, err
	}

	s.log.InfoContext(ctx, "restock item updated",
		slog.String("item_id", updated.ID.String()),
		slog.String("actor", actor),
	)

	return updated, nil
}

// DeleteItem removes a restock item together with its batches.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteItem(txCtx, id); err != nil {
			return err
		}
		return s.logAudit(txCtx, actor, userID, domain.EntityTypeRestockItem, id, domain.AuditActionDelete, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "restock item deleted",
		slog.String("item_id", id.String()),
		slog.String("actor", actor),
	)
	return nil
}
