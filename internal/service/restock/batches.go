package restock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// ListBatches returns batches by expiry date, undated last. A nil itemID
// lists every batch.
func (s *Service) ListBatches(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error) {
	batches, err := s.repo.ListBatches(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list restock batches: %w", err)
	}
	return batches, nil
}

// CreateBatch adds a batch to an existing restock item.
func (s *Service) CreateBatch(ctx context.Context, input CreateBatchInput) (domain.RestockBatch, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.RestockBatch{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.RestockBatch{}, err
	}

	var created domain.RestockBatch
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetItem(txCtx, input.ItemID); err != nil {
			return err
		}

		created, err = s.repo.CreateBatch(txCtx, domain.RestockBatch{
			ID:         uuid.New(),
			ItemID:     input.ItemID,
			Quantity:   input.Quantity,
			ExpiryDate: input.ExpiryDate,
			Lot:        blankToNil(input.Lot),
			Note:       blankToNil(input.Note),
		})
		if err != nil {
			return fmt.Errorf("create restock batch: %w", err)
		}

		return s.logAudit(txCtx, actor, userID, domain.EntityTypeRestockBatch, created.ID, domain.AuditActionCreate, map[string]any{
			"item_id":  created.ItemID.String(),
			"quantity": created.Quantity,
		})
	})
	if err != nil {
		return domain.RestockBatch{}, err
	}

	s.log.InfoContext(ctx, "restock batch created",
		slog.String("batch_id", created.ID.String()),
		slog.Int("quantity", created.Quantity),
		slog.String("actor", actor),
	)

	return created, nil
}

// UpdateBatch changes the quantity, expiry date, lot or note of a batch.
func (s *Service) UpdateBatch(ctx context.Context, input UpdateBatchInput) (domain.RestockBatch, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.RestockBatch{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.RestockBatch{}, err
	}

	var updated domain.RestockBatch
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		batch, err := s.repo.GetBatch(txCtx, input.ID)
		if err != nil {
			return err
		}

		changes := map[string]any{}
		if input.Quantity != nil {
			batch.Quantity = *input.Quantity
			changes["quantity"] = batch.Quantity
		}
		switch {
		case input.ClearExpiry:
			batch.ExpiryDate = nil
			changes["expiry_date"] = nil
		case input.ExpiryDate != nil:
			batch.ExpiryDate = input.ExpiryDate
			changes["expiry_date"] = input.ExpiryDate
		}
		if input.Lot != nil {
			batch.Lot = blankToNil(input.Lot)
			changes["lot"] = batch.Lot
		}
		if input.Note != nil {
			batch.Note = blankToNil(input.Note)
			changes["note"] = batch.Note
		}

		updated, err = s.repo.UpdateBatch(txCtx, batch)
		if err != nil {
			return fmt.Errorf("update restock batch: %w", err)
		}

		return s.logAudit(txCtx, actor, userID, domain.EntityTypeRestockBatch, updated.ID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return domain.RestockBatch{}, err
	}

	s.log.InfoContext(ctx, "restock batch updated",
		slog.String("batch_id", updated.ID.String()),
		slog.String("actor", actor),
	)

	return updated, nil
}

// DeleteBatch removes a batch.
func (s *Service) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteBatch(txCtx, id); err != nil {
			return err
		}
		return s.logAudit(txCtx, actor, userID, domain.EntityTypeRestockBatch, id, domain.AuditActionDelete, nil)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "restock batch deleted",
		slog.String("batch_id", id.String()),
		slog.String("actor", actor),
	)
	return nil
}
