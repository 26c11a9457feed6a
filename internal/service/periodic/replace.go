package periodic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// ReplaceResult describes a completed replacement.
type ReplaceResult struct {
	NodeID         uuid.UUID
	BatchID        uuid.UUID
	Quantity       int
	NewExpiry      *time.Time
	RemainingBatch int
	Record         domain.VerificationRecord
}

// Replace takes units from a restock batch to replace an item. The batch
// gives up at most what it holds, the item takes the new expiry date, and
// the replacement is recorded as an OK periodic check.
func (s *Service) Replace(ctx context.Context, input ReplaceInput) (ReplaceResult, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return ReplaceResult{}, err
	}
	if err := input.Validate(); err != nil {
		return ReplaceResult{}, err
	}

	var res ReplaceResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		node, err := s.nodes.GetByID(txCtx, input.NodeID)
		if err != nil {
			return err
		}
		if !node.IsItem() {
			return fmt.Errorf("node %s is %s: %w", node.ID, node.Kind, domain.ErrInvalidNodeKind)
		}

		batch, err := s.batches.GetBatchForUpdate(txCtx, input.BatchID)
		if err != nil {
			return err
		}
		if batch.Quantity == 0 {
			return fmt.Errorf("restock batch %s is empty: %w", batch.ID, domain.ErrConflict)
		}
		item, err := s.batches.GetItem(txCtx, batch.ItemID)
		if err != nil {
			return err
		}

		taken := batch.Take(input.quantity())
		if batch, err = s.batches.UpdateBatch(txCtx, batch); err != nil {
			return fmt.Errorf("update restock batch: %w", err)
		}

		expiry := input.ExpiryDate
		if expiry == nil {
			expiry = batch.ExpiryDate
		}
		if expiry != nil {
			data := domain.ItemData{}
			if node.Item != nil {
				data = *node.Item
			}
			data.ExpiryDate = expiry
			node.Item = &data
			if _, err := s.nodes.Update(txCtx, node); err != nil {
				return fmt.Errorf("update item expiry: %w", err)
			}
		}

		comment := replaceComment(item, batch, taken, input.Comment)
		rec, err := s.records.Append(txCtx, domain.VerificationRecord{
			ID:      uuid.New(),
			NodeID:  node.ID,
			Status:  domain.StatusOK,
			Actor:   actor,
			Comment: &comment,
		})
		if err != nil {
			return fmt.Errorf("append periodic record: %w", err)
		}

		res = ReplaceResult{
			NodeID:         node.ID,
			BatchID:        batch.ID,
			Quantity:       taken,
			NewExpiry:      expiry,
			RemainingBatch: batch.Quantity,
			Record:         rec,
		}

		return s.logAudit(txCtx, actor, userID, domain.EntityTypeRestockBatch, batch.ID, domain.AuditActionUpdate, map[string]any{
			"node_id":   node.ID.String(),
			"taken":     taken,
			"remaining": batch.Quantity,
		})
	})
	if err != nil {
		return ReplaceResult{}, err
	}

	s.log.InfoContext(ctx, "item replaced from restock",
		slog.String("node_id", res.NodeID.String()),
		slog.String("batch_id", res.BatchID.String()),
		slog.Int("quantity", res.Quantity),
		slog.String("actor", actor),
	)

	return res, nil
}

func replaceComment(item domain.RestockItem, batch domain.RestockBatch, taken int, extra *string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Replaced with %d x %s", taken, item.Name)
	if batch.Lot != nil && *batch.Lot != "" {
		fmt.Fprintf(&b, ", lot %s", *batch.Lot)
	}
	if batch.ExpiryDate != nil {
		fmt.Fprintf(&b, ", expires %s", batch.ExpiryDate.Format(time.DateOnly))
	}
	if c := trimmed(extra); c != nil {
		b.WriteString(". ")
		b.WriteString(*c)
	}
	return b.String()
}
