package periodic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

// HistoryEntry is a ledger record with the name of its item.
type HistoryEntry struct {
	Record   domain.VerificationRecord
	NodeName string
}

// Roots lists the top-level nodes of the forest in display order.
func (s *Service) Roots(ctx context.Context) ([]domain.StockNode, error) {
	tree, err := s.loadTree(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.StockNode, 0, len(tree.Roots()))
	for _, id := range tree.Roots() {
		n, _ := tree.Node(id)
		out = append(out, n)
	}
	return out, nil
}

// Tree returns the periodic status of the whole tree holding nodeID: the
// same document an event produces, computed from the periodic ledger.
func (s *Service) Tree(ctx context.Context, nodeID uuid.UUID) (*status.Document, error) {
	tree, err := s.loadTree(ctx)
	if err != nil {
		return nil, err
	}
	root, err := topRoot(tree, nodeID)
	if err != nil {
		return nil, err
	}

	nodes := tree.Closure([]uuid.UUID{root})
	latest, err := s.records.LatestByNodes(ctx, itemIDs(nodes))
	if err != nil {
		return nil, fmt.Errorf("latest periodic records: %w", err)
	}

	return status.Aggregate(status.Snapshot{
		Roots:   []uuid.UUID{root},
		Nodes:   nodes,
		Records: latest,
	}, s.now(), 0), nil
}

// History returns the newest records of the items under nodeID.
func (s *Service) History(ctx context.Context, nodeID uuid.UUID, limit int) ([]HistoryEntry, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}

	tree, err := s.loadTree(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := tree.Node(nodeID); !ok {
		return nil, fmt.Errorf("stock_node %s: %w", nodeID, domain.ErrNotFound)
	}

	records, err := s.records.History(ctx, itemIDs(tree.Subtree(nodeID)), limit)
	if err != nil {
		return nil, fmt.Errorf("periodic history: %w", err)
	}

	out := make([]HistoryEntry, len(records))
	for i, rec := range records {
		n, _ := tree.Node(rec.NodeID)
		out[i] = HistoryEntry{Record: rec, NodeName: n.Name}
	}
	return out, nil
}

// Verify appends a periodic record for one item.
func (s *Service) Verify(ctx context.Context, input VerifyInput) (domain.VerificationRecord, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.VerificationRecord{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.VerificationRecord{}, err
	}

	var rec domain.VerificationRecord
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		node, err := s.nodes.GetByID(txCtx, input.NodeID)
		if err != nil {
			return err
		}
		if !node.IsItem() {
			return fmt.Errorf("node %s is %s: %w", node.ID, node.Kind, domain.ErrInvalidNodeKind)
		}

		rec, err = s.records.Append(txCtx, domain.VerificationRecord{
			ID:          uuid.New(),
			NodeID:      node.ID,
			Status:      input.Status,
			IssueCode:   input.IssueCode,
			Actor:       actor,
			Comment:     trimmed(input.Comment),
			ObservedQty: input.ObservedQty,
			MissingQty:  input.MissingQty,
		})
		if err != nil {
			return fmt.Errorf("append periodic record: %w", err)
		}

		return s.logAudit(txCtx, actor, userID, domain.EntityTypePeriodic, rec.ID, domain.AuditActionCreate, map[string]any{
			"node_id": node.ID.String(),
			"status":  string(rec.Status),
		})
	})
	if err != nil {
		return domain.VerificationRecord{}, err
	}

	s.log.InfoContext(ctx, "periodic verification recorded",
		slog.String("node_id", rec.NodeID.String()),
		slog.String("status", string(rec.Status)),
		slog.String("actor", actor),
	)

	return rec, nil
}

// Reset starts a new round under rootID: every item whose latest record is
// not already TODO gets a TODO record. Items never verified are left alone.
// It returns the number of records appended.
func (s *Service) Reset(ctx context.Context, rootID uuid.UUID) (int, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	if rootID == uuid.Nil {
		return 0, domain.NewValidationError("root_id", "required")
	}

	var updated int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tree, err := s.loadTree(txCtx)
		if err != nil {
			return err
		}
		top, err := topRoot(tree, rootID)
		if err != nil {
			return err
		}
		if err := s.records.LockRoot(txCtx, top); err != nil {
			return err
		}

		latest, err := s.records.LatestByNodes(txCtx, itemIDs(tree.Subtree(rootID)))
		if err != nil {
			return fmt.Errorf("latest periodic records: %w", err)
		}

		for _, cur := range latest {
			if cur.Status == domain.StatusTodo {
				continue
			}
			if _, err := s.records.Append(txCtx, domain.VerificationRecord{
				ID:     uuid.New(),
				NodeID: cur.NodeID,
				Status: domain.StatusTodo,
				Actor:  actor,
			}); err != nil {
				return fmt.Errorf("append reset record: %w", err)
			}
			updated++
		}

		return s.logAudit(txCtx, actor, userID, domain.EntityTypePeriodic, rootID, domain.AuditActionUpdate, map[string]any{
			"reset":   true,
			"updated": updated,
		})
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "periodic round reset",
		slog.String("root_id", rootID.String()),
		slog.Int("updated", updated),
		slog.String("actor", actor),
	)

	return updated, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
