package stock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// DuplicateSubtree copies a node and all its descendants with fresh ids.
// The copied root gets a " (copy)" name suffix. Returns the new root.
func (s *Service) DuplicateSubtree(ctx context.Context, input DuplicateSubtreeInput) (domain.StockNode, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.StockNode{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.StockNode{}, err
	}

	var (
		root   domain.StockNode
		copies []domain.StockNode
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tree, err := s.loadForest(txCtx)
		if err != nil {
			return err
		}

		source, ok := tree.Node(input.ID)
		if !ok {
			return fmt.Errorf("node %s: %w", input.ID, domain.ErrNotFound)
		}

		parentID := source.ParentID
		if input.ParentID != nil {
			parentID = input.ParentID
		}
		if parentID != nil {
			if err := s.checkParent(tree, *parentID, tree.Height(source.ID)); err != nil {
				return err
			}
		}

		copies = cloneSubtree(tree.Subtree(source.ID), parentID)
		if err := s.nodes.CreateBatch(txCtx, copies); err != nil {
			return fmt.Errorf("create copies: %w", err)
		}
		root = copies[0]

		return s.logAudit(txCtx, actor, userID, root.ID, domain.AuditActionCreate, map[string]any{
			"source_id": source.ID.String(),
			"nodes":     len(copies),
		})
	})
	if err != nil {
		return domain.StockNode{}, err
	}

	s.log.InfoContext(ctx, "stock subtree duplicated",
		slog.String("source_id", input.ID.String()),
		slog.String("node_id", root.ID.String()),
		slog.Int("nodes", len(copies)),
		slog.String("actor", actor),
	)

	return root, nil
}

// cloneSubtree assigns fresh ids to a pre-ordered subtree and re-links each
// copy to its copied parent. The first node is attached to parentID.
func cloneSubtree(nodes []domain.StockNode, parentID *uuid.UUID) []domain.StockNode {
	ids := make(map[uuid.UUID]uuid.UUID, len(nodes))
	out := make([]domain.StockNode, 0, len(nodes))

	for i, n := range nodes {
		c := n
		c.ID = uuid.New()
		ids[n.ID] = c.ID
		c.CreatedAt, c.UpdatedAt = time.Time{}, time.Time{}

		if i == 0 {
			c.ParentID = parentID
			c.Name = copyName(n.Name)
		} else {
			newParent := ids[*n.ParentID]
			c.ParentID = &newParent
		}
		if n.Item != nil {
			item := *n.Item
			c.Item = &item
		}
		out = append(out, c)
	}
	return out
}

func copyName(name string) string {
	if len(name)+len(copySuffix) > maxNameLength {
		name = strings.TrimSpace(strings.ToValidUTF8(name[:maxNameLength-len(copySuffix)], ""))
	}
	return name + copySuffix
}
