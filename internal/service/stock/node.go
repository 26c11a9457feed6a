package stock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// CreateNode adds a GROUP or ITEM under a group, or as a new root.
func (s *Service) CreateNode(ctx context.Context, input CreateNodeInput) (domain.StockNode, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.StockNode{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.StockNode{}, err
	}

	node := domain.NewGroupNode(uuid.New(), input.ParentID, input.Name, input.Position)
	if input.Kind == domain.NodeKindItem {
		node = domain.NewItemNode(node.ID, input.ParentID, input.Name, input.Position, domain.ItemData{
			ExpectedQuantity: input.ExpectedQuantity,
			ExpiryDate:       input.ExpiryDate,
		})
	}

	var created domain.StockNode
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if !node.IsRoot() {
			tree, err := s.loadForest(txCtx)
			if err != nil {
				return err
			}
			if err := s.checkParent(tree, *node.ParentID, 1); err != nil {
				return err
			}
		}

		created, err = s.nodes.Create(txCtx, node)
		if err != nil {
			return fmt.Errorf("create node: %w", err)
		}

		return s.logAudit(txCtx, actor, userID, created.ID, domain.AuditActionCreate, map[string]any{
			"name": created.Name,
			"type": string(created.Kind),
		})
	})
	if err != nil {
		return domain.StockNode{}, err
	}

	s.log.InfoContext(ctx, "stock node created",
		slog.String("node_id", created.ID.String()),
		slog.String("type", string(created.Kind)),
		slog.String("actor", actor),
	)

	return created, nil
}

// UpdateNode changes the name, position or item payload of a node.
func (s *Service) UpdateNode(ctx context.Context, input UpdateNodeInput) (domain.StockNode, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.StockNode{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.StockNode{}, err
	}

	var updated domain.StockNode
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		node, err := s.nodes.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get node: %w", err)
		}
		if input.touchesItemFields() && !node.IsItem() {
			return fmt.Errorf("node %s is %s: %w", node.ID, node.Kind, domain.ErrInvalidNodeKind)
		}

		changes := map[string]any{}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name != node.Name {
				changes["name"] = map[string]any{"old": node.Name, "new": name}
				node.Name = name
			}
		}
		if input.Position != nil && *input.Position != node.Position {
			changes["position"] = map[string]any{"old": node.Position, "new": *input.Position}
			node.Position = *input.Position
		}
		if node.IsItem() {
			item := *node.Item
			if input.ExpectedQuantity != nil {
				item.ExpectedQuantity = input.ExpectedQuantity
				changes["expected_quantity"] = *input.ExpectedQuantity
			}
			if input.ExpiryDate != nil {
				item.ExpiryDate = input.ExpiryDate
				changes["expiry_date"] = input.ExpiryDate.Format("2006-01-02")
			}
			if input.ClearExpiry {
				item.ExpiryDate = nil
				changes["expiry_date"] = nil
			}
			node.Item = &item
		}

		if len(changes) == 0 {
			updated = node
			return nil
		}

		updated, err = s.nodes.Update(txCtx, node)
		if err != nil {
			return fmt.Errorf("update node: %w", err)
		}

		return s.logAudit(txCtx, actor, userID, node.ID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return domain.StockNode{}, err
	}

	s.log.InfoContext(ctx, "stock node updated",
		slog.String("node_id", updated.ID.String()),
		slog.String("actor", actor),
	)

	return updated, nil
}

// MoveNode reparents a node. The target must be a group outside the moved
// subtree and the whole subtree must still fit within the depth limit.
func (s *Service) MoveNode(ctx context.Context, input MoveNodeInput) (domain.StockNode, error) {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return domain.StockNode{}, err
	}
	if err := input.Validate(); err != nil {
		return domain.StockNode{}, err
	}

	var moved domain.StockNode
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tree, err := s.loadForest(txCtx)
		if err != nil {
			return err
		}

		node, ok := tree.Node(input.ID)
		if !ok {
			return fmt.Errorf("node %s: %w", input.ID, domain.ErrNotFound)
		}

		if input.ParentID != nil {
			if tree.IsAncestorOf(node.ID, *input.ParentID) {
				return domain.NewValidationError("parent_id", "cannot move a node under its own descendant")
			}
			if err := s.checkParent(tree, *input.ParentID, tree.Height(node.ID)); err != nil {
				return err
			}
		}

		if err := s.nodes.Move(txCtx, node.ID, input.ParentID, input.Position); err != nil {
			return fmt.Errorf("move node: %w", err)
		}

		changes := map[string]any{"parent_id": map[string]any{"old": idString(node.ParentID), "new": idString(input.ParentID)}}
		node.ParentID = input.ParentID
		node.Position = input.Position
		moved = node

		return s.logAudit(txCtx, actor, userID, node.ID, domain.AuditActionUpdate, changes)
	})
	if err != nil {
		return domain.StockNode{}, err
	}

	s.log.InfoContext(ctx, "stock node moved",
		slog.String("node_id", moved.ID.String()),
		slog.String("parent_id", idString(moved.ParentID)),
		slog.String("actor", actor),
	)

	return moved, nil
}

// DeleteNode removes a node and its subtree. Nodes with verification
// history cannot be deleted and yield domain.ErrConflict.
func (s *Service) DeleteNode(ctx context.Context, id uuid.UUID) error {
	actor, userID, err := actorFromCtx(ctx)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		node, err := s.nodes.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get node: %w", err)
		}
		if err := s.nodes.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete node: %w", err)
		}
		return s.logAudit(txCtx, actor, userID, id, domain.AuditActionDelete, map[string]any{
			"name": node.Name,
			"type": string(node.Kind),
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "stock node deleted",
		slog.String("node_id", id.String()),
		slog.String("actor", actor),
	)
	return nil
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
