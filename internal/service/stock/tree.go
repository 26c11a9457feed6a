package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// TreeNode is a stock node with its ordered children.
type TreeNode struct {
	domain.StockNode
	Children []*TreeNode
}

// GetTree returns the whole forest, or the subtree under rootID. Children
// are ordered groups first, then by position and name.
func (s *Service) GetTree(ctx context.Context, rootID *uuid.UUID) ([]*TreeNode, error) {
	var (
		nodes []domain.StockNode
		err   error
	)
	if rootID != nil {
		nodes, err = s.nodes.ListSubtrees(ctx, []uuid.UUID{*rootID})
	} else {
		nodes, err = s.nodes.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}

	tree := domain.NewTree(nodes)
	roots := tree.Roots()
	if rootID != nil {
		if _, ok := tree.Node(*rootID); !ok {
			return nil, fmt.Errorf("node %s: %w", *rootID, domain.ErrNotFound)
		}
		roots = []uuid.UUID{*rootID}
	}

	out := make([]*TreeNode, 0, len(roots))
	for _, id := range roots {
		out = append(out, buildTreeNode(tree, id))
	}
	return out, nil
}

func buildTreeNode(tree *domain.Tree, id uuid.UUID) *TreeNode {
	n, _ := tree.Node(id)
	tn := &TreeNode{StockNode: n}
	for _, c := range tree.Children(id) {
		tn.Children = append(tn.Children, buildTreeNode(tree, c))
	}
	return tn
}

// ExpiryReport lists items that are expired or expire within days (30 when
// zero), soonest first.
func (s *Service) ExpiryReport(ctx context.Context, days int) ([]domain.ExpiryEntry, error) {
	if days < 0 {
		return nil, domain.NewValidationError("days", "must not be negative")
	}
	if days == 0 {
		days = defaultExpiryWindow
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	nodes, err := s.nodes.ListExpiringBefore(ctx, today.AddDate(0, 0, days))
	if err != nil {
		return nil, fmt.Errorf("list expiring: %w", err)
	}

	out := make([]domain.ExpiryEntry, 0, len(nodes))
	for _, n := range nodes {
		if n.Item == nil {
			continue
		}
		state, left := n.Item.ExpiryState(now, days)
		if state == domain.ExpiryOK {
			continue
		}
		out = append(out, domain.ExpiryEntry{Node: n, State: state, DaysLeft: left})
	}
	return out, nil
}
