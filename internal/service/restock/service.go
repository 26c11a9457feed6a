// Package restock manages the reserve of spare supplies: restock items,
// their dated batches and the options offered when an item is replaced.
package restock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/pkg/ctxutil"
)

type restockRepo interface {
	ListItems(ctx context.Context) ([]domain.RestockItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (domain.RestockItem, error)
	CreateItem(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error)
	UpdateItem(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListBatches(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error)
	GetBatch(ctx context.Context, id uuid.UUID) (domain.RestockBatch, error)
	CreateBatch(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error)
	UpdateBatch(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error)
	DeleteBatch(ctx context.Context, id uuid.UUID) error
	ListOptions(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error)
}

type nodeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.StockNode, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides restock administration.
type Service struct {
	repo  restockRepo
	nodes nodeRepo
	audit auditLogger
	tx    txManager
	log   *slog.Logger
}

// NewService creates a new restock service.
func NewService(log *slog.Logger, repo restockRepo, nodes nodeRepo, audit auditLogger, tx txManager) *Service {
	return &Service{
		repo:  repo,
		nodes: nodes,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "restock"),
	}
}

func actorFromCtx(ctx context.Context) (string, *uuid.UUID, error) {
	name, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return "", nil, domain.ErrUnauthorized
	}
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return name, &id, nil
	}
	return name, nil, nil
}

func (s *Service) logAudit(ctx context.Context, actor string, userID *uuid.UUID, entity domain.EntityType, id uuid.UUID, action domain.AuditAction, changes map[string]any) error {
	err := s.audit.Log(ctx, domain.AuditRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Actor:      actor,
		EntityType: entity,
		EntityID:   &id,
		Action:     action,
		Changes:    changes,
	})
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

// requireItemNode fails unless id names an ITEM node.
func (s *Service) requireItemNode(ctx context.Context, id uuid.UUID) error {
	node, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !node.IsItem() {
		return fmt.Errorf("node %s is %s: %w", node.ID, node.Kind, domain.ErrInvalidNodeKind)
	}
	return nil
}

// Options lists the batches that can replace the item nodeID, targeted
// items first.
func (s *Service) Options(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error) {
	if err := s.requireItemNode(ctx, nodeID); err != nil {
		return nil, err
	}

	opts, err := s.repo.ListOptions(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("list restock options: %w", err)
	}
	domain.SortRestockOptions(opts)
	return opts, nil
}
