// Package stock implements administration of the equipment forest: node
// CRUD, moves, subtree duplication, tree reads and the expiry report.
package stock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/pkg/ctxutil"
)

type nodeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.StockNode, error)
	ListAll(ctx context.Context) ([]domain.StockNode, error)
	ListSubtrees(ctx context.Context, rootIDs []uuid.UUID) ([]domain.StockNode, error)
	ListExpiringBefore(ctx context.Context, day time.Time) ([]domain.StockNode, error)
	LockForest(ctx context.Context) error
	Create(ctx context.Context, n domain.StockNode) (domain.StockNode, error)
	CreateBatch(ctx context.Context, nodes []domain.StockNode) error
	Update(ctx context.Context, n domain.StockNode) (domain.StockNode, error)
	Move(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, position int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	defaultMaxDepth     = 5
	defaultExpiryWindow = 30
	copySuffix          = " (copy)"
)

// Service provides stock administration operations.
type Service struct {
	nodes    nodeRepo
	audit    auditLogger
	tx       txManager
	maxDepth int
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new stock service. maxDepth bounds the number of
// levels in any tree of the forest; zero selects the default of 5.
func NewService(log *slog.Logger, nodes nodeRepo, audit auditLogger, tx txManager, maxDepth int) *Service {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &Service{
		nodes:    nodes,
		audit:    audit,
		tx:       tx,
		maxDepth: maxDepth,
		now:      time.Now,
		log:      log.With("service", "stock"),
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

func (s *Service) logAudit(ctx context.Context, actor string, userID *uuid.UUID, nodeID uuid.UUID, action domain.AuditAction, changes map[string]any) error {
	err := s.audit.Log(ctx, domain.AuditRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Actor:      actor,
		EntityType: domain.EntityTypeStockNode,
		EntityID:   &nodeID,
		Action:     action,
		Changes:    changes,
	})
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

// loadForest locks the forest and indexes every node. Must be called inside
// RunInTx.
func (s *Service) loadForest(ctx context.Context) (*domain.Tree, error) {
	if err := s.nodes.LockForest(ctx); err != nil {
		return nil, err
	}
	nodes, err := s.nodes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	return domain.NewTree(nodes), nil
}

// checkParent verifies that a subtree of the given height fits under parent.
func (s *Service) checkParent(tree *domain.Tree, parentID uuid.UUID, height int) error {
	parent, ok := tree.Node(parentID)
	if !ok {
		return fmt.Errorf("parent %s: %w", parentID, domain.ErrNotFound)
	}
	if !parent.IsGroup() {
		return fmt.Errorf("parent %s is %s: %w", parent.ID, parent.Kind, domain.ErrInvalidNodeKind)
	}
	if tree.Level(parentID)+height > s.maxDepth {
		return domain.NewValidationError("parent_id", fmt.Sprintf("tree depth would exceed %d levels", s.maxDepth))
	}
	return nil
}
