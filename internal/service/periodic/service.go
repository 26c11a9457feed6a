// Package periodic implements routine inventory rounds outside of any event:
// an append-only ledger per item, a reset that marks a whole tree as TODO
// again, and replacement of items from restock batches.
package periodic

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
	Update(ctx context.Context, n domain.StockNode) (domain.StockNode, error)
}

type recordRepo interface {
	Append(ctx context.Context, rec domain.VerificationRecord) (domain.VerificationRecord, error)
	LockRoot(ctx context.Context, rootID uuid.UUID) error
	LatestByNodes(ctx context.Context, nodeIDs []uuid.UUID) ([]domain.VerificationRecord, error)
	History(ctx context.Context, nodeIDs []uuid.UUID, limit int) ([]domain.VerificationRecord, error)
}

type batchRepo interface {
	GetItem(ctx context.Context, id uuid.UUID) (domain.RestockItem, error)
	GetBatchForUpdate(ctx context.Context, id uuid.UUID) (domain.RestockBatch, error)
	UpdateBatch(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultHistoryLimit = 50

// Service provides periodic verification operations.
type Service struct {
	nodes        nodeRepo
	records      recordRepo
	batches      batchRepo
	audit        auditLogger
	tx           txManager
	historyLimit int
	now          func() time.Time
	log          *slog.Logger
}

// NewService creates a new periodic service. historyLimit caps History when
// the caller passes no limit; zero selects 50.
func NewService(log *slog.Logger, nodes nodeRepo, records recordRepo, batches batchRepo, audit auditLogger, tx txManager, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Service{
		nodes:        nodes,
		records:      records,
		batches:      batches,
		audit:        audit,
		tx:           tx,
		historyLimit: historyLimit,
		now:          time.Now,
		log:          log.With("service", "periodic"),
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

// loadTree indexes the whole forest.
func (s *Service) loadTree(ctx context.Context) (*domain.Tree, error) {
	nodes, err := s.nodes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	return domain.NewTree(nodes), nil
}

// topRoot returns the root of the tree holding id.
func topRoot(tree *domain.Tree, id uuid.UUID) (uuid.UUID, error) {
	if _, ok := tree.Node(id); !ok {
		return uuid.Nil, fmt.Errorf("stock_node %s: %w", id, domain.ErrNotFound)
	}
	chain := tree.Ancestors(id)
	if len(chain) == 0 {
		return id, nil
	}
	return chain[len(chain)-1], nil
}

func itemIDs(nodes []domain.StockNode) []uuid.UUID {
	var out []uuid.UUID
	for _, n := range nodes {
		if n.IsItem() {
			out = append(out, n.ID)
		}
	}
	return out
}
