// Package event implements event administration: lifecycle, included roots,
// share links and the activity feed.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
	"github.com/heartmarshall/stockcheck-backend/pkg/ctxutil"
)

type eventRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Event, error)
	List(ctx context.Context, status *domain.EventStatus, limit, offset int) ([]domain.Event, error)
	Create(ctx context.Context, e domain.Event) (domain.Event, error)
	ReplaceRoots(ctx context.Context, eventID uuid.UUID, roots []uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (domain.Event, error)
}

type nodeRepo interface {
	ListSubtrees(ctx context.Context, rootIDs []uuid.UUID) ([]domain.StockNode, error)
}

type shareLinkRepo interface {
	GetActiveByEvent(ctx context.Context, eventID uuid.UUID) (domain.ShareLink, error)
	GetByToken(ctx context.Context, token string) (domain.ShareLink, error)
	Create(ctx context.Context, link domain.ShareLink) (domain.ShareLink, error)
	DeactivateByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type auditRepo interface {
	Log(ctx context.Context, record domain.AuditRecord) error
	ListByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type publisher interface {
	Publish(ctx context.Context, c notify.Change)
}

// Service provides event administration operations for managers.
type Service struct {
	events   eventRepo
	nodes    nodeRepo
	links    shareLinkRepo
	audit    auditRepo
	tx       txManager
	notifier publisher
	newToken func() (string, error)
	log      *slog.Logger
}

// NewService creates a new event service. newToken generates share link
// tokens.
func NewService(
	log *slog.Logger,
	events eventRepo,
	nodes nodeRepo,
	links shareLinkRepo,
	audit auditRepo,
	tx txManager,
	notifier publisher,
	newToken func() (string, error),
) *Service {
	return &Service{
		events:   events,
		nodes:    nodes,
		links:    links,
		audit:    audit,
		tx:       tx,
		notifier: notifier,
		newToken: newToken,
		log:      log.With("service", "event"),
	}
}

// manager identifies the authenticated manager behind a request.
type manager struct {
	name   string
	userID *uuid.UUID
}

func managerFromCtx(ctx context.Context) (manager, error) {
	name, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return manager{}, domain.ErrUnauthorized
	}
	m := manager{name: name}
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		m.userID = &id
	}
	return m, nil
}

func (s *Service) logAudit(ctx context.Context, m manager, eventID uuid.UUID, entity domain.EntityType, entityID uuid.UUID, action domain.AuditAction, changes map[string]any) error {
	err := s.audit.Log(ctx, domain.AuditRecord{
		ID:         uuid.New(),
		EventID:    &eventID,
		UserID:     m.userID,
		Actor:      m.name,
		EntityType: entity,
		EntityID:   &entityID,
		Action:     action,
		Changes:    changes,
	})
	if err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

// normalizeRoots drops duplicates and roots already covered by another
// included root. Every id must name an existing stock node.
func (s *Service) normalizeRoots(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}

	nodes, err := s.nodes.ListSubtrees(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	tree := domain.NewTree(nodes)

	out := make([]uuid.UUID, 0, len(unique))
	for _, id := range unique {
		if _, ok := tree.Node(id); !ok {
			return nil, fmt.Errorf("stock_node %s: %w", id, domain.ErrNotFound)
		}
		covered := false
		for _, other := range unique {
			if tree.IsAncestorOf(other, id) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, id)
		}
	}
	return out, nil
}
