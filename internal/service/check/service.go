// Package check implements the event check flow: reading the status
// document, recording item verifications, toggling group load state and
// presence pings.
package check

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
)

type eventRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error)
	GetForShare(ctx context.Context, id uuid.UUID) (domain.Event, error)
}

type nodeRepo interface {
	ListSubtrees(ctx context.Context, rootIDs []uuid.UUID) ([]domain.StockNode, error)
}

type verificationRepo interface {
	Append(ctx context.Context, rec domain.VerificationRecord) (domain.VerificationRecord, error)
	LatestByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.VerificationRecord, error)
	History(ctx context.Context, eventID, nodeID uuid.UUID, limit int) ([]domain.VerificationRecord, error)
	CountByNode(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]int, error)
}

type loadRepo interface {
	Lock(ctx context.Context, eventID, nodeID uuid.UUID) error
	Upsert(ctx context.Context, s domain.LoadState) (domain.LoadState, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.LoadState, error)
	ClearLoaded(ctx context.Context, eventID uuid.UUID, nodeIDs []uuid.UUID, setBy string) ([]domain.LoadState, error)
}

type presenceRepo interface {
	Touch(ctx context.Context, eventID uuid.UUID, actor string, subtreeID *uuid.UUID) (domain.PresenceEntry, error)
	ListSince(ctx context.Context, eventID uuid.UUID, since time.Time) ([]domain.PresenceEntry, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type publisher interface {
	Publish(ctx context.Context, c notify.Change)
}

// LoadPolicy decides what happens to a loaded group when one of its items
// is later verified as not OK.
type LoadPolicy string

const (
	// LoadPolicySticky keeps the flag; the status document reports load_stale.
	LoadPolicySticky LoadPolicy = "sticky"
	// LoadPolicyAutoReset clears the flag on every loaded ancestor.
	LoadPolicyAutoReset LoadPolicy = "auto_reset"
)

// Options tune the check flow.
type Options struct {
	LoadPolicy      LoadPolicy
	PresenceWindow  time.Duration
	BroadcastOnPing bool
	HistoryLimit    int
}

const (
	defaultPresenceWindow = 2 * time.Minute
	defaultHistoryLimit   = 200
)

// Service provides the check operations of an event.
type Service struct {
	events   eventRepo
	nodes    nodeRepo
	records  verificationRepo
	loads    loadRepo
	presence presenceRepo
	audit    auditLogger
	tx       txManager
	notifier publisher
	opts     Options
	now      func() time.Time
	log      *slog.Logger

	// publishMu serializes the post-commit recompute and publish of writes
	// to the same event, striped by event id.
	publishMu [16]sync.Mutex
}

// NewService creates a new check service.
func NewService(
	log *slog.Logger,
	events eventRepo,
	nodes nodeRepo,
	records verificationRepo,
	loads loadRepo,
	presence presenceRepo,
	audit auditLogger,
	tx txManager,
	notifier publisher,
	opts Options,
) *Service {
	if opts.LoadPolicy == "" {
		opts.LoadPolicy = LoadPolicySticky
	}
	if opts.PresenceWindow <= 0 {
		opts.PresenceWindow = defaultPresenceWindow
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	return &Service{
		events:   events,
		nodes:    nodes,
		records:  records,
		loads:    loads,
		presence: presence,
		audit:    audit,
		tx:       tx,
		notifier: notifier,
		opts:     opts,
		now:      time.Now,
		log:      log.With("service", "check"),
	}
}

// lockEvent takes the publish stripe of eventID and returns its unlock.
func (s *Service) lockEvent(eventID uuid.UUID) func() {
	mu := &s.publishMu[int(eventID[0])%len(s.publishMu)]
	mu.Lock()
	return mu.Unlock
}
