// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var auditColumns = []string{
	"id", "event_id", "user_id", "actor", "entity_type", "entity_id", "action", "changes", "created_at",
}

type auditRow struct {
	ID         uuid.UUID  `db:"id"`
	EventID    *uuid.UUID `db:"event_id"`
	UserID     *uuid.UUID `db:"user_id"`
	Actor      string     `db:"actor"`
	EntityType string     `db:"entity_type"`
	EntityID   *uuid.UUID `db:"entity_id"`
	Action     string     `db:"action"`
	Changes    []byte     `db:"changes"`
	CreatedAt  time.Time  `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	var changesJSON []byte
	if record.Changes != nil {
		var err error
		changesJSON, err = json.Marshal(record.Changes)
		if err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record marshal changes: %w", err)
		}
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	sql, args, err := postgres.Psql.
		Insert("audit_log").
		Columns(auditColumns...).
		Values(record.ID, record.EventID, record.UserID, record.Actor, string(record.EntityType),
			record.EntityID, string(record.Action), changesJSON, createdAt).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("build insert audit_record: %w", err)
	}

	var row auditRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID)
	}

	return toDomainAuditRecord(row)
}

// Log creates an audit record without returning it (fire-and-forget).
// Satisfies the auditLogger interface of the check, event and stock services.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByEvent returns the activity log of an event, newest first.
func (r *Repo) ListByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	sql, args, err := postgres.Psql.
		Select(auditColumns...).
		From("audit_log").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit_records by event: %w", err)
	}

	return r.selectRecords(ctx, "get audit_records by event", sql, args)
}

// GetByEntity returns the change history for a specific entity, ordered by
// created_at DESC, limited to `limit` records.
func (r *Repo) GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	sql, args, err := postgres.Psql.
		Select(auditColumns...).
		From("audit_log").
		Where(squirrel.Eq{"entity_type": string(entityType), "entity_id": entityID}).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list audit_records by entity: %w", err)
	}

	return r.selectRecords(ctx, "get audit_records by entity", sql, args)
}

func (r *Repo) selectRecords(ctx context.Context, what, sql string, args []any) ([]domain.AuditRecord, error) {
	var rows []auditRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, row := range rows {
		rec, err := toDomainAuditRecord(row)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}

	return records, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func joinColumns() string {
	return strings.Join(auditColumns, ", ")
}

// toDomainAuditRecord converts an audit_log row into a domain.AuditRecord.
func toDomainAuditRecord(row auditRow) (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:         row.ID,
		EventID:    row.EventID,
		UserID:     row.UserID,
		Actor:      row.Actor,
		EntityType: domain.EntityType(row.EntityType),
		EntityID:   row.EntityID,
		Action:     domain.AuditAction(row.Action),
		CreatedAt:  row.CreatedAt,
	}

	// changes: JSONB -> map[string]any
	if len(row.Changes) > 0 {
		changes := make(map[string]any)
		if err := json.Unmarshal(row.Changes, &changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal changes: %w", row.ID, err)
		}
		record.Changes = changes
	}

	return record, nil
}
