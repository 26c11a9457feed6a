// Package event implements the event repository using PostgreSQL: events,
// their included stock roots and lifecycle state.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new event repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var eventColumns = []string{
	"id", "title", "event_date", "status", "created_by", "created_at", "updated_at", "closed_at",
}

type eventRow struct {
	ID        uuid.UUID  `db:"id"`
	Title     string     `db:"title"`
	EventDate *time.Time `db:"event_date"`
	Status    string     `db:"status"`
	CreatedBy string     `db:"created_by"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	ClosedAt  *time.Time `db:"closed_at"`
}

type rootRow struct {
	EventID uuid.UUID `db:"event_id"`
	NodeID  uuid.UUID `db:"node_id"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an event with its included roots.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return r.get(ctx, id, "")
}

// GetForShare returns the event and holds a FOR SHARE row lock until the
// surrounding transaction ends, so a concurrent close waits for in-flight
// writes and later writes observe CLOSED. Must be called inside RunInTx.
func (r *Repo) GetForShare(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return r.get(ctx, id, "FOR SHARE")
}

// GetForUpdate is GetForShare with an exclusive row lock.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Event, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock string) (domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	builder := postgres.Psql.
		Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id})
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return domain.Event{}, fmt.Errorf("build get event: %w", err)
	}

	var row eventRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Event{}, postgres.MapError(err, "event", id)
	}

	roots, err := r.rootsByEvent(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.Event{}, err
	}

	e := toDomain(row)
	e.RootIDs = roots[id]
	if e.RootIDs == nil {
		e.RootIDs = []uuid.UUID{}
	}
	return e, nil
}

// List returns events newest first, optionally filtered by status.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, status *domain.EventStatus, limit, offset int) ([]domain.Event, error) {
	builder := postgres.Psql.
		Select(eventColumns...).
		From("events").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*status)})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events: %w", err)
	}

	var rows []eventRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	roots, err := r.rootsByEvent(ctx, ids)
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		events[i] = toDomain(row)
		events[i].RootIDs = roots[row.ID]
		if events[i].RootIDs == nil {
			events[i].RootIDs = []uuid.UUID{}
		}
	}

	return events, nil
}

func (r *Repo) rootsByEvent(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}

	sql, args, err := postgres.Psql.
		Select("event_id", "node_id").
		From("event_roots").
		Where(squirrel.Eq{"event_id": eventIDs}).
		OrderBy("event_id", "node_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list event_roots: %w", err)
	}

	var rows []rootRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list event_roots: %w", err)
	}

	for _, row := range rows {
		out[row.EventID] = append(out[row.EventID], row.NodeID)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an event and its roots. Call inside RunInTx.
func (r *Repo) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	sql, args, err := postgres.Psql.
		Insert("events").
		Columns("id", "title", "event_date", "status", "created_by").
		Values(e.ID, e.Title, e.Date, string(e.Status), e.CreatedBy).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.Event{}, fmt.Errorf("build insert event: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return domain.Event{}, postgres.MapError(err, "event", e.ID)
	}

	if err := r.insertRoots(ctx, e.ID, e.RootIDs); err != nil {
		return domain.Event{}, err
	}

	return e, nil
}

// ReplaceRoots swaps the included roots of an event. Call inside RunInTx.
func (r *Repo) ReplaceRoots(ctx context.Context, eventID uuid.UUID, roots []uuid.UUID) error {
	sql, args, err := postgres.Psql.
		Delete("event_roots").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete event_roots: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "event", eventID)
	}

	return r.insertRoots(ctx, eventID, roots)
}

func (r *Repo) insertRoots(ctx context.Context, eventID uuid.UUID, roots []uuid.UUID) error {
	if len(roots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, root := range roots {
		batch.Queue(`INSERT INTO event_roots (event_id, node_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, eventID, root)
	}

	br := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer br.Close()

	for _, root := range roots {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "stock_node", root)
		}
	}
	return nil
}

// UpdateStatus sets the lifecycle state; closing stamps closed_at.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.EventStatus) (domain.Event, error) {
	builder := postgres.Psql.
		Update("events").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})
	if status == domain.EventStatusClosed {
		builder = builder.Set("closed_at", squirrel.Expr("now()"))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return domain.Event{}, fmt.Errorf("build update event status: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return domain.Event{}, postgres.MapError(err, "event", id)
	}
	if tag.RowsAffected() == 0 {
		return domain.Event{}, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomain(row eventRow) domain.Event {
	return domain.Event{
		ID:        row.ID,
		Title:     row.Title,
		Date:      row.EventDate,
		Status:    domain.EventStatus(row.Status),
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		ClosedAt:  row.ClosedAt,
	}
}
