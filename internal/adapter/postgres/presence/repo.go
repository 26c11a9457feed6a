// Package presence implements actor presence tracking using PostgreSQL.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// Repo provides presence persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new presence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type entryRow struct {
	EventID   uuid.UUID  `db:"event_id"`
	Actor     string     `db:"actor"`
	SubtreeID *uuid.UUID `db:"subtree_id"`
	LastSeen  time.Time  `db:"last_seen"`
}

// Touch records that actor was seen now on the event (and subtree, if any).
// A repeat ping only moves last_seen forward.
func (r *Repo) Touch(ctx context.Context, eventID uuid.UUID, actor string, subtreeID *uuid.UUID) (domain.PresenceEntry, error) {
	sql, args, err := postgres.Psql.
		Insert("presence_entries").
		Columns("event_id", "actor", "subtree_id").
		Values(eventID, actor, subtreeID).
		Suffix(`ON CONFLICT ON CONSTRAINT presence_entries_key
			DO UPDATE SET last_seen = GREATEST(presence_entries.last_seen, EXCLUDED.last_seen)
			RETURNING event_id, actor, subtree_id, last_seen`).
		ToSql()
	if err != nil {
		return domain.PresenceEntry{}, fmt.Errorf("build touch presence: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.PresenceEntry{}, postgres.MapError(err, "presence for event", eventID)
	}
	return toDomain(row), nil
}

// ListSince returns entries of the event seen at or after since.
func (r *Repo) ListSince(ctx context.Context, eventID uuid.UUID, since time.Time) ([]domain.PresenceEntry, error) {
	sql, args, err := postgres.Psql.
		Select("event_id", "actor", "subtree_id", "last_seen").
		From("presence_entries").
		Where(squirrel.Eq{"event_id": eventID}).
		Where(squirrel.GtOrEq{"last_seen": since}).
		OrderBy("last_seen DESC", "actor").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list presence: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list presence: %w", err)
	}

	out := make([]domain.PresenceEntry, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

// DeleteOlderThan removes entries last seen before cutoff across all events.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := postgres.Psql.
		Delete("presence_entries").
		Where(squirrel.Lt{"last_seen": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete presence: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete presence: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toDomain(row entryRow) domain.PresenceEntry {
	return domain.PresenceEntry{
		EventID:   row.EventID,
		Actor:     row.Actor,
		SubtreeID: row.SubtreeID,
		LastSeen:  row.LastSeen,
	}
}
