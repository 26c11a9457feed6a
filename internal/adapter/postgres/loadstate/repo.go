// Package loadstate implements per-event group load flags using PostgreSQL.
package loadstate

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

// Repo provides load state persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new load state repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var stateColumns = []string{"event_id", "node_id", "loaded", "set_by", "vehicle_label", "updated_at", "version"}

const returningState = "RETURNING event_id, node_id, loaded, set_by, vehicle_label, updated_at, version"

type stateRow struct {
	EventID      uuid.UUID `db:"event_id"`
	NodeID       uuid.UUID `db:"node_id"`
	Loaded       bool      `db:"loaded"`
	SetBy        string    `db:"set_by"`
	VehicleLabel *string   `db:"vehicle_label"`
	UpdatedAt    time.Time `db:"updated_at"`
	Version      int64     `db:"version"`
}

type stateKey struct {
	eventID, nodeID uuid.UUID
}

func (k stateKey) String() string { return k.eventID.String() + "/" + k.nodeID.String() }

// Lock takes a transaction-scoped advisory lock on (event, node). Concurrent
// toggles of the same group serialize on it. Must be called inside RunInTx.
func (r *Repo) Lock(ctx context.Context, eventID, nodeID uuid.UUID) error {
	key := stateKey{eventID, nodeID}
	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key.String())
	if err != nil {
		return postgres.MapError(err, "load_state lock", key)
	}
	return nil
}

// ListByEvent returns every load state row of the event.
func (r *Repo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.LoadState, error) {
	sql, args, err := postgres.Psql.
		Select(stateColumns...).
		From("load_states").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("node_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list load_states: %w", err)
	}

	var rows []stateRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list load_states: %w", err)
	}

	out := make([]domain.LoadState, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

// Upsert writes the state. Unloading keeps the previous vehicle label.
func (r *Repo) Upsert(ctx context.Context, s domain.LoadState) (domain.LoadState, error) {
	sql, args, err := postgres.Psql.
		Insert("load_states").
		Columns("event_id", "node_id", "loaded", "set_by", "vehicle_label").
		Values(s.EventID, s.NodeID, s.Loaded, s.SetBy, s.VehicleLabel).
		Suffix(`ON CONFLICT (event_id, node_id) DO UPDATE SET
			loaded = EXCLUDED.loaded,
			set_by = EXCLUDED.set_by,
			vehicle_label = COALESCE(EXCLUDED.vehicle_label, load_states.vehicle_label),
			updated_at = now(),
			version = load_states.version + 1
		` + returningState).
		ToSql()
	if err != nil {
		return domain.LoadState{}, fmt.Errorf("build upsert load_state: %w", err)
	}

	var row stateRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.LoadState{}, postgres.MapError(err, "load_state", stateKey{s.EventID, s.NodeID})
	}
	return toDomain(row), nil
}

// ClearLoaded unloads the given groups of an event and returns the new state
// of those that were loaded before the call.
func (r *Repo) ClearLoaded(ctx context.Context, eventID uuid.UUID, nodeIDs []uuid.UUID, setBy string) ([]domain.LoadState, error) {
	if len(nodeIDs) == 0 {
		return nil, nil
	}

	sql, args, err := postgres.Psql.
		Update("load_states").
		Set("loaded", false).
		Set("set_by", setBy).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"event_id": eventID, "node_id": nodeIDs, "loaded": true}).
		Suffix(returningState).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build clear load_states: %w", err)
	}

	var rows []stateRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("clear load_states: %w", err)
	}

	out := make([]domain.LoadState, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

func toDomain(row stateRow) domain.LoadState {
	return domain.LoadState{
		EventID:      row.EventID,
		NodeID:       row.NodeID,
		Loaded:       row.Loaded,
		SetBy:        row.SetBy,
		VehicleLabel: row.VehicleLabel,
		UpdatedAt:    row.UpdatedAt,
		Version:      row.Version,
	}
}
