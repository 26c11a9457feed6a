// Package verification implements the append-only verification ledger using
// PostgreSQL. Records are never updated or deleted; the latest record per
// item is the one with the greatest (created_at, seq).
package verification

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

// Repo provides verification ledger persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new verification repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var recordColumns = []string{
	"id", "seq", "event_id", "node_id", "status", "issue_code", "actor",
	"comment", "observed_qty", "missing_qty", "created_at",
}

type recordRow struct {
	ID          uuid.UUID `db:"id"`
	Seq         int64     `db:"seq"`
	EventID     uuid.UUID `db:"event_id"`
	NodeID      uuid.UUID `db:"node_id"`
	Status      string    `db:"status"`
	IssueCode   *string   `db:"issue_code"`
	Actor       string    `db:"actor"`
	Comment     *string   `db:"comment"`
	ObservedQty *int      `db:"observed_qty"`
	MissingQty  *int      `db:"missing_qty"`
	CreatedAt   time.Time `db:"created_at"`
}

type nodeCountRow struct {
	NodeID uuid.UUID `db:"node_id"`
	Count  int       `db:"cnt"`
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append stores a new record. created_at and seq are assigned by the database.
func (r *Repo) Append(ctx context.Context, rec domain.VerificationRecord) (domain.VerificationRecord, error) {
	var issue *string
	if rec.IssueCode != nil {
		s := string(*rec.IssueCode)
		issue = &s
	}

	sql, args, err := postgres.Psql.
		Insert("verification_records").
		Columns("id", "event_id", "node_id", "status", "issue_code", "actor", "comment", "observed_qty", "missing_qty").
		Values(rec.ID, rec.EventID, rec.NodeID, string(rec.Status), issue, rec.Actor, rec.Comment, rec.ObservedQty, rec.MissingQty).
		Suffix("RETURNING seq, created_at").
		ToSql()
	if err != nil {
		return domain.VerificationRecord{}, fmt.Errorf("build insert verification: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&rec.Seq, &rec.CreatedAt); err != nil {
		return domain.VerificationRecord{}, postgres.MapError(err, "verification_record", rec.ID)
	}

	return rec, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// LatestByEvent returns the latest record of every verified item in the event.
func (r *Repo) LatestByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.VerificationRecord, error) {
	sql, args, err := postgres.Psql.
		Select(recordColumns...).
		Options("DISTINCT ON (node_id)").
		From("verification_records").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("node_id", "created_at DESC", "seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest verifications: %w", err)
	}

	return r.selectRecords(ctx, "latest verifications", sql, args)
}

// History returns every record of one item in the event, newest first.
func (r *Repo) History(ctx context.Context, eventID, nodeID uuid.UUID, limit int) ([]domain.VerificationRecord, error) {
	builder := postgres.Psql.
		Select(recordColumns...).
		From("verification_records").
		Where(squirrel.Eq{"event_id": eventID, "node_id": nodeID}).
		OrderBy("created_at DESC", "seq DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build verification history: %w", err)
	}

	return r.selectRecords(ctx, "verification history", sql, args)
}

// CountByNode returns how many records each item has in the event. Items
// never verified are absent from the map.
func (r *Repo) CountByNode(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]int, error) {
	sql, args, err := postgres.Psql.
		Select("node_id", "count(*) AS cnt").
		From("verification_records").
		Where(squirrel.Eq{"event_id": eventID}).
		GroupBy("node_id").
		OrderBy("node_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count verifications: %w", err)
	}

	var rows []nodeCountRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("count verifications: %w", err)
	}

	out := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		out[row.NodeID] = row.Count
	}
	return out, nil
}

func (r *Repo) selectRecords(ctx context.Context, what, sql string, args []any) ([]domain.VerificationRecord, error) {
	var rows []recordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	out := make([]domain.VerificationRecord, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

func toDomain(row recordRow) domain.VerificationRecord {
	rec := domain.VerificationRecord{
		ID:          row.ID,
		Seq:         row.Seq,
		EventID:     row.EventID,
		NodeID:      row.NodeID,
		Status:      domain.VerificationStatus(row.Status),
		Actor:       row.Actor,
		Comment:     row.Comment,
		ObservedQty: row.ObservedQty,
		MissingQty:  row.MissingQty,
		CreatedAt:   row.CreatedAt,
	}
	if row.IssueCode != nil {
		code := domain.IssueCode(*row.IssueCode)
		rec.IssueCode = &code
	}
	return rec
}
