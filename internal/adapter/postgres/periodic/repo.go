// Package periodic implements the event-less verification ledger used for
// routine inventory rounds. Like the event ledger it is append-only; a reset
// appends TODO records instead of deleting anything.
package periodic

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

// Repo provides periodic ledger persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new periodic ledger repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var recordColumns = []string{
	"id", "seq", "node_id", "status", "issue_code", "actor",
	"comment", "observed_qty", "missing_qty", "created_at",
}

type recordRow struct {
	ID          uuid.UUID `db:"id"`
	Seq         int64     `db:"seq"`
	NodeID      uuid.UUID `db:"node_id"`
	Status      string    `db:"status"`
	IssueCode   *string   `db:"issue_code"`
	Actor       string    `db:"actor"`
	Comment     *string   `db:"comment"`
	ObservedQty *int      `db:"observed_qty"`
	MissingQty  *int      `db:"missing_qty"`
	CreatedAt   time.Time `db:"created_at"`
}

// Append stores a new record. created_at and seq are assigned by the database.
func (r *Repo) Append(ctx context.Context, rec domain.VerificationRecord) (domain.VerificationRecord, error) {
	var issue *string
	if rec.IssueCode != nil {
		s := string(*rec.IssueCode)
		issue = &s
	}

	sql, args, err := postgres.Psql.
		Insert("periodic_records").
		Columns("id", "node_id", "status", "issue_code", "actor", "comment", "observed_qty", "missing_qty").
		Values(rec.ID, rec.NodeID, string(rec.Status), issue, rec.Actor, rec.Comment, rec.ObservedQty, rec.MissingQty).
		Suffix("RETURNING seq, created_at").
		ToSql()
	if err != nil {
		return domain.VerificationRecord{}, fmt.Errorf("build insert periodic record: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&rec.Seq, &rec.CreatedAt); err != nil {
		return domain.VerificationRecord{}, postgres.MapError(err, "periodic_record", rec.ID)
	}

	rec.EventID = uuid.Nil
	return rec, nil
}

// LockRoot serializes resets and replacements under one root for the rest
// of the transaction.
func (r *Repo) LockRoot(ctx context.Context, rootID uuid.UUID) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext('periodic:' || $1::text))`, rootID,
	); err != nil {
		return fmt.Errorf("lock periodic root %s: %w", rootID, err)
	}
	return nil
}

// LatestByNodes returns the latest record of every given node that has one.
func (r *Repo) LatestByNodes(ctx context.Context, nodeIDs []uuid.UUID) ([]domain.VerificationRecord, error) {
	if len(nodeIDs) == 0 {
		return []domain.VerificationRecord{}, nil
	}

	sql, args, err := postgres.Psql.
		Select(recordColumns...).
		Options("DISTINCT ON (node_id)").
		From("periodic_records").
		Where(squirrel.Eq{"node_id": nodeIDs}).
		OrderBy("node_id", "created_at DESC", "seq DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest periodic records: %w", err)
	}

	return r.selectRecords(ctx, "latest periodic records", sql, args)
}

// History returns records of the given nodes, newest first.
func (r *Repo) History(ctx context.Context, nodeIDs []uuid.UUID, limit int) ([]domain.VerificationRecord, error) {
	if len(nodeIDs) == 0 {
		return []domain.VerificationRecord{}, nil
	}

	builder := postgres.Psql.
		Select(recordColumns...).
		From("periodic_records").
		Where(squirrel.Eq{"node_id": nodeIDs}).
		OrderBy("created_at DESC", "seq DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build periodic history: %w", err)
	}

	return r.selectRecords(ctx, "periodic history", sql, args)
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
