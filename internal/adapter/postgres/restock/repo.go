// Package restock implements storage of spare supplies: restock items and
// the dated batches that hold their quantities.
package restock

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

// Repo provides restock persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new restock repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var itemColumns = []string{
	"i.id", "i.name", "i.note", "i.target_node_id", "i.created_at", "i.updated_at",
	"COALESCE(SUM(b.quantity), 0) AS total_quantity",
}

var batchColumns = []string{
	"id", "item_id", "quantity", "expiry_date", "lot", "note", "created_at", "updated_at",
}

type itemRow struct {
	ID            uuid.UUID  `db:"id"`
	Name          string     `db:"name"`
	Note          *string    `db:"note"`
	TargetNodeID  *uuid.UUID `db:"target_node_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	TotalQuantity int        `db:"total_quantity"`
}

type batchRow struct {
	ID         uuid.UUID  `db:"id"`
	ItemID     uuid.UUID  `db:"item_id"`
	Quantity   int        `db:"quantity"`
	ExpiryDate *time.Time `db:"expiry_date"`
	Lot        *string    `db:"lot"`
	Note       *string    `db:"note"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

type optionRow struct {
	batchRow
	ItemName     string     `db:"item_name"`
	ItemNote     *string    `db:"item_note"`
	TargetNodeID *uuid.UUID `db:"target_node_id"`
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

func itemSelect() squirrel.SelectBuilder {
	return postgres.Psql.
		Select(itemColumns...).
		From("restock_items i").
		LeftJoin("restock_batches b ON b.item_id = i.id").
		GroupBy("i.id")
}

// ListItems returns every restock item with its total batch quantity,
// ordered by name.
func (r *Repo) ListItems(ctx context.Context) ([]domain.RestockItem, error) {
	sql, args, err := itemSelect().OrderBy("lower(i.name)", "i.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list restock items: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list restock items: %w", err)
	}

	out := make([]domain.RestockItem, len(rows))
	for i, row := range rows {
		out[i] = toItem(row)
	}
	return out, nil
}

// GetItem returns one restock item with its total batch quantity.
func (r *Repo) GetItem(ctx context.Context, id uuid.UUID) (domain.RestockItem, error) {
	sql, args, err := itemSelect().Where(squirrel.Eq{"i.id": id}).ToSql()
	if err != nil {
		return domain.RestockItem{}, fmt.Errorf("build get restock item: %w", err)
	}

	var row itemRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.RestockItem{}, postgres.MapError(err, "restock_item", id)
	}
	return toItem(row), nil
}

// CreateItem inserts a restock item.
func (r *Repo) CreateItem(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error) {
	sql, args, err := postgres.Psql.
		Insert("restock_items").
		Columns("id", "name", "note", "target_node_id").
		Values(it.ID, it.Name, it.Note, it.TargetNodeID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.RestockItem{}, fmt.Errorf("build insert restock item: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&it.CreatedAt, &it.UpdatedAt); err != nil {
		return domain.RestockItem{}, postgres.MapError(err, "restock_item", it.ID)
	}
	return it, nil
}

// UpdateItem rewrites the name, note and target of a restock item.
func (r *Repo) UpdateItem(ctx context.Context, it domain.RestockItem) (domain.RestockItem, error) {
	sql, args, err := postgres.Psql.
		Update("restock_items").
		Set("name", it.Name).
		Set("note", it.Note).
		Set("target_node_id", it.TargetNodeID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": it.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.RestockItem{}, fmt.Errorf("build update restock item: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&it.CreatedAt, &it.UpdatedAt); err != nil {
		return domain.RestockItem{}, postgres.MapError(err, "restock_item", it.ID)
	}
	return it, nil
}

// DeleteItem removes a restock item and its batches.
func (r *Repo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, "restock_items", "restock_item", id)
}

// ---------------------------------------------------------------------------
// Batches
// ---------------------------------------------------------------------------

// ListBatches returns batches ordered by expiry date (undated last). A nil
// itemID lists every batch.
func (r *Repo) ListBatches(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error) {
	builder := postgres.Psql.
		Select(batchColumns...).
		From("restock_batches").
		OrderBy("expiry_date ASC NULLS LAST", "id")
	if itemID != nil {
		builder = builder.Where(squirrel.Eq{"item_id": *itemID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list restock batches: %w", err)
	}

	var rows []batchRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list restock batches: %w", err)
	}

	out := make([]domain.RestockBatch, len(rows))
	for i, row := range rows {
		out[i] = toBatch(row)
	}
	return out, nil
}

// GetBatch returns one batch.
func (r *Repo) GetBatch(ctx context.Context, id uuid.UUID) (domain.RestockBatch, error) {
	return r.getBatch(ctx, id, "")
}

// GetBatchForUpdate returns one batch and locks its row until the
// surrounding transaction ends. Must be called inside RunInTx.
func (r *Repo) GetBatchForUpdate(ctx context.Context, id uuid.UUID) (domain.RestockBatch, error) {
	return r.getBatch(ctx, id, "FOR UPDATE")
}

func (r *Repo) getBatch(ctx context.Context, id uuid.UUID, lock string) (domain.RestockBatch, error) {
	builder := postgres.Psql.
		Select(batchColumns...).
		From("restock_batches").
		Where(squirrel.Eq{"id": id})
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return domain.RestockBatch{}, fmt.Errorf("build get restock batch: %w", err)
	}

	var row batchRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.RestockBatch{}, postgres.MapError(err, "restock_batch", id)
	}
	return toBatch(row), nil
}

// CreateBatch inserts a batch.
func (r *Repo) CreateBatch(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error) {
	sql, args, err := postgres.Psql.
		Insert("restock_batches").
		Columns("id", "item_id", "quantity", "expiry_date", "lot", "note").
		Values(b.ID, b.ItemID, b.Quantity, b.ExpiryDate, b.Lot, b.Note).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.RestockBatch{}, fmt.Errorf("build insert restock batch: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return domain.RestockBatch{}, postgres.MapError(err, "restock_batch", b.ID)
	}
	return b, nil
}

// UpdateBatch rewrites every mutable field of a batch.
func (r *Repo) UpdateBatch(ctx context.Context, b domain.RestockBatch) (domain.RestockBatch, error) {
	sql, args, err := postgres.Psql.
		Update("restock_batches").
		Set("item_id", b.ItemID).
		Set("quantity", b.Quantity).
		Set("expiry_date", b.ExpiryDate).
		Set("lot", b.Lot).
		Set("note", b.Note).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.RestockBatch{}, fmt.Errorf("build update restock batch: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return domain.RestockBatch{}, postgres.MapError(err, "restock_batch", b.ID)
	}
	return b, nil
}

// DeleteBatch removes a batch.
func (r *Repo) DeleteBatch(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, "restock_batches", "restock_batch", id)
}

// ListOptions returns the non-empty batches whose item targets nodeID or
// has no target. Preferred marks the explicitly targeted ones; the result
// is unordered.
func (r *Repo) ListOptions(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error) {
	sql, args, err := postgres.Psql.
		Select(
			"b.id", "b.item_id", "b.quantity", "b.expiry_date", "b.lot", "b.note", "b.created_at", "b.updated_at",
			"i.name AS item_name", "i.note AS item_note", "i.target_node_id",
		).
		From("restock_batches b").
		Join("restock_items i ON i.id = b.item_id").
		Where(squirrel.Gt{"b.quantity": 0}).
		Where(squirrel.Or{
			squirrel.Eq{"i.target_node_id": nodeID},
			squirrel.Eq{"i.target_node_id": nil},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list restock options: %w", err)
	}

	var rows []optionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list restock options: %w", err)
	}

	out := make([]domain.RestockOption, len(rows))
	for i, row := range rows {
		out[i] = domain.RestockOption{
			Item: domain.RestockItem{
				ID:           row.ItemID,
				Name:         row.ItemName,
				Note:         row.ItemNote,
				TargetNodeID: row.TargetNodeID,
			},
			Batch:     toBatch(row.batchRow),
			Preferred: row.TargetNodeID != nil && *row.TargetNodeID == nodeID,
		}
	}
	return out, nil
}

func (r *Repo) delete(ctx context.Context, table, entity string, id uuid.UUID) error {
	sql, args, err := postgres.Psql.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

func toItem(row itemRow) domain.RestockItem {
	return domain.RestockItem{
		ID:            row.ID,
		Name:          row.Name,
		Note:          row.Note,
		TargetNodeID:  row.TargetNodeID,
		TotalQuantity: row.TotalQuantity,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toBatch(row batchRow) domain.RestockBatch {
	return domain.RestockBatch{
		ID:         row.ID,
		ItemID:     row.ItemID,
		Quantity:   row.Quantity,
		ExpiryDate: row.ExpiryDate,
		Lot:        row.Lot,
		Note:       row.Note,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
