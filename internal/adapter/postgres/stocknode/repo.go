// Package stocknode implements the stock tree repository using PostgreSQL.
// Nodes form a forest through parent_id; subtree reads use recursive CTEs.
package stocknode

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

// Repo provides stock node persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new stock node repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var nodeColumns = []string{
	"id", "parent_id", "name", "kind", "position",
	"expected_quantity", "expiry_date", "created_at", "updated_at",
}

type nodeRow struct {
	ID               uuid.UUID  `db:"id"`
	ParentID         *uuid.UUID `db:"parent_id"`
	Name             string     `db:"name"`
	Kind             string     `db:"kind"`
	Position         int        `db:"position"`
	ExpectedQuantity *int       `db:"expected_quantity"`
	ExpiryDate       *time.Time `db:"expiry_date"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Raw SQL for recursive reads
// ---------------------------------------------------------------------------

const listSubtreesSQL = `
WITH RECURSIVE closure AS (
    SELECT n.id, n.parent_id, n.name, n.kind, n.position,
           n.expected_quantity, n.expiry_date, n.created_at, n.updated_at
    FROM stock_nodes n
    WHERE n.id = ANY($1::uuid[])
    UNION
    SELECT c.id, c.parent_id, c.name, c.kind, c.position,
           c.expected_quantity, c.expiry_date, c.created_at, c.updated_at
    FROM stock_nodes c
    JOIN closure p ON c.parent_id = p.id
)
SELECT id, parent_id, name, kind, position, expected_quantity, expiry_date, created_at, updated_at
FROM closure`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a node by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.StockNode, error) {
	sql, args, err := postgres.Psql.
		Select(nodeColumns...).
		From("stock_nodes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.StockNode{}, fmt.Errorf("build get stock_node: %w", err)
	}

	var row nodeRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		return domain.StockNode{}, postgres.MapError(err, "stock_node", id)
	}

	return toDomain(row), nil
}

// ListAll returns every node of the forest.
// Returns an empty slice (not nil) when the stock is empty.
func (r *Repo) ListAll(ctx context.Context) ([]domain.StockNode, error) {
	sql, args, err := postgres.Psql.
		Select(nodeColumns...).
		From("stock_nodes").
		OrderBy("parent_id NULLS FIRST", "kind", "position", "lower(name)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list stock_nodes: %w", err)
	}

	var rows []nodeRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock_nodes: %w", err)
	}

	return toDomainSlice(rows), nil
}

// ListSubtrees returns the given roots and all their descendants. Nested
// roots are returned once.
func (r *Repo) ListSubtrees(ctx context.Context, rootIDs []uuid.UUID) ([]domain.StockNode, error) {
	if len(rootIDs) == 0 {
		return []domain.StockNode{}, nil
	}

	var rows []nodeRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listSubtreesSQL, rootIDs); err != nil {
		return nil, fmt.Errorf("list stock subtrees: %w", err)
	}

	return toDomainSlice(rows), nil
}

// ListExpiringBefore returns ITEM nodes whose expiry date is on or before the given day.
func (r *Repo) ListExpiringBefore(ctx context.Context, day time.Time) ([]domain.StockNode, error) {
	sql, args, err := postgres.Psql.
		Select(nodeColumns...).
		From("stock_nodes").
		Where(squirrel.Eq{"kind": string(domain.NodeKindItem)}).
		Where(squirrel.NotEq{"expiry_date": nil}).
		Where(squirrel.LtOrEq{"expiry_date": day}).
		OrderBy("expiry_date", "lower(name)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expiring: %w", err)
	}

	var rows []nodeRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list expiring stock_nodes: %w", err)
	}

	return toDomainSlice(rows), nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// LockForest takes a transaction-scoped advisory lock that serializes
// structural mutations (create, move, duplicate). Must be called inside RunInTx.
func (r *Repo) LockForest(ctx context.Context) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('stock_nodes'))`); err != nil {
		return fmt.Errorf("lock stock forest: %w", err)
	}
	return nil
}

// Create inserts a node and returns it with server-assigned timestamps.
func (r *Repo) Create(ctx context.Context, n domain.StockNode) (domain.StockNode, error) {
	qty, expiry := itemFields(n)

	sql, args, err := postgres.Psql.
		Insert("stock_nodes").
		Columns("id", "parent_id", "name", "kind", "position", "expected_quantity", "expiry_date").
		Values(n.ID, n.ParentID, n.Name, string(n.Kind), n.Position, qty, expiry).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.StockNode{}, fmt.Errorf("build insert stock_node: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n.CreatedAt, &n.UpdatedAt); err != nil {
		return domain.StockNode{}, postgres.MapError(err, "stock_node", n.ID)
	}

	return n, nil
}

// CreateBatch inserts many nodes in one round trip. Parents must precede
// their children in the slice.
func (r *Repo) CreateBatch(ctx context.Context, nodes []domain.StockNode) error {
	if len(nodes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, n := range nodes {
		qty, expiry := itemFields(n)
		sql, args, err := postgres.Psql.
			Insert("stock_nodes").
			Columns("id", "parent_id", "name", "kind", "position", "expected_quantity", "expiry_date").
			Values(n.ID, n.ParentID, n.Name, string(n.Kind), n.Position, qty, expiry).
			ToSql()
		if err != nil {
			return fmt.Errorf("build batch insert stock_node: %w", err)
		}
		batch.Queue(sql, args...)
	}

	br := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer br.Close()

	for _, n := range nodes {
		if _, err := br.Exec(); err != nil {
			return postgres.MapError(err, "stock_node", n.ID)
		}
	}

	return nil
}

// Update overwrites the editable fields of a node (name, position and the
// item payload).
func (r *Repo) Update(ctx context.Context, n domain.StockNode) (domain.StockNode, error) {
	qty, expiry := itemFields(n)

	sql, args, err := postgres.Psql.
		Update("stock_nodes").
		Set("name", n.Name).
		Set("position", n.Position).
		Set("expected_quantity", qty).
		Set("expiry_date", expiry).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": n.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.StockNode{}, fmt.Errorf("build update stock_node: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n.CreatedAt, &n.UpdatedAt); err != nil {
		return domain.StockNode{}, postgres.MapError(err, "stock_node", n.ID)
	}

	return n, nil
}

// Move sets a new parent (nil for root) and position.
func (r *Repo) Move(ctx context.Context, id uuid.UUID, parentID *uuid.UUID, position int) error {
	sql, args, err := postgres.Psql.
		Update("stock_nodes").
		Set("parent_id", parentID).
		Set("position", position).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build move stock_node: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "stock_node", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock_node %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a node and, through ON DELETE CASCADE, its subtree.
// A node that already carries verification history cannot be deleted and
// yields domain.ErrConflict.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Psql.
		Delete("stock_nodes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete stock_node: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		if postgres.IsForeignKeyViolation(err, "verification_records_node_id_fkey") {
			return fmt.Errorf("stock_node %s has verification history: %w", id, domain.ErrConflict)
		}
		return postgres.MapError(err, "stock_node", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock_node %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func itemFields(n domain.StockNode) (*int, *time.Time) {
	if n.Item == nil {
		return nil, nil
	}
	return n.Item.ExpectedQuantity, n.Item.ExpiryDate
}

func toDomain(row nodeRow) domain.StockNode {
	kind := domain.NodeKind(row.Kind)
	if kind == domain.NodeKindItem {
		n := domain.NewItemNode(row.ID, row.ParentID, row.Name, row.Position, domain.ItemData{
			ExpectedQuantity: row.ExpectedQuantity,
			ExpiryDate:       row.ExpiryDate,
		})
		n.CreatedAt, n.UpdatedAt = row.CreatedAt, row.UpdatedAt
		return n
	}

	n := domain.NewGroupNode(row.ID, row.ParentID, row.Name, row.Position)
	n.CreatedAt, n.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return n
}

func toDomainSlice(rows []nodeRow) []domain.StockNode {
	nodes := make([]domain.StockNode, len(rows))
	for i, row := range rows {
		nodes[i] = toDomain(row)
	}
	return nodes
}
