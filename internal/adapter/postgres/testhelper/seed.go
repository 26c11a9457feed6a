package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedGroup inserts a GROUP node under parent (nil for a root).
func SeedGroup(t *testing.T, pool *pgxpool.Pool, parent *uuid.UUID, name string) domain.StockNode {
	t.Helper()

	node := domain.NewGroupNode(uuid.New(), parent, name+" "+uniqueSuffix(), 0)
	insertNode(t, pool, node)
	return node
}

// SeedItem inserts an ITEM node under parent.
func SeedItem(t *testing.T, pool *pgxpool.Pool, parent uuid.UUID, name string) domain.StockNode {
	t.Helper()

	node := domain.NewItemNode(uuid.New(), &parent, name+" "+uniqueSuffix(), 0, domain.ItemData{})
	insertNode(t, pool, node)
	return node
}

func insertNode(t *testing.T, pool *pgxpool.Pool, n domain.StockNode) {
	t.Helper()

	var qty *int
	var expiry *time.Time
	if n.Item != nil {
		qty, expiry = n.Item.ExpectedQuantity, n.Item.ExpiryDate
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO stock_nodes (id, parent_id, name, kind, position, expected_quantity, expiry_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.ParentID, n.Name, string(n.Kind), n.Position, qty, expiry,
	)
	if err != nil {
		t.Fatalf("testhelper: insert stock node %q: %v", n.Name, err)
	}
}

// BagTree is the common fixture: a root group with two items and an empty
// sibling group.
type BagTree struct {
	Bag    domain.StockNode
	Gloves domain.StockNode
	Mask   domain.StockNode
	Spare  domain.StockNode
}

// SeedBagTree inserts Bag -> (Gloves, Mask) and an empty Spare root group.
func SeedBagTree(t *testing.T, pool *pgxpool.Pool) BagTree {
	t.Helper()

	bag := SeedGroup(t, pool, nil, "Bag")
	return BagTree{
		Bag:    bag,
		Gloves: SeedItem(t, pool, bag.ID, "Gloves"),
		Mask:   SeedItem(t, pool, bag.ID, "Mask"),
		Spare:  SeedGroup(t, pool, nil, "Spare"),
	}
}

// SeedEvent creates an OPEN event over the given roots.
func SeedEvent(t *testing.T, pool *pgxpool.Pool, roots ...uuid.UUID) domain.Event {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	event := domain.Event{
		ID:        uuid.New(),
		Title:     "Event " + uniqueSuffix(),
		Status:    domain.EventStatusOpen,
		RootIDs:   roots,
		CreatedBy: "seed",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO events (id, title, status, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.Title, string(event.Status), event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEvent insert event: %v", err)
	}

	for _, root := range roots {
		_, err := pool.Exec(ctx,
			`INSERT INTO event_roots (event_id, node_id) VALUES ($1, $2)`,
			event.ID, root,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedEvent insert root: %v", err)
		}
	}

	return event
}

// CloseEvent marks an event CLOSED.
func CloseEvent(t *testing.T, pool *pgxpool.Pool, eventID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE events SET status = 'CLOSED', closed_at = now(), updated_at = now() WHERE id = $1`,
		eventID,
	)
	if err != nil {
		t.Fatalf("testhelper: CloseEvent: %v", err)
	}
}

// CountRows returns the number of rows in table matching the where clause.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table+" WHERE "+where, args...).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
