package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RestockItem is a kind of spare supply kept in reserve. TargetNodeID, when
// set, is the stock item it usually replaces.
type RestockItem struct {
	ID            uuid.UUID
	Name          string
	Note          *string
	TargetNodeID  *uuid.UUID
	TotalQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestockBatch is a quantity of one restock item sharing an expiry date and lot.
type RestockBatch struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	Quantity   int
	ExpiryDate *time.Time
	Lot        *string
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Take removes up to qty units and returns how many were taken.
func (b *RestockBatch) Take(qty int) int {
	taken := min(qty, b.Quantity)
	if taken < 0 {
		taken = 0
	}
	b.Quantity -= taken
	return taken
}

// RestockOption is a batch that can replace a given stock item.
// Preferred is set when the batch's item targets that node explicitly.
type RestockOption struct {
	Item      RestockItem
	Batch     RestockBatch
	Preferred bool
}

// SortRestockOptions orders options preferred first, then by item name,
// expiry date (undated last) and batch id.
func SortRestockOptions(opts []RestockOption) {
	slices.SortStableFunc(opts, func(a, b RestockOption) int {
		if a.Preferred != b.Preferred {
			if a.Preferred {
				return -1
			}
			return 1
		}
		if c := strings.Compare(strings.ToLower(a.Item.Name), strings.ToLower(b.Item.Name)); c != 0 {
			return c
		}
		if c := compareExpiry(a.Batch.ExpiryDate, b.Batch.ExpiryDate); c != 0 {
			return c
		}
		return strings.Compare(a.Batch.ID.String(), b.Batch.ID.String())
	})
}

func compareExpiry(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(a.Unix(), b.Unix())
}
