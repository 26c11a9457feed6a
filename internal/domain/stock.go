package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StockNode is one node of the inventory forest. It is a tagged variant:
// a GROUP carries no leaf payload, an ITEM always carries Item.
type StockNode struct {
	ID        uuid.UUID
	ParentID  *uuid.UUID
	Name      string
	Kind      NodeKind
	Position  int
	Item      *ItemData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemData is the leaf payload of an ITEM node.
type ItemData struct {
	ExpectedQuantity *int
	ExpiryDate       *time.Time
}

// NewGroupNode builds a GROUP node.
func NewGroupNode(id uuid.UUID, parentID *uuid.UUID, name string, position int) StockNode {
	return StockNode{
		ID:       id,
		ParentID: parentID,
		Name:     strings.TrimSpace(name),
		Kind:     NodeKindGroup,
		Position: position,
	}
}

// NewItemNode builds an ITEM node with its leaf payload.
func NewItemNode(id uuid.UUID, parentID *uuid.UUID, name string, position int, data ItemData) StockNode {
	return StockNode{
		ID:       id,
		ParentID: parentID,
		Name:     strings.TrimSpace(name),
		Kind:     NodeKindItem,
		Position: position,
		Item:     &data,
	}
}

func (n StockNode) IsGroup() bool { return n.Kind == NodeKindGroup }

func (n StockNode) IsItem() bool { return n.Kind == NodeKindItem }

func (n StockNode) IsRoot() bool { return n.ParentID == nil }

// Validate checks that the node's payload matches its kind.
func (n StockNode) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(n.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	} else if len(n.Name) > 200 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 200 characters"})
	}

	switch n.Kind {
	case NodeKindGroup:
		if n.Item != nil {
			errs = append(errs, FieldError{Field: "kind", Message: "group cannot carry item data"})
		}
	case NodeKindItem:
		if n.Item == nil {
			errs = append(errs, FieldError{Field: "kind", Message: "item data required"})
		} else if n.Item.ExpectedQuantity != nil && *n.Item.ExpectedQuantity < 0 {
			errs = append(errs, FieldError{Field: "expected_quantity", Message: "must be >= 0"})
		}
	default:
		errs = append(errs, FieldError{Field: "kind", Message: "must be GROUP or ITEM"})
	}

	if n.ParentID != nil && *n.ParentID == n.ID {
		errs = append(errs, FieldError{Field: "parent_id", Message: "node cannot be its own parent"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// ExpiryState classifies the item's expiry date relative to now. Items
// without a date are OK. days is the number of whole days left (negative
// when expired).
func (d ItemData) ExpiryState(now time.Time, window int) (state ExpiryState, days int) {
	if d.ExpiryDate == nil {
		return ExpiryOK, 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exp := time.Date(d.ExpiryDate.Year(), d.ExpiryDate.Month(), d.ExpiryDate.Day(), 0, 0, 0, 0, time.UTC)
	days = int(exp.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return ExpiryExpired, days
	case days <= window:
		return ExpirySoon, days
	default:
		return ExpiryOK, days
	}
}

// ExpiryEntry is one row of the expiry report.
type ExpiryEntry struct {
	Node     StockNode
	State    ExpiryState
	DaysLeft int
}
