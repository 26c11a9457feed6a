package stock

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

const maxNameLength = 200

// CreateNodeInput holds the parameters for creating a stock node.
type CreateNodeInput struct {
	ParentID         *uuid.UUID
	Name             string
	Kind             domain.NodeKind
	Position         int
	ExpectedQuantity *int
	ExpiryDate       *time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateNodeInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName(i.Name)...)

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be GROUP or ITEM"})
	}
	if i.Kind == domain.NodeKindGroup && (i.ExpectedQuantity != nil || i.ExpiryDate != nil) {
		errs = append(errs, domain.FieldError{Field: "type", Message: "a group has no quantity or expiry date"})
	}
	if i.ExpectedQuantity != nil && *i.ExpectedQuantity < 0 {
		errs = append(errs, domain.FieldError{Field: "expected_quantity", Message: "must not be negative"})
	}
	if i.Position < 0 {
		errs = append(errs, domain.FieldError{Field: "position", Message: "must not be negative"})
	}
	if i.ParentID != nil && *i.ParentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateNodeInput holds a partial update of a stock node. Nil fields are
// left unchanged; ClearExpiry removes the expiry date.
type UpdateNodeInput struct {
	ID               uuid.UUID
	Name             *string
	Position         *int
	ExpectedQuantity *int
	ExpiryDate       *time.Time
	ClearExpiry      bool
}

// Validate checks all fields and collects all errors.
func (i UpdateNodeInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	if i.Position != nil && *i.Position < 0 {
		errs = append(errs, domain.FieldError{Field: "position", Message: "must not be negative"})
	}
	if i.ExpectedQuantity != nil && *i.ExpectedQuantity < 0 {
		errs = append(errs, domain.FieldError{Field: "expected_quantity", Message: "must not be negative"})
	}
	if i.ClearExpiry && i.ExpiryDate != nil {
		errs = append(errs, domain.FieldError{Field: "expiry_date", Message: "cannot set and clear at once"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateNodeInput) touchesItemFields() bool {
	return i.ExpectedQuantity != nil || i.ExpiryDate != nil || i.ClearExpiry
}

// MoveNodeInput reparents a node. A nil ParentID makes it a root.
type MoveNodeInput struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Position int
}

// Validate checks all fields and collects all errors.
func (i MoveNodeInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.ParentID != nil && *i.ParentID == i.ID {
		errs = append(errs, domain.FieldError{Field: "parent_id", Message: "node cannot be its own parent"})
	}
	if i.Position < 0 {
		errs = append(errs, domain.FieldError{Field: "position", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DuplicateSubtreeInput copies a subtree. A nil ParentID places the copy
// next to the source.
type DuplicateSubtreeInput struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DuplicateSubtreeInput) Validate() error {
	if i.ID == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}
	return nil
}

func validateName(name string) []domain.FieldError {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return []domain.FieldError{{Field: "name", Message: "required"}}
	}
	if len(trimmed) > maxNameLength {
		return []domain.FieldError{{Field: "name", Message: "max 200 characters"}}
	}
	return nil
}
