package restock

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

const (
	maxNameLength = 200
	maxNoteLength = 1000
	maxLotLength  = 100
)

// CreateItemInput holds the parameters for a new restock item.
type CreateItemInput struct {
	Name         string
	Note         *string
	TargetNodeID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateItemInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateName(i.Name)...)
	errs = append(errs, validateText("note", i.Note, maxNoteLength)...)
	if i.TargetNodeID != nil && *i.TargetNodeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_node_id", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateItemInput is a partial update of a restock item. ClearTarget
// removes the target node.
type UpdateItemInput struct {
	ID           uuid.UUID
	Name         *string
	Note         *string
	TargetNodeID *uuid.UUID
	ClearTarget  bool
}

// Validate checks all fields and collects all errors.
func (i UpdateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Name != nil {
		errs = append(errs, validateName(*i.Name)...)
	}
	errs = append(errs, validateText("note", i.Note, maxNoteLength)...)
	if i.ClearTarget && i.TargetNodeID != nil {
		errs = append(errs, domain.FieldError{Field: "target_node_id", Message: "cannot set and clear at once"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateBatchInput holds the parameters for a new batch.
type CreateBatchInput struct {
	ItemID     uuid.UUID
	Quantity   int
	ExpiryDate *time.Time
	Lot        *string
	Note       *string
}

// Validate checks all fields and collects all errors.
func (i CreateBatchInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.Quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must not be negative"})
	}
	errs = append(errs, validateText("lot", i.Lot, maxLotLength)...)
	errs = append(errs, validateText("note", i.Note, maxNoteLength)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateBatchInput is a partial update of a batch. ClearExpiry removes the
// expiry date.
type UpdateBatchInput struct {
	ID          uuid.UUID
	Quantity    *int
	ExpiryDate  *time.Time
	ClearExpiry bool
	Lot         *string
	Note        *string
}

// Validate checks all fields and collects all errors.
func (i UpdateBatchInput) Validate() error {
	var errs []domain.FieldError

	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Quantity != nil && *i.Quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must not be negative"})
	}
	if i.ClearExpiry && i.ExpiryDate != nil {
		errs = append(errs, domain.FieldError{Field: "expiry_date", Message: "cannot set and clear at once"})
	}
	errs = append(errs, validateText("lot", i.Lot, maxLotLength)...)
	errs = append(errs, validateText("note", i.Note, maxNoteLength)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
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

func validateText(field string, v *string, limit int) []domain.FieldError {
	if v != nil && len(*v) > limit {
		return []domain.FieldError{{Field: field, Message: "too long"}}
	}
	return nil
}

// blankToNil trims v and maps an empty result to nil.
func blankToNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
