package periodic

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

const maxCommentLength = 1000

// VerifyInput holds the parameters for recording a periodic item check.
type VerifyInput struct {
	NodeID      uuid.UUID
	Status      domain.VerificationStatus
	IssueCode   *domain.IssueCode
	Comment     *string
	ObservedQty *int
	MissingQty  *int
}

// Validate checks all fields and collects all errors.
func (i VerifyInput) Validate() error {
	var errs []domain.FieldError

	if i.NodeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "node_id", Message: "required"})
	}
	if !i.Status.IsRecordable() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be OK or NOT_OK"})
	}
	if i.IssueCode != nil {
		if !i.IssueCode.IsValid() {
			errs = append(errs, domain.FieldError{Field: "issue_code", Message: "must be MISSING or DAMAGED"})
		} else if i.Status != domain.StatusNotOK {
			errs = append(errs, domain.FieldError{Field: "issue_code", Message: "only allowed with NOT_OK"})
		}
	}
	errs = append(errs, validateComment(i.Comment)...)
	if i.ObservedQty != nil && *i.ObservedQty < 0 {
		errs = append(errs, domain.FieldError{Field: "observed_qty", Message: "must not be negative"})
	}
	if i.MissingQty != nil && *i.MissingQty < 0 {
		errs = append(errs, domain.FieldError{Field: "missing_qty", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReplaceInput takes Quantity units from a restock batch to replace an
// item. Zero Quantity means one. ExpiryDate overrides the batch's date as
// the item's new expiry.
type ReplaceInput struct {
	NodeID     uuid.UUID
	BatchID    uuid.UUID
	Quantity   int
	ExpiryDate *time.Time
	Comment    *string
}

// Validate checks all fields and collects all errors.
func (i ReplaceInput) Validate() error {
	var errs []domain.FieldError

	if i.NodeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "node_id", Message: "required"})
	}
	if i.BatchID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "batch_id", Message: "required"})
	}
	if i.Quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be positive"})
	}
	errs = append(errs, validateComment(i.Comment)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ReplaceInput) quantity() int {
	if i.Quantity == 0 {
		return 1
	}
	return i.Quantity
}

func validateComment(c *string) []domain.FieldError {
	if c != nil && len(*c) > maxCommentLength {
		return []domain.FieldError{{Field: "comment", Message: "max 1000 characters"}}
	}
	return nil
}
