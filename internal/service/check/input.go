package check

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

const (
	maxActorLength   = 100
	maxCommentLength = 1000
	maxVehicleLength = 100
)

// RecordVerificationInput holds the parameters for recording an item check.
type RecordVerificationInput struct {
	EventID     uuid.UUID
	NodeID      uuid.UUID
	Status      domain.VerificationStatus
	IssueCode   *domain.IssueCode
	Actor       string
	Comment     *string
	ObservedQty *int
	MissingQty  *int
}

// Validate checks all fields and collects all errors.
func (i RecordVerificationInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	if i.NodeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "node_id", Message: "required"})
	}
	errs = append(errs, validateActor(i.Actor)...)

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
	if i.Comment != nil && len(*i.Comment) > maxCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 1000 characters"})
	}
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

// SetLoadedInput holds the parameters for toggling a group's load state.
type SetLoadedInput struct {
	EventID      uuid.UUID
	NodeID       uuid.UUID
	Loaded       bool
	Actor        string
	VehicleLabel *string
}

// Validate checks all fields and collects all errors.
func (i SetLoadedInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	if i.NodeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "node_id", Message: "required"})
	}
	errs = append(errs, validateActor(i.Actor)...)

	if i.Loaded {
		if i.VehicleLabel == nil || strings.TrimSpace(*i.VehicleLabel) == "" {
			errs = append(errs, domain.FieldError{Field: "vehicle_label", Message: "required when loading"})
		}
	}
	if i.VehicleLabel != nil && len(strings.TrimSpace(*i.VehicleLabel)) > maxVehicleLength {
		errs = append(errs, domain.FieldError{Field: "vehicle_label", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PingPresenceInput holds the parameters for a presence ping.
type PingPresenceInput struct {
	EventID   uuid.UUID
	Actor     string
	SubtreeID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i PingPresenceInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	errs = append(errs, validateActor(i.Actor)...)
	if i.SubtreeID != nil && *i.SubtreeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "subtree_id", Message: "invalid"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateActor(actor string) []domain.FieldError {
	trimmed := strings.TrimSpace(actor)
	if trimmed == "" {
		return []domain.FieldError{{Field: "actor", Message: "required"}}
	}
	if len(trimmed) > maxActorLength {
		return []domain.FieldError{{Field: "actor", Message: "max 100 characters"}}
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
