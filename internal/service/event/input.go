package event

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

const (
	maxTitleLength = 200
	maxRoots       = 500
	maxListLimit   = 200
	defaultLimit   = 50
)

// CreateEventInput holds the parameters for creating an event.
type CreateEventInput struct {
	Title   string
	Date    *time.Time
	Status  string
	RootIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateEventInput) Validate() error {
	var errs []domain.FieldError

	errs = append(errs, validateTitle(i.Title)...)

	if i.Status != "" {
		st, ok := domain.ParseEventStatus(i.Status)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "status", Message: "must be DRAFT or OPEN"})
		} else if st != domain.EventStatusOpen {
			errs = append(errs, domain.FieldError{Field: "status", Message: "a new event cannot be closed"})
		}
	}
	errs = append(errs, validateRoots(i.RootIDs)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListEventsInput holds the filter and paging of an event listing.
type ListEventsInput struct {
	Status string
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListEventsInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != "" {
		if _, ok := domain.ParseEventStatus(i.Status); !ok {
			errs = append(errs, domain.FieldError{Field: "status", Message: "must be OPEN or CLOSED"})
		}
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetEventStatusInput holds the parameters for an event status change.
type SetEventStatusInput struct {
	EventID uuid.UUID
	Status  string
}

// Validate checks all fields and collects all errors.
func (i SetEventStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	if _, ok := domain.ParseEventStatus(i.Status); !ok {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be OPEN or CLOSED"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetInclusionsInput holds the new set of included roots of an event.
type SetInclusionsInput struct {
	EventID uuid.UUID
	RootIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i SetInclusionsInput) Validate() error {
	var errs []domain.FieldError

	if i.EventID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	}
	errs = append(errs, validateRoots(i.RootIDs)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateTitle(title string) []domain.FieldError {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return []domain.FieldError{{Field: "title", Message: "required"}}
	}
	if len(trimmed) > maxTitleLength {
		return []domain.FieldError{{Field: "title", Message: "max 200 characters"}}
	}
	return nil
}

func validateRoots(ids []uuid.UUID) []domain.FieldError {
	if len(ids) > maxRoots {
		return []domain.FieldError{{Field: "root_ids", Message: "too many roots"}}
	}
	for _, id := range ids {
		if id == uuid.Nil {
			return []domain.FieldError{{Field: "root_ids", Message: "contains an empty id"}}
		}
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}
