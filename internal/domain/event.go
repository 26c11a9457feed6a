package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a verification session over a selection of stock subtrees.
type Event struct {
	ID        uuid.UUID
	Title     string
	Date      *time.Time
	Status    EventStatus
	RootIDs   []uuid.UUID
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}

func (e Event) IsOpen() bool { return e.Status == EventStatusOpen }

// ShareLink grants public verification access to one event.
type ShareLink struct {
	ID        uuid.UUID
	EventID   uuid.UUID
	Token     string
	Active    bool
	CreatedBy string
	CreatedAt time.Time
	RevokedAt *time.Time
}
