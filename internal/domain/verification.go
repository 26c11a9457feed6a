package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerificationRecord is one append-only ledger entry for an item within an event.
// Seq is the insertion order and breaks ties between equal timestamps.
// Periodic records belong to no event and carry uuid.Nil as EventID.
type VerificationRecord struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	NodeID      uuid.UUID
	Status      VerificationStatus
	IssueCode   *IssueCode
	Actor       string
	Comment     *string
	ObservedQty *int
	MissingQty  *int
	CreatedAt   time.Time
	Seq         int64
}

// Newer reports whether r supersedes other as the latest record for the same item.
func (r VerificationRecord) Newer(other VerificationRecord) bool {
	if r.CreatedAt.Equal(other.CreatedAt) {
		return r.Seq > other.Seq
	}
	return r.CreatedAt.After(other.CreatedAt)
}

// LoadState is the per-event loaded flag of a group. Version grows by one
// on every write to the row.
type LoadState struct {
	EventID      uuid.UUID
	NodeID       uuid.UUID
	Loaded       bool
	SetBy        string
	VehicleLabel *string
	UpdatedAt    time.Time
	Version      int64
}

// PresenceEntry is the last time an actor was seen on an event.
// SubtreeID is nil for an event-wide ping.
type PresenceEntry struct {
	EventID   uuid.UUID
	Actor     string
	SubtreeID *uuid.UUID
	LastSeen  time.Time
}

// IsFresh reports whether the entry is inside the window ending at now.
// The boundary is inclusive: an entry exactly window old is still fresh.
func (p PresenceEntry) IsFresh(now time.Time, window time.Duration) bool {
	return !p.LastSeen.Before(now.Add(-window))
}
