package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord logs a mutation on a domain entity. Actor is the display name
// of whoever made the change; UserID is set only for token-authenticated managers.
type AuditRecord struct {
	ID         uuid.UUID
	EventID    *uuid.UUID
	UserID     *uuid.UUID
	Actor      string
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
