package auth

import (
	"github.com/google/uuid"
)

// Identity is the manager behind a validated access token. Name is the
// display name written into every mutation the manager performs.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Role   string
}

// IsAdmin reports whether the identity may administer the stock catalog.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}
