// Package notify fans committed changes out to live subscribers of an event.
// A writer never waits: a subscriber that falls behind is closed and marked
// lagged so its client can resynchronise from a fresh status document.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

// Kind identifies what changed.
type Kind string

const (
	KindItemVerified Kind = "item_verified"
	KindLoadChanged  Kind = "load_changed"
	KindPresence     Kind = "presence"
	KindEventStatus  Kind = "event_status"
)

// Change is one incremental update for the clients of an event. Path holds
// the recomputed status of the touched node and its ancestors, bottom-up.
// Seq is the commit order of the write for its (node, kind); zero means
// the change is not ordered.
type Change struct {
	Kind    Kind                `json:"kind"`
	Seq     int64               `json:"seq,omitempty"`
	EventID uuid.UUID           `json:"event_id"`
	NodeID  *uuid.UUID          `json:"node_id,omitempty"`
	Actor   string              `json:"actor,omitempty"`
	Status  string              `json:"status,omitempty"`
	Loaded  *bool               `json:"loaded,omitempty"`
	Path    []status.NodeStatus `json:"path,omitempty"`
	Busy    []string            `json:"busy,omitempty"`
	At      time.Time           `json:"at"`
}
