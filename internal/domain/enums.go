package domain

// NodeKind distinguishes aggregating groups from verifiable items.
type NodeKind string

const (
	NodeKindGroup NodeKind = "GROUP"
	NodeKindItem  NodeKind = "ITEM"
)

func (k NodeKind) String() string { return string(k) }

func (k NodeKind) IsValid() bool {
	switch k {
	case NodeKindGroup, NodeKindItem:
		return true
	}
	return false
}

// VerificationStatus is the state of an item within one event or in the
// periodic ledger. TODO is derived for items without any record; only a
// periodic reset stores it.
type VerificationStatus string

const (
	StatusOK    VerificationStatus = "OK"
	StatusNotOK VerificationStatus = "NOT_OK"
	StatusTodo  VerificationStatus = "TODO"
)

func (s VerificationStatus) String() string { return string(s) }

func (s VerificationStatus) IsValid() bool {
	switch s {
	case StatusOK, StatusNotOK, StatusTodo:
		return true
	}
	return false
}

// IsRecordable reports whether the status may be written to the ledger.
func (s VerificationStatus) IsRecordable() bool {
	return s == StatusOK || s == StatusNotOK
}

// IssueCode refines a NOT_OK verification.
type IssueCode string

const (
	IssueMissing IssueCode = "MISSING"
	IssueDamaged IssueCode = "DAMAGED"
)

func (c IssueCode) String() string { return string(c) }

func (c IssueCode) IsValid() bool {
	switch c {
	case IssueMissing, IssueDamaged:
		return true
	}
	return false
}

// EventStatus is the lifecycle state of an event. CLOSED is terminal.
type EventStatus string

const (
	EventStatusOpen   EventStatus = "OPEN"
	EventStatusClosed EventStatus = "CLOSED"
)

func (s EventStatus) String() string { return string(s) }

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusOpen, EventStatusClosed:
		return true
	}
	return false
}

// ParseEventStatus accepts DRAFT as an alias of OPEN.
func ParseEventStatus(raw string) (EventStatus, bool) {
	switch raw {
	case "DRAFT", "OPEN":
		return EventStatusOpen, true
	case "CLOSED":
		return EventStatusClosed, true
	}
	return "", false
}

// ExpiryState classifies an item's expiry date against a look-ahead window.
type ExpiryState string

const (
	ExpiryExpired ExpiryState = "EXPIRED"
	ExpirySoon    ExpiryState = "SOON"
	ExpiryOK      ExpiryState = "OK"
)

func (s ExpiryState) String() string { return string(s) }

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeStockNode    EntityType = "STOCK_NODE"
	EntityTypeEvent        EntityType = "EVENT"
	EntityTypeVerification EntityType = "VERIFICATION"
	EntityTypeLoadState    EntityType = "LOAD_STATE"
	EntityTypeShareLink    EntityType = "SHARE_LINK"
	EntityTypePeriodic     EntityType = "PERIODIC_RECORD"
	EntityTypeRestockItem  EntityType = "RESTOCK_ITEM"
	EntityTypeRestockBatch EntityType = "RESTOCK_BATCH"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeStockNode, EntityTypeEvent, EntityTypeVerification,
		EntityTypeLoadState, EntityTypeShareLink, EntityTypePeriodic,
		EntityTypeRestockItem, EntityTypeRestockBatch:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// UserRole represents the authorization level of a token holder.
type UserRole string

const (
	UserRoleManager UserRole = "manager"
	UserRoleAdmin   UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleManager, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
