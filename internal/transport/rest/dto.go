package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/stock"
)

// ---------------------------------------------------------------------------
// Stock
// ---------------------------------------------------------------------------

type nodeResponse struct {
	ID               string    `json:"id"`
	ParentID         *string   `json:"parent_id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Position         int       `json:"position"`
	ExpectedQuantity *int      `json:"expected_quantity,omitempty"`
	ExpiryDate       *string   `json:"expiry_date,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toNodeResponse(n domain.StockNode) nodeResponse {
	resp := nodeResponse{
		ID:        n.ID.String(),
		ParentID:  uuidPtrString(n.ParentID),
		Name:      n.Name,
		Type:      n.Kind.String(),
		Position:  n.Position,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Item != nil {
		resp.ExpectedQuantity = n.Item.ExpectedQuantity
		resp.ExpiryDate = formatDate(n.Item.ExpiryDate)
	}
	return resp
}

type treeNodeResponse struct {
	nodeResponse
	Children []treeNodeResponse `json:"children"`
}

func toTreeResponse(nodes []*stock.TreeNode) []treeNodeResponse {
	out := make([]treeNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, treeNodeResponse{
			nodeResponse: toNodeResponse(n.StockNode),
			Children:     toTreeResponse(n.Children),
		})
	}
	return out
}

type expiryResponse struct {
	Node     nodeResponse `json:"node"`
	State    string       `json:"state"`
	DaysLeft int          `json:"days_left"`
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

type eventResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Date      *string    `json:"date"`
	Status    string     `json:"status"`
	RootIDs   []string   `json:"root_ids"`
	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:        e.ID.String(),
		Title:     e.Title,
		Date:      formatDate(e.Date),
		Status:    e.Status.String(),
		RootIDs:   uuidStrings(e.RootIDs),
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		ClosedAt:  e.ClosedAt,
	}
}

// publicEventResponse omits manager-only fields.
type publicEventResponse struct {
	Title   string   `json:"title"`
	Date    *string  `json:"date"`
	Status  string   `json:"status"`
	RootIDs []string `json:"root_ids"`
}

type shareLinkResponse struct {
	Token     string    `json:"token"`
	Path      string    `json:"path"`
	Active    bool      `json:"active"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toShareLinkResponse(l domain.ShareLink) shareLinkResponse {
	return shareLinkResponse{
		Token:     l.Token,
		Path:      "/public/" + l.Token,
		Active:    l.Active,
		CreatedBy: l.CreatedBy,
		CreatedAt: l.CreatedAt,
	}
}

type auditResponse struct {
	ID         string         `json:"id"`
	Actor      string         `json:"actor"`
	EntityType string         `json:"entity_type"`
	EntityID   *string        `json:"entity_id,omitempty"`
	Action     string         `json:"action"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func toAuditResponses(records []domain.AuditRecord) []auditResponse {
	out := make([]auditResponse, 0, len(records))
	for _, r := range records {
		out = append(out, auditResponse{
			ID:         r.ID.String(),
			Actor:      r.Actor,
			EntityType: r.EntityType.String(),
			EntityID:   uuidPtrString(r.EntityID),
			Action:     r.Action.String(),
			Changes:    r.Changes,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Check
// ---------------------------------------------------------------------------

type recordResponse struct {
	ID          string    `json:"id"`
	NodeID      string    `json:"node_id"`
	Status      string    `json:"status"`
	IssueCode   *string   `json:"issue_code,omitempty"`
	Actor       string    `json:"actor"`
	Comment     *string   `json:"comment,omitempty"`
	ObservedQty *int      `json:"observed_qty,omitempty"`
	MissingQty  *int      `json:"missing_qty,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRecordResponse(r domain.VerificationRecord) recordResponse {
	resp := recordResponse{
		ID:          r.ID.String(),
		NodeID:      r.NodeID.String(),
		Status:      r.Status.String(),
		Actor:       r.Actor,
		Comment:     r.Comment,
		ObservedQty: r.ObservedQty,
		MissingQty:  r.MissingQty,
		CreatedAt:   r.CreatedAt,
	}
	if r.IssueCode != nil {
		code := r.IssueCode.String()
		resp.IssueCode = &code
	}
	return resp
}

func toRecordResponses(records []domain.VerificationRecord) []recordResponse {
	out := make([]recordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
