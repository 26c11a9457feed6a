package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/stock"
	"github.com/heartmarshall/stockcheck-backend/internal/transport/middleware"
)

type stockService interface {
	CreateNode(ctx context.Context, input stock.CreateNodeInput) (domain.StockNode, error)
	UpdateNode(ctx context.Context, input stock.UpdateNodeInput) (domain.StockNode, error)
	MoveNode(ctx context.Context, input stock.MoveNodeInput) (domain.StockNode, error)
	DuplicateSubtree(ctx context.Context, input stock.DuplicateSubtreeInput) (domain.StockNode, error)
	DeleteNode(ctx context.Context, id uuid.UUID) error
	GetTree(ctx context.Context, rootID *uuid.UUID) ([]*stock.TreeNode, error)
	ExpiryReport(ctx context.Context, days int) ([]domain.ExpiryEntry, error)
	NodeActivity(ctx context.Context, id uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

// StockHandler serves the stock administration endpoints.
type StockHandler struct {
	svc stockService
	log *slog.Logger
}

// NewStockHandler creates a StockHandler.
func NewStockHandler(svc stockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{svc: svc, log: logger.With("handler", "stock")}
}

type createNodeRequest struct {
	ParentID         *uuid.UUID `json:"parent_id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	Position         int        `json:"position"`
	ExpectedQuantity *int       `json:"expected_quantity"`
	ExpiryDate       *string    `json:"expiry_date"`
}

type updateNodeRequest struct {
	Name             *string `json:"name"`
	Position         *int    `json:"position"`
	ExpectedQuantity *int    `json:"expected_quantity"`
	ExpiryDate       *string `json:"expiry_date"`
	ClearExpiry      bool    `json:"clear_expiry"`
}

type moveNodeRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
	Position int        `json:"position"`
}

type duplicateRequest struct {
	ParentID *uuid.UUID `json:"parent_id"`
}

// CreateNode handles POST /stock/nodes.
func (h *StockHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req createNodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	expiry, err := parseDate("expiry_date", req.ExpiryDate)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	node, err := h.svc.CreateNode(r.Context(), stock.CreateNodeInput{
		ParentID:         req.ParentID,
		Name:             req.Name,
		Kind:             domain.NodeKind(strings.ToUpper(req.Type)),
		Position:         req.Position,
		ExpectedQuantity: req.ExpectedQuantity,
		ExpiryDate:       expiry,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNodeResponse(node))
}

// UpdateNode handles PATCH /stock/nodes/{id}.
func (h *StockHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req updateNodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	expiry, err := parseDate("expiry_date", req.ExpiryDate)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	node, err := h.svc.UpdateNode(r.Context(), stock.UpdateNodeInput{
		ID:               id,
		Name:             req.Name,
		Position:         req.Position,
		ExpectedQuantity: req.ExpectedQuantity,
		ExpiryDate:       expiry,
		ClearExpiry:      req.ClearExpiry,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toNodeResponse(node))
}

// MoveNode handles POST /stock/nodes/{id}/move.
func (h *StockHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req moveNodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	node, err := h.svc.MoveNode(r.Context(), stock.MoveNodeInput{
		ID:       id,
		ParentID: req.ParentID,
		Position: req.Position,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toNodeResponse(node))
}

// DuplicateSubtree handles POST /stock/nodes/{id}/duplicate.
func (h *StockHandler) DuplicateSubtree(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req duplicateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	node, err := h.svc.DuplicateSubtree(r.Context(), stock.DuplicateSubtreeInput{
		ID:       id,
		ParentID: req.ParentID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNodeResponse(node))
}

// DeleteNode handles DELETE /stock/nodes/{id}. Removing a subtree needs an admin token.
func (h *StockHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteNode(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Tree handles GET /stock/tree?root=.
func (h *StockHandler) Tree(w http.ResponseWriter, r *http.Request) {
	var rootID *uuid.UUID
	if raw := r.URL.Query().Get("root"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("root", "invalid uuid"))
			return
		}
		rootID = &id
	}

	tree, err := h.svc.GetTree(r.Context(), rootID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTreeResponse(tree))
}

// Expiry handles GET /stock/expiry?days=.
func (h *StockHandler) Expiry(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	entries, err := h.svc.ExpiryReport(r.Context(), days)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]expiryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, expiryResponse{
			Node:     toNodeResponse(e.Node),
			State:    e.State.String(),
			DaysLeft: e.DaysLeft,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Activity handles GET /stock/nodes/{id}/activity?limit=.
func (h *StockHandler) Activity(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	records, err := h.svc.NodeActivity(r.Context(), id, limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuditResponses(records))
}
