package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/restock"
)

type restockService interface {
	ListItems(ctx context.Context) ([]domain.RestockItem, error)
	CreateItem(ctx context.Context, input restock.CreateItemInput) (domain.RestockItem, error)
	UpdateItem(ctx context.Context, input restock.UpdateItemInput) (domain.RestockItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListBatches(ctx context.Context, itemID *uuid.UUID) ([]domain.RestockBatch, error)
	CreateBatch(ctx context.Context, input restock.CreateBatchInput) (domain.RestockBatch, error)
	UpdateBatch(ctx context.Context, input restock.UpdateBatchInput) (domain.RestockBatch, error)
	DeleteBatch(ctx context.Context, id uuid.UUID) error
	Options(ctx context.Context, nodeID uuid.UUID) ([]domain.RestockOption, error)
}

// RestockHandler serves administration of spare supplies.
type RestockHandler struct {
	svc restockService
	log *slog.Logger
}

// NewRestockHandler creates a RestockHandler.
func NewRestockHandler(svc restockService, logger *slog.Logger) *RestockHandler {
	return &RestockHandler{svc: svc, log: logger.With("handler", "restock")}
}

type restockItemRequest struct {
	Name         *string    `json:"name"`
	Note         *string    `json:"note"`
	TargetNodeID *uuid.UUID `json:"target_node_id"`
	ClearTarget  bool       `json:"clear_target"`
}

type restockBatchRequest struct {
	ItemID      uuid.UUID `json:"item_id"`
	Quantity    *int      `json:"quantity"`
	ExpiryDate  *string   `json:"expiry_date"`
	ClearExpiry bool      `json:"clear_expiry"`
	Lot         *string   `json:"lot"`
	Note        *string   `json:"note"`
}

type restockItemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Note          *string   `json:"note"`
	TargetNodeID  *string   `json:"target_node_id"`
	TotalQuantity int       `json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type restockBatchResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	Quantity   int       `json:"quantity"`
	ExpiryDate *string   `json:"expiry_date"`
	Lot        *string   `json:"lot"`
	Note       *string   `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type restockOptionResponse struct {
	BatchID    string  `json:"batch_id"`
	ItemID     string  `json:"item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	ExpiryDate *string `json:"expiry_date"`
	Lot        *string `json:"lot"`
	Preferred  bool    `json:"preferred"`
}

func toRestockItemResponse(it domain.RestockItem) restockItemResponse {
	return restockItemResponse{
		ID:            it.ID.String(),
		Name:          it.Name,
		Note:          it.Note,
		TargetNodeID:  uuidPtrString(it.TargetNodeID),
		TotalQuantity: it.TotalQuantity,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

func toRestockBatchResponse(b domain.RestockBatch) restockBatchResponse {
	return restockBatchResponse{
		ID:         b.ID.String(),
		ItemID:     b.ItemID.String(),
		Quantity:   b.Quantity,
		ExpiryDate: formatDate(b.ExpiryDate),
		Lot:        b.Lot,
		Note:       b.Note,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// ListItems handles GET /restock/items.
func (h *RestockHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]restockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toRestockItemResponse(it))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateItem handles POST /restock/items.
func (h *RestockHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req restockItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	input := restock.CreateItemInput{Note: req.Note, TargetNodeID: req.TargetNodeID}
	if req.Name != nil {
		input.Name = *req.Name
	}

	item, err := h.svc.CreateItem(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRestockItemResponse(item))
}

// UpdateItem handles PATCH /restock/items/{id}.
func (h *RestockHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req restockItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), restock.UpdateItemInput{
		ID:           id,
		Name:         req.Name,
		Note:         req.Note,
		TargetNodeID: req.TargetNodeID,
		ClearTarget:  req.ClearTarget,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestockItemResponse(item))
}

// DeleteItem handles DELETE /restock/items/{id}.
func (h *RestockHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBatches handles GET /restock/batches with an optional item_id filter.
func (h *RestockHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	var itemID *uuid.UUID
	if raw := r.URL.Query().Get("item_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("item_id", "invalid uuid"))
			return
		}
		itemID = &id
	}

	batches, err := h.svc.ListBatches(r.Context(), itemID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]restockBatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toRestockBatchResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateBatch handles POST /restock/batches.
func (h *RestockHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req restockBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	expiry, err := parseDate("expiry_date", req.ExpiryDate)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	input := restock.CreateBatchInput{ItemID: req.ItemID, ExpiryDate: expiry, Lot: req.Lot, Note: req.Note}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}

	batch, err := h.svc.CreateBatch(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRestockBatchResponse(batch))
}

// UpdateBatch handles PATCH /restock/batches/{id}.
func (h *RestockHandler) UpdateBatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req restockBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	expiry, err := parseDate("expiry_date", req.ExpiryDate)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	batch, err := h.svc.UpdateBatch(r.Context(), restock.UpdateBatchInput{
		ID:          id,
		Quantity:    req.Quantity,
		ExpiryDate:  expiry,
		ClearExpiry: req.ClearExpiry,
		Lot:         req.Lot,
		Note:        req.Note,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toRestockBatchResponse(batch))
}

// DeleteBatch handles DELETE /restock/batches/{id}.
func (h *RestockHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := h.svc.DeleteBatch(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Options handles GET /restock/options/{nodeID}.
func (h *RestockHandler) Options(w http.ResponseWriter, r *http.Request) {
	nodeID, err := pathUUID(r, "nodeID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	opts, err := h.svc.Options(r.Context(), nodeID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]restockOptionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, restockOptionResponse{
			BatchID:    o.Batch.ID.String(),
			ItemID:     o.Item.ID.String(),
			ItemName:   o.Item.Name,
			Quantity:   o.Batch.Quantity,
			ExpiryDate: formatDate(o.Batch.ExpiryDate),
			Lot:        o.Batch.Lot,
			Preferred:  o.Preferred,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
