package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/periodic"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

type periodicService interface {
	Roots(ctx context.Context) ([]domain.StockNode, error)
	Tree(ctx context.Context, nodeID uuid.UUID) (*status.Document, error)
	History(ctx context.Context, nodeID uuid.UUID, limit int) ([]periodic.HistoryEntry, error)
	Verify(ctx context.Context, input periodic.VerifyInput) (domain.VerificationRecord, error)
	Reset(ctx context.Context, rootID uuid.UUID) (int, error)
	Replace(ctx context.Context, input periodic.ReplaceInput) (periodic.ReplaceResult, error)
}

// PeriodicHandler serves routine inventory rounds outside of events.
type PeriodicHandler struct {
	svc periodicService
	log *slog.Logger
}

// NewPeriodicHandler creates a PeriodicHandler.
func NewPeriodicHandler(svc periodicService, logger *slog.Logger) *PeriodicHandler {
	return &PeriodicHandler{svc: svc, log: logger.With("handler", "periodic")}
}

type periodicVerifyRequest struct {
	NodeID      uuid.UUID `json:"node_id"`
	Status      string    `json:"status"`
	IssueCode   *string   `json:"issue_code"`
	Comment     *string   `json:"comment"`
	ObservedQty *int      `json:"observed_qty"`
	MissingQty  *int      `json:"missing_qty"`
}

type periodicVerifyResponse struct {
	OK       bool   `json:"ok"`
	RecordID string `json:"record_id"`
	recordResponse
}

type resetRequest struct {
	RootID uuid.UUID `json:"root_id"`
}

type resetResponse struct {
	OK      bool `json:"ok"`
	Updated int  `json:"updated"`
}

type historyEntryResponse struct {
	recordResponse
	NodeName string `json:"node_name"`
}

type replaceRequest struct {
	NodeID     uuid.UUID `json:"node_id"`
	BatchID    uuid.UUID `json:"batch_id"`
	Quantity   int       `json:"quantity"`
	ExpiryDate *string   `json:"expiry_date"`
	Comment    *string   `json:"comment"`
}

type replaceResponse struct {
	OK             bool      `json:"ok"`
	NodeID         string    `json:"node_id"`
	BatchID        string    `json:"batch_id"`
	Quantity       int       `json:"quantity"`
	NewExpiry      *string   `json:"new_expiry"`
	RemainingBatch int       `json:"remaining_batch"`
	RecordID       string    `json:"record_id"`
	Timestamp      time.Time `json:"timestamp"`
}

// Roots handles GET /periodic/roots.
func (h *PeriodicHandler) Roots(w http.ResponseWriter, r *http.Request) {
	roots, err := h.svc.Roots(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]nodeResponse, 0, len(roots))
	for _, n := range roots {
		out = append(out, toNodeResponse(n))
	}
	writeJSON(w, http.StatusOK, out)
}

// Tree handles GET /periodic/tree/{id}.
func (h *PeriodicHandler) Tree(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	doc, err := h.svc.Tree(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// History handles GET /periodic/history/{id}.
func (h *PeriodicHandler) History(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.svc.History(r.Context(), id, limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntryResponse{recordResponse: toRecordResponse(e.Record), NodeName: e.NodeName})
	}
	writeJSON(w, http.StatusOK, out)
}

// Verify handles POST /periodic/verify.
func (h *PeriodicHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req periodicVerifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	input := periodic.VerifyInput{
		NodeID:      req.NodeID,
		Status:      domain.VerificationStatus(strings.ToUpper(req.Status)),
		Comment:     req.Comment,
		ObservedQty: req.ObservedQty,
		MissingQty:  req.MissingQty,
	}
	if req.IssueCode != nil {
		code := domain.IssueCode(strings.ToUpper(*req.IssueCode))
		input.IssueCode = &code
	}

	rec, err := h.svc.Verify(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, periodicVerifyResponse{
		OK:             true,
		RecordID:       rec.ID.String(),
		recordResponse: toRecordResponse(rec),
	})
}

// Reset handles POST /periodic/reset.
func (h *PeriodicHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	updated, err := h.svc.Reset(r.Context(), req.RootID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resetResponse{OK: true, Updated: updated})
}

// Replace handles POST /periodic/replace.
func (h *PeriodicHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	expiry, err := parseDate("expiry_date", req.ExpiryDate)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Replace(r.Context(), periodic.ReplaceInput{
		NodeID:     req.NodeID,
		BatchID:    req.BatchID,
		Quantity:   req.Quantity,
		ExpiryDate: expiry,
		Comment:    req.Comment,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, replaceResponse{
		OK:             true,
		NodeID:         res.NodeID.String(),
		BatchID:        res.BatchID.String(),
		Quantity:       res.Quantity,
		NewExpiry:      formatDate(res.NewExpiry),
		RemainingBatch: res.RemainingBatch,
		RecordID:       res.Record.ID.String(),
		Timestamp:      res.Record.CreatedAt,
	})
}
