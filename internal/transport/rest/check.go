package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/check"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
	"github.com/heartmarshall/stockcheck-backend/pkg/ctxutil"
)

type checkService interface {
	GetStatus(ctx context.Context, eventID uuid.UUID) (*status.Document, error)
	Stats(ctx context.Context, eventID uuid.UUID) (*check.Stats, error)
	History(ctx context.Context, eventID, nodeID uuid.UUID) ([]domain.VerificationRecord, error)
	RecordVerification(ctx context.Context, input check.RecordVerificationInput) (*check.VerificationResult, error)
	SetLoaded(ctx context.Context, input check.SetLoadedInput) (*check.LoadResult, error)
	PingPresence(ctx context.Context, input check.PingPresenceInput) error
}

// CheckHandler serves the check flow of an event for managers.
type CheckHandler struct {
	checkOps
}

// NewCheckHandler creates a CheckHandler.
func NewCheckHandler(svc checkService, logger *slog.Logger) *CheckHandler {
	return &CheckHandler{checkOps{svc: svc, log: logger.With("handler", "check")}}
}

type verifyRequest struct {
	NodeID      uuid.UUID `json:"node_id"`
	Status      string    `json:"status"`
	IssueCode   *string   `json:"issue_code"`
	Actor       string    `json:"actor"`
	Comment     *string   `json:"comment"`
	ObservedQty *int      `json:"observed_qty"`
	MissingQty  *int      `json:"missing_qty"`
}

// verifyResponse is the appended record. Path and Unloaded extend it with
// the recomputed ancestors and any groups the write unloaded.
type verifyResponse struct {
	OK          bool                `json:"ok"`
	ID          string              `json:"id"`
	NodeID      string              `json:"node_id"`
	Status      string              `json:"status"`
	IssueCode   *string             `json:"issue_code,omitempty"`
	Actor       string              `json:"actor"`
	Comment     *string             `json:"comment,omitempty"`
	ObservedQty *int                `json:"observed_qty,omitempty"`
	MissingQty  *int                `json:"missing_qty,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
	Path        []status.NodeStatus `json:"path"`
	Unloaded    []string            `json:"unloaded,omitempty"`
}

type loadRequest struct {
	NodeID       uuid.UUID `json:"node_id"`
	Loaded       bool      `json:"loaded"`
	Actor        string    `json:"actor"`
	VehicleLabel *string   `json:"vehicle_label"`
}

type loadResponse struct {
	OK           bool                `json:"ok"`
	NodeID       string              `json:"node_id"`
	Loaded       bool                `json:"loaded"`
	VehicleLabel *string             `json:"vehicle_label"`
	SetBy        string              `json:"set_by"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Path         []status.NodeStatus `json:"path"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type presenceRequest struct {
	Actor     string     `json:"actor"`
	SubtreeID *uuid.UUID `json:"subtree_id"`
}

// Status handles GET /events/{id}/status.
func (h *CheckHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.status(w, r, id)
}

// Stats handles GET /events/{id}/stats.
func (h *CheckHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	stats, err := h.svc.Stats(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Verify handles POST /events/{id}/verify. The actor defaults to the token holder.
func (h *CheckHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	actor, _ := ctxutil.ActorFromCtx(r.Context())
	h.verify(w, r, id, actor)
}

// Load handles POST /events/{id}/load.
func (h *CheckHandler) Load(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	actor, _ := ctxutil.ActorFromCtx(r.Context())
	h.load(w, r, id, actor)
}

// Presence handles POST /events/{id}/presence.
func (h *CheckHandler) Presence(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	actor, _ := ctxutil.ActorFromCtx(r.Context())
	h.presence(w, r, id, actor)
}

// History handles GET /events/{id}/nodes/{nodeID}/history.
func (h *CheckHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	nodeID, err := pathUUID(r, "nodeID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	records, err := h.svc.History(r.Context(), id, nodeID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponses(records))
}

// checkOps holds the check operations shared by the manager and public surfaces.
type checkOps struct {
	svc checkService
	log *slog.Logger
}

func (h checkOps) status(w http.ResponseWriter, r *http.Request, eventID uuid.UUID) {
	doc, err := h.svc.GetStatus(r.Context(), eventID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h checkOps) verify(w http.ResponseWriter, r *http.Request, eventID uuid.UUID, fallbackActor string) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	input := check.RecordVerificationInput{
		EventID:     eventID,
		NodeID:      req.NodeID,
		Status:      domain.VerificationStatus(strings.ToUpper(req.Status)),
		Actor:       actorOr(req.Actor, fallbackActor),
		Comment:     req.Comment,
		ObservedQty: req.ObservedQty,
		MissingQty:  req.MissingQty,
	}
	if req.IssueCode != nil {
		code := domain.IssueCode(strings.ToUpper(*req.IssueCode))
		input.IssueCode = &code
	}

	res, err := h.svc.RecordVerification(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	rec := toRecordResponse(res.Record)
	writeJSON(w, http.StatusCreated, verifyResponse{
		OK:          true,
		ID:          rec.ID,
		NodeID:      rec.NodeID,
		Status:      rec.Status,
		IssueCode:   rec.IssueCode,
		Actor:       rec.Actor,
		Comment:     rec.Comment,
		ObservedQty: rec.ObservedQty,
		MissingQty:  rec.MissingQty,
		Timestamp:   rec.CreatedAt,
		Path:        res.Path,
		Unloaded:    uuidStrings(res.Unloaded),
	})
}

func (h checkOps) load(w http.ResponseWriter, r *http.Request, eventID uuid.UUID, fallbackActor string) {
	var req loadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.SetLoaded(r.Context(), check.SetLoadedInput{
		EventID:      eventID,
		NodeID:       req.NodeID,
		Loaded:       req.Loaded,
		Actor:        actorOr(req.Actor, fallbackActor),
		VehicleLabel: req.VehicleLabel,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, loadResponse{
		OK:           true,
		NodeID:       res.State.NodeID.String(),
		Loaded:       res.State.Loaded,
		VehicleLabel: res.State.VehicleLabel,
		SetBy:        res.State.SetBy,
		UpdatedAt:    res.State.UpdatedAt,
		Path:         res.Path,
	})
}

func (h checkOps) presence(w http.ResponseWriter, r *http.Request, eventID uuid.UUID, fallbackActor string) {
	var req presenceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	err := h.svc.PingPresence(r.Context(), check.PingPresenceInput{
		EventID:   eventID,
		Actor:     actorOr(req.Actor, fallbackActor),
		SubtreeID: req.SubtreeID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func actorOr(actor, fallback string) string {
	if strings.TrimSpace(actor) == "" {
		return fallback
	}
	return actor
}
