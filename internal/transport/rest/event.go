package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/event"
)

type eventService interface {
	CreateEvent(ctx context.Context, input event.CreateEventInput) (domain.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (domain.Event, error)
	ListEvents(ctx context.Context, input event.ListEventsInput) ([]domain.Event, error)
	SetEventStatus(ctx context.Context, input event.SetEventStatusInput) (domain.Event, error)
	SetInclusions(ctx context.Context, input event.SetInclusionsInput) (domain.Event, error)
	ListActivity(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error)
	CreateShareLink(ctx context.Context, eventID uuid.UUID) (domain.ShareLink, error)
	RevokeShareLink(ctx context.Context, eventID uuid.UUID) error
}

// EventHandler serves the event administration endpoints.
type EventHandler struct {
	svc eventService
	log *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "event")}
}

type createEventRequest struct {
	Title   string      `json:"title"`
	Date    *string     `json:"date"`
	Status  string      `json:"status"`
	RootIDs []uuid.UUID `json:"root_ids"`
}

type eventStatusRequest struct {
	Status string `json:"status"`
}

type rootsRequest struct {
	RootIDs []uuid.UUID `json:"root_ids"`
}

// Create handles POST /events.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	ev, err := h.svc.CreateEvent(r.Context(), event.CreateEventInput{
		Title:   req.Title,
		Date:    date,
		Status:  req.Status,
		RootIDs: req.RootIDs,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(ev))
}

// List handles GET /events?status=&limit=&offset=.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	events, err := h.svc.ListEvents(r.Context(), event.ListEventsInput{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /events/{id}.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	ev, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(ev))
}

// SetStatus handles PATCH /events/{id}/status.
func (h *EventHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req eventStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	ev, err := h.svc.SetEventStatus(r.Context(), event.SetEventStatusInput{EventID: id, Status: req.Status})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(ev))
}

// SetRoots handles PUT /events/{id}/roots.
func (h *EventHandler) SetRoots(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req rootsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	ev, err := h.svc.SetInclusions(r.Context(), event.SetInclusionsInput{EventID: id, RootIDs: req.RootIDs})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(ev))
}

// Share handles POST /events/{id}/share. An existing active link is returned
// as is, so repeated calls hand out the same token.
func (h *EventHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	link, err := h.svc.CreateShareLink(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toShareLinkResponse(link))
}

// Unshare handles DELETE /events/{id}/share.
func (h *EventHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.RevokeShareLink(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Activity handles GET /events/{id}/activity?limit=&offset=.
func (h *EventHandler) Activity(w http.ResponseWriter, r *http.Request) {
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
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	records, err := h.svc.ListActivity(r.Context(), id, limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuditResponses(records))
}
