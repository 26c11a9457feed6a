package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

type tokenResolver interface {
	ResolveShareToken(ctx context.Context, token string) (domain.Event, error)
}

// PublicHandler serves the share-token surface used by volunteers without an
// account. The token is resolved on every request so revocation and closing
// take effect immediately.
type PublicHandler struct {
	checkOps
	tokens tokenResolver
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(tokens tokenResolver, svc checkService, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{
		checkOps: checkOps{svc: svc, log: logger.With("handler", "public")},
		tokens:   tokens,
	}
}

// resolve returns the event behind the {token} path value. On failure the
// response has already been written.
func (h *PublicHandler) resolve(w http.ResponseWriter, r *http.Request) (domain.Event, bool) {
	ev, err := h.tokens.ResolveShareToken(r.Context(), r.PathValue("token"))
	if err != nil {
		handleError(w, r, h.log, err)
		return domain.Event{}, false
	}
	return ev, true
}

// Event handles GET /public/{token}.
func (h *PublicHandler) Event(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, publicEventResponse{
		Title:   ev.Title,
		Date:    formatDate(ev.Date),
		Status:  ev.Status.String(),
		RootIDs: uuidStrings(ev.RootIDs),
	})
}

// Status handles GET /public/{token}/status.
func (h *PublicHandler) Status(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.resolve(w, r)
	if !ok {
		return
	}
	h.status(w, r, ev.ID)
}

// Verify handles POST /public/{token}/verify. The actor must be supplied.
func (h *PublicHandler) Verify(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.resolve(w, r)
	if !ok {
		return
	}
	h.verify(w, r, ev.ID, "")
}

// Load handles POST /public/{token}/load.
func (h *PublicHandler) Load(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.resolve(w, r)
	if !ok {
		return
	}
	h.load(w, r, ev.ID, "")
}

// Presence handles POST /public/{token}/presence.
func (h *PublicHandler) Presence(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.resolve(w, r)
	if !ok {
		return
	}
	h.presence(w, r, ev.ID, "")
}
