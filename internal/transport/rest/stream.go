package rest

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/stockcheck-backend/internal/notify"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

const (
	streamWriteWait   = 10 * time.Second
	streamReadLimit   = 4096
	defaultPingPeriod = 30 * time.Second
)

type subscriber interface {
	Subscribe(eventID uuid.UUID) *notify.Subscription
}

type statusReader interface {
	GetStatus(ctx context.Context, eventID uuid.UUID) (*status.Document, error)
}

// streamMessage is one frame of the change stream. The first frame carries
// the full status document; every later frame carries one change.
type streamMessage struct {
	Type   string           `json:"type"`
	Status *status.Document `json:"status,omitempty"`
	Change *notify.Change   `json:"change,omitempty"`
}

// StreamHandler pushes live changes of an event over a websocket.
type StreamHandler struct {
	hub        subscriber
	status     statusReader
	tokens     tokenResolver
	pingPeriod time.Duration
	upgrader   websocket.Upgrader
	log        *slog.Logger
}

// NewStreamHandler creates a StreamHandler. allowedOrigins is the
// comma-separated CORS origin list; "*" or empty accepts any origin.
func NewStreamHandler(
	hub subscriber,
	statusSvc statusReader,
	tokens tokenResolver,
	pingPeriod time.Duration,
	allowedOrigins string,
	logger *slog.Logger,
) *StreamHandler {
	if pingPeriod <= 0 {
		pingPeriod = defaultPingPeriod
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &StreamHandler{
		hub:        hub,
		status:     statusSvc,
		tokens:     tokens,
		pingPeriod: pingPeriod,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowedOrigins == "" || slices.Contains(origins, "*") {
					return true
				}
				return slices.Contains(origins, origin)
			},
		},
		log: logger.With("handler", "stream"),
	}
}

// Event handles GET /events/{id}/stream for managers.
func (h *StreamHandler) Event(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.serve(w, r, id, nil)
}

// Public handles GET /public/{token}/stream. The token is checked again on
// every ping so a revoked link or a closed event ends the stream.
func (h *StreamHandler) Public(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	ev, err := h.tokens.ResolveShareToken(r.Context(), token)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	h.serve(w, r, ev.ID, func(ctx context.Context) error {
		_, err := h.tokens.ResolveShareToken(ctx, token)
		return err
	})
}

func (h *StreamHandler) serve(w http.ResponseWriter, r *http.Request, eventID uuid.UUID, stillValid func(context.Context) error) {
	// Subscribe before reading the snapshot so no committed change falls in between.
	sub := h.hub.Subscribe(eventID)
	defer func() { sub.Close() }()

	doc, err := h.status.GetStatus(r.Context(), eventID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.log.WarnContext(r.Context(), "websocket upgrade", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	h.log.DebugContext(ctx, "stream opened", slog.String("event_id", eventID.String()))

	if err := h.write(conn, streamMessage{Type: "status", Status: doc}); err != nil {
		return
	}

	done := make(chan struct{})
	go h.readPump(conn, done)

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case c, ok := <-sub.C:
			if !ok && sub.Lagged() {
				// The client missed changes; replace its tree with a fresh document.
				sub = h.hub.Subscribe(eventID)
				doc, err := h.status.GetStatus(ctx, eventID)
				if err != nil {
					h.log.WarnContext(ctx, "stream resync", slog.String("error", err.Error()))
					h.closeWith(conn, websocket.CloseTryAgainLater, "resync failed")
					return
				}
				if err := h.write(conn, streamMessage{Type: "status", Status: doc}); err != nil {
					return
				}
				continue
			}
			if !ok {
				h.closeWith(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
			if err := h.write(conn, streamMessage{Type: "change", Change: &c}); err != nil {
				return
			}
		case <-ticker.C:
			if stillValid != nil {
				if err := stillValid(ctx); err != nil {
					h.closeWith(conn, websocket.ClosePolicyViolation, "access revoked")
					return
				}
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
// It closes done when the connection fails or the read deadline lapses.
func (h *StreamHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	pongWait := 2 * h.pingPeriod
	conn.SetReadLimit(streamReadLimit)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHandler) write(conn *websocket.Conn, msg streamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteWait)) //nolint:errcheck
	if err := conn.WriteJSON(msg); err != nil {
		h.log.Debug("stream write", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (h *StreamHandler) closeWith(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteWait)) //nolint:errcheck
}
