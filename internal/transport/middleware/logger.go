package middleware

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/stockcheck-backend/pkg/ctxutil"
)

// quietPaths are health endpoints logged at debug level so that
// orchestrator polling does not drown out real traffic.
var quietPaths = map[string]bool{"/live": true, "/ready": true}

// requestSlot lets inner middleware that derive a new request report it
// back to Logger, so the log line sees the identity they attached and the
// route pattern the mux set on it.
type requestSlot struct{ req *http.Request }

type requestSlotKey struct{}

// forwardRequest records r as the request inner handlers will see.
func forwardRequest(r *http.Request) {
	if slot, ok := r.Context().Value(requestSlotKey{}).(*requestSlot); ok {
		slot.req = r
	}
}

// Logger logs one line per request with the matched route, status, size,
// duration and whoever made the call: a manager id, a named actor or both.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			slot := &requestSlot{}
			r = r.WithContext(context.WithValue(r.Context(), requestSlotKey{}, slot))
			slot.req = r

			next.ServeHTTP(sw, r)

			final := slot.req
			ctx := final.Context()
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int64("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			}
			if final.Pattern != "" {
				attrs = append(attrs, slog.String("route", final.Pattern))
			}
			if userID, ok := ctxutil.UserIDFromCtx(ctx); ok && userID != uuid.Nil {
				attrs = append(attrs, slog.String("user_id", userID.String()))
			}
			if actor, ok := ctxutil.ActorFromCtx(ctx); ok {
				attrs = append(attrs, slog.String("actor", actor))
			}

			logger.LogAttrs(ctx, requestLevel(r.URL.Path, sw.status), "http.request", attrs...)
		})
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		return slog.LevelWarn
	case quietPaths[path]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Hijack lets the websocket upgrader take over the connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.status = http.StatusSwitchingProtocols
	w.wroteHeader = true
	return h.Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
