package rest

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 3 * time.Second

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthComponent is an extra dependency reported by /health. A failing
// optional component degrades the report without failing it.
type HealthComponent struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

// HealthHandler serves the health endpoints.
type HealthHandler struct {
	components []HealthComponent
	version    string
}

// NewHealthHandler creates a HealthHandler. The database is always a
// required component; extra components follow it in the report.
func NewHealthHandler(db Pinger, version string, extra ...HealthComponent) *HealthHandler {
	components := append([]HealthComponent{{Name: "database", Pinger: db}}, extra...)
	return &HealthHandler{components: components, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness check. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready returns 503 while any required component is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	for _, c := range h.components {
		if c.Optional {
			continue
		}
		if err := c.Pinger.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health pings every component with latency and reports the build version.
// Overall status is "down" if a required component fails, "degraded" if
// only optional ones do.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.components))
	overall := "ok"

	for _, c := range h.components {
		start := time.Now()
		err := c.Pinger.Ping(ctx)
		latency := time.Since(start)

		if err == nil {
			components[c.Name] = CompStatus{Status: "ok", Latency: latency.String()}
			continue
		}

		components[c.Name] = CompStatus{Status: "down"}
		switch {
		case !c.Optional:
			overall = "down"
		case overall == "ok":
			overall = "degraded"
		}
	}

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
