package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/stockcheck-backend/internal/config"
	"github.com/heartmarshall/stockcheck-backend/internal/transport/middleware"
	"github.com/heartmarshall/stockcheck-backend/internal/transport/rest"
)

// handlers groups every HTTP handler mounted by the router.
type handlers struct {
	health   *rest.HealthHandler
	stock    *rest.StockHandler
	event    *rest.EventHandler
	check    *rest.CheckHandler
	periodic *rest.PeriodicHandler
	restock  *rest.RestockHandler
	public   *rest.PublicHandler
	stream   *rest.StreamHandler
}

// routerDeps carries the cross-cutting pieces the router wraps handlers with.
type routerDeps struct {
	log         *slog.Logger
	cors        config.CORSConfig
	auth        middleware.Middleware
	publicLimit middleware.Middleware
	metrics     http.Handler
	metricsPath string
}

// newRouter builds the HTTP handler tree. Manager routes require a valid
// bearer token; public routes are keyed by share token and rate limited.
func newRouter(h handlers, deps routerDeps) http.Handler {
	mux := http.NewServeMux()

	// Health checks.
	mux.HandleFunc("GET /live", h.health.Live)
	mux.HandleFunc("GET /ready", h.health.Ready)
	mux.HandleFunc("GET /health", h.health.Health)
	if deps.metrics != nil {
		path := deps.metricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, deps.metrics)
	}

	manager := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireManager(fn))
	}

	// Stock catalogue.
	manager("POST /stock/nodes", h.stock.CreateNode)
	manager("GET /stock/tree", h.stock.Tree)
	manager("GET /stock/expiry", h.stock.Expiry)
	manager("PATCH /stock/nodes/{id}", h.stock.UpdateNode)
	manager("POST /stock/nodes/{id}/move", h.stock.MoveNode)
	manager("POST /stock/nodes/{id}/duplicate", h.stock.DuplicateSubtree)
	manager("DELETE /stock/nodes/{id}", h.stock.DeleteNode)
	manager("GET /stock/nodes/{id}/activity", h.stock.Activity)

	// Events.
	manager("POST /events", h.event.Create)
	manager("GET /events", h.event.List)
	manager("GET /events/{id}", h.event.Get)
	manager("PATCH /events/{id}/status", h.event.SetStatus)
	manager("PUT /events/{id}/roots", h.event.SetRoots)
	manager("POST /events/{id}/share", h.event.Share)
	manager("DELETE /events/{id}/share", h.event.Unshare)
	manager("GET /events/{id}/activity", h.event.Activity)

	// Check flow.
	manager("GET /events/{id}/status", h.check.Status)
	manager("GET /events/{id}/stats", h.check.Stats)
	manager("POST /events/{id}/verify", h.check.Verify)
	manager("POST /events/{id}/load", h.check.Load)
	manager("POST /events/{id}/presence", h.check.Presence)
	manager("GET /events/{id}/nodes/{nodeID}/history", h.check.History)
	manager("GET /events/{id}/stream", h.stream.Event)

	// Periodic rounds.
	manager("GET /periodic/roots", h.periodic.Roots)
	manager("GET /periodic/tree/{id}", h.periodic.Tree)
	manager("GET /periodic/history/{id}", h.periodic.History)
	manager("POST /periodic/verify", h.periodic.Verify)
	manager("POST /periodic/reset", h.periodic.Reset)
	manager("POST /periodic/replace", h.periodic.Replace)

	// Restock reserve.
	manager("GET /restock/items", h.restock.ListItems)
	manager("POST /restock/items", h.restock.CreateItem)
	manager("PATCH /restock/items/{id}", h.restock.UpdateItem)
	manager("DELETE /restock/items/{id}", h.restock.DeleteItem)
	manager("GET /restock/batches", h.restock.ListBatches)
	manager("POST /restock/batches", h.restock.CreateBatch)
	manager("PATCH /restock/batches/{id}", h.restock.UpdateBatch)
	manager("DELETE /restock/batches/{id}", h.restock.DeleteBatch)
	manager("GET /restock/options/{nodeID}", h.restock.Options)

	public := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, middleware.Wrap(deps.publicLimit, fn))
	}

	// Share-token surface.
	public("GET /public/{token}", h.public.Event)
	public("GET /public/{token}/status", h.public.Status)
	public("POST /public/{token}/verify", h.public.Verify)
	public("POST /public/{token}/load", h.public.Load)
	public("POST /public/{token}/presence", h.public.Presence)
	public("GET /public/{token}/stream", h.stream.Public)

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(deps.log),
		middleware.Logger(deps.log),
		middleware.CORS(deps.cors),
		deps.auth,
	)(mux)
}
