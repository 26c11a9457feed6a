package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/audit"
	eventrepo "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/loadstate"
	periodicrepo "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/periodic"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/presence"
	restockrepo "github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/restock"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/sharelink"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/stocknode"
	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/verification"
	"github.com/heartmarshall/stockcheck-backend/internal/auth"
	"github.com/heartmarshall/stockcheck-backend/internal/config"
	"github.com/heartmarshall/stockcheck-backend/internal/metrics"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
	"github.com/heartmarshall/stockcheck-backend/internal/service/check"
	"github.com/heartmarshall/stockcheck-backend/internal/service/event"
	"github.com/heartmarshall/stockcheck-backend/internal/service/periodic"
	"github.com/heartmarshall/stockcheck-backend/internal/service/restock"
	"github.com/heartmarshall/stockcheck-backend/internal/service/stock"
	"github.com/heartmarshall/stockcheck-backend/internal/transport/middleware"
	"github.com/heartmarshall/stockcheck-backend/internal/transport/rest"
)

const rateLimitCleanupInterval = time.Minute

// Server is the wired HTTP surface: repositories, services and handlers
// over one pool and one change hub.
type Server struct {
	Handler http.Handler
	JWT     *auth.JWTManager

	limiter *middleware.RateLimiter
}

// NewServer builds the full handler tree. The caller owns pool and hub;
// extra components are reported by /health next to the database.
func NewServer(cfg *config.Config, pool *pgxpool.Pool, hub *notify.Hub, logger *slog.Logger, extra ...rest.HealthComponent) *Server {
	// Repositories.
	nodes := stocknode.New(pool)
	events := eventrepo.New(pool)
	records := verification.New(pool)
	loads := loadstate.New(pool)
	pings := presence.New(pool)
	links := sharelink.New(pool)
	auditRepo := audit.New(pool)
	periodicRecords := periodicrepo.New(pool)
	reserve := restockrepo.New(pool)

	txm := postgres.NewTxManager(pool)

	// Services.
	stockSvc := stock.NewService(logger, nodes, auditRepo, txm, cfg.Check.MaxDepth)
	eventSvc := event.NewService(logger, events, nodes, links, auditRepo, txm, hub, auth.NewShareToken)
	checkSvc := check.NewService(logger, events, nodes, records, loads, pings, auditRepo, txm, hub, check.Options{
		LoadPolicy:      check.LoadPolicy(cfg.Check.LoadPolicy),
		PresenceWindow:  cfg.Presence.Window,
		BroadcastOnPing: cfg.Presence.BroadcastOnPing,
		HistoryLimit:    cfg.Check.HistoryLimit,
	})
	periodicSvc := periodic.NewService(logger, nodes, periodicRecords, reserve, auditRepo, txm, 0)
	restockSvc := restock.NewService(logger, reserve, nodes, auditRepo, txm)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	limiter := middleware.NewRateLimiter(rateLimitCleanupInterval)

	h := handlers{
		health:   rest.NewHealthHandler(pool, BuildVersion(), extra...),
		stock:    rest.NewStockHandler(stockSvc, logger),
		event:    rest.NewEventHandler(eventSvc, logger),
		check:    rest.NewCheckHandler(checkSvc, logger),
		periodic: rest.NewPeriodicHandler(periodicSvc, logger),
		restock:  rest.NewRestockHandler(restockSvc, logger),
		public:   rest.NewPublicHandler(eventSvc, checkSvc, logger),
		stream:   rest.NewStreamHandler(hub, checkSvc, eventSvc, cfg.Notify.PingInterval, cfg.CORS.AllowedOrigins, logger),
	}

	deps := routerDeps{
		log:         logger,
		cors:        cfg.CORS,
		auth:        middleware.Auth(jwtManager),
		publicLimit: limiter.Limit(cfg.Public.RateLimitPerMinute),
	}
	if cfg.Metrics.Enabled {
		deps.metrics = metrics.Handler()
		deps.metricsPath = cfg.Metrics.Path
	}

	return &Server{
		Handler: newRouter(h, deps),
		JWT:     jwtManager,
		limiter: limiter,
	}
}

// Close stops background housekeeping owned by the server.
func (s *Server) Close() {
	s.limiter.Stop()
}
