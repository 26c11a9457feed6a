//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/stockcheck-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/stockcheck-backend/internal/app"
	authpkg "github.com/heartmarshall/stockcheck-backend/internal/auth"
	"github.com/heartmarshall/stockcheck-backend/internal/config"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-at-least-32-chars-long!!",
			JWTIssuer:      "test-issuer",
			AccessTokenTTL: 15 * time.Minute,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
		Check:    config.CheckConfig{LoadPolicy: "sticky", MaxDepth: 5, HistoryLimit: 200},
		Presence: config.PresenceConfig{Window: 2 * time.Minute, BroadcastOnPing: true},
		Notify:   config.NotifyConfig{Buffer: 64, PingInterval: time.Second},
		Public:   config.PublicConfig{RateLimitPerMinute: 600},
	}

	hub := notify.NewHub(logger, cfg.Notify.Buffer)
	api := app.NewServer(cfg, pool, hub, logger)

	srv := httptest.NewServer(api.Handler)
	t.Cleanup(func() {
		hub.Shutdown()
		srv.Close()
		api.Close()
	})

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    api.JWT,
	}
}

// managerToken returns a signed token for a fresh manager identity.
func (ts *testServer) managerToken(t *testing.T, name string) string {
	t.Helper()

	tok, err := ts.jwt.GenerateAccessToken(authpkg.Identity{UserID: uuid.New(), Name: name, Role: "manager"})
	require.NoError(t, err)
	return tok
}

// adminToken returns a signed token for a fresh admin identity.
func (ts *testServer) adminToken(t *testing.T, name string) string {
	t.Helper()

	tok, err := ts.jwt.GenerateAccessToken(authpkg.Identity{UserID: uuid.New(), Name: name, Role: "admin"})
	require.NoError(t, err)
	return tok
}

// do sends a JSON request and returns status + raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

// doJSON is do followed by decoding the body into a generic map.
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	status, raw := ts.do(t, method, path, body, token)
	var result map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	}
	return status, result
}

// createNode creates a stock node and returns its id.
func (ts *testServer) createNode(t *testing.T, token string, parent *string, name, kind string) string {
	t.Helper()

	body := map[string]any{"name": name, "type": kind}
	if parent != nil {
		body["parent_id"] = *parent
	}
	status, node := ts.doJSON(t, http.MethodPost, "/stock/nodes", body, token)
	require.Equal(t, http.StatusCreated, status, "create node %q: %v", name, node)

	id, ok := node["id"].(string)
	require.True(t, ok, "expected id in node response")
	return id
}

// kit is a small catalogue: one bag with a pouch and two items.
//
//	Bag
//	├── Pouch
//	│   └── Gauze
//	└── Gloves
type kit struct {
	Bag, Pouch, Gauze, Gloves string
}

func (ts *testServer) createKit(t *testing.T, token string) kit {
	t.Helper()

	var k kit
	k.Bag = ts.createNode(t, token, nil, "Bag "+uuid.NewString()[:8], "GROUP")
	k.Pouch = ts.createNode(t, token, &k.Bag, "Pouch", "GROUP")
	k.Gauze = ts.createNode(t, token, &k.Pouch, "Gauze", "ITEM")
	k.Gloves = ts.createNode(t, token, &k.Bag, "Gloves", "ITEM")
	return k
}

// createEvent creates an open event over roots and returns its id.
func (ts *testServer) createEvent(t *testing.T, token, title string, roots ...string) string {
	t.Helper()

	status, ev := ts.doJSON(t, http.MethodPost, "/events", map[string]any{
		"title":    title,
		"date":     "2026-07-14",
		"root_ids": roots,
	}, token)
	require.Equal(t, http.StatusCreated, status, "create event: %v", ev)

	id, ok := ev["id"].(string)
	require.True(t, ok, "expected id in event response")
	return id
}

// nodeStatus extracts one node from a status document.
func nodeStatus(t *testing.T, doc map[string]any, id string) map[string]any {
	t.Helper()

	nodes, ok := doc["nodes"].(map[string]any)
	require.True(t, ok, "expected nodes map in status document")
	ns, ok := nodes[id].(map[string]any)
	require.True(t, ok, "node %s not in status document", id)
	return ns
}
