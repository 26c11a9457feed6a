package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/heartmarshall/stockcheck-backend/internal/auth"
	"github.com/heartmarshall/stockcheck-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// Auth resolves a bearer token into the manager identity. Requests without a
// token pass through anonymously; an invalid token is rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			id, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), id.UserID)
			ctx = ctxutil.WithActor(ctx, id.Name)
			ctx = ctxutil.WithRole(ctx, id.Role)

			r = r.WithContext(ctx)
			forwardRequest(r)
			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager rejects anonymous requests. It must run after Auth.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// writeJSONError writes the same {error: code, message} body as the REST handlers.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message}) //nolint:errcheck
}
