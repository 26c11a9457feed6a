package middleware

import (
	"context"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the caller does not hold an
// admin token. Use in REST handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
