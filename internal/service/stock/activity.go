package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// NodeActivity returns the most recent audit records of one stock node,
// newest first. History outlives the node, so deleted ids are accepted.
func (s *Service) NodeActivity(ctx context.Context, id uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}
	if limit > maxActivityLimit {
		return nil, domain.NewValidationError("limit", "max 200")
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeStockNode, id, limit)
	if err != nil {
		return nil, fmt.Errorf("node activity: %w", err)
	}
	return records, nil
}
