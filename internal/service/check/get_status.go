package check

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

// GetStatus returns the status document of an event. Closed events are readable.
func (s *Service) GetStatus(ctx context.Context, eventID uuid.UUID) (*status.Document, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	doc, err := s.aggregate(ctx, ev, false)
	if err != nil {
		return nil, fmt.Errorf("aggregate event %s: %w", eventID, err)
	}
	return doc, nil
}

// History returns every verification of one item in the event, newest first.
func (s *Service) History(ctx context.Context, eventID, nodeID uuid.UUID) ([]domain.VerificationRecord, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	records, err := s.records.History(ctx, eventID, nodeID, s.opts.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("verification history: %w", err)
	}
	return records, nil
}

// Stats summarizes an event for the manager dashboard.
type Stats struct {
	Summary status.Summary `json:"summary"`
	// Records is the total number of ledger entries, including superseded ones.
	Records int `json:"records"`
	// Rechecked counts items verified more than once.
	Rechecked int      `json:"rechecked"`
	Busy      []string `json:"busy"`
}

// Stats returns the summary counters of an event together with ledger totals.
func (s *Service) Stats(ctx context.Context, eventID uuid.UUID) (*Stats, error) {
	doc, err := s.GetStatus(ctx, eventID)
	if err != nil {
		return nil, err
	}

	counts, err := s.records.CountByNode(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count verifications: %w", err)
	}

	out := &Stats{Summary: doc.Summary, Busy: doc.Busy}
	for id, n := range counts {
		// Records of nodes since removed from the event still count as ledger entries.
		out.Records += n
		if n > 1 && doc.Contains(id) {
			out.Rechecked++
		}
	}
	return out, nil
}
