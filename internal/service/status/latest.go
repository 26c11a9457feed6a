package status

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// LatestIndex maps each item to its current record: the one with the
// greatest timestamp, ties broken by insertion sequence. It is the only
// place where the ledger's latest-wins rule is applied.
func LatestIndex(records []domain.VerificationRecord) map[uuid.UUID]domain.VerificationRecord {
	idx := make(map[uuid.UUID]domain.VerificationRecord, len(records))
	for _, r := range records {
		cur, ok := idx[r.NodeID]
		if !ok || r.Newer(cur) {
			idx[r.NodeID] = r
		}
	}
	return idx
}
