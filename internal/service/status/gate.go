package status

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// CheckLoadable returns nil if group id may be marked loaded. A group that is
// missing from the closure yields ErrNotFound, an item yields
// ErrInvalidNodeKind and an incomplete group a *domain.PreconditionError.
func CheckLoadable(doc *Document, id uuid.UUID) error {
	ns, ok := doc.Node(id)
	if !ok {
		return fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}
	if ns.Kind != domain.NodeKindGroup {
		return fmt.Errorf("node %s is %s: %w", id, ns.Kind, domain.ErrInvalidNodeKind)
	}
	if !ns.CanLoad {
		return &domain.PreconditionError{NodeID: id.String(), Verified: ns.Verified, Total: ns.Total}
	}
	return nil
}

// LoadedAncestors returns the groups on the path of id (excluding id itself
// when it is an item) that are currently marked loaded.
func LoadedAncestors(doc *Document, id uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for _, ns := range doc.Path(id) {
		if ns.Kind == domain.NodeKindGroup && ns.Loaded {
			out = append(out, ns.ID)
		}
	}
	return out
}

// Unresolved returns how many items under group id are not yet OK.
func (d *Document) Unresolved(id uuid.UUID) int {
	ns, ok := d.Nodes[id]
	if !ok {
		return 0
	}
	return ns.Total - ns.Verified
}
