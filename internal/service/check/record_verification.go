package check

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/metrics"
	"github.com/heartmarshall/stockcheck-backend/internal/notify"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

// VerificationResult is the appended record and the recomputed status of
// the item and each of its ancestors up to the included root.
type VerificationResult struct {
	Record   domain.VerificationRecord
	Path     []status.NodeStatus
	Unloaded []uuid.UUID
}

// RecordVerification appends a verification of one item.
func (s *Service) RecordVerification(ctx context.Context, input RecordVerificationInput) (*VerificationResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor := strings.TrimSpace(input.Actor)

	var (
		ev       domain.Event
		rec      domain.VerificationRecord
		unloaded []domain.LoadState
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ev, err = s.events.GetForShare(txCtx, input.EventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if !ev.IsOpen() {
			return fmt.Errorf("event %s: %w", ev.ID, domain.ErrEventClosed)
		}

		nodes, err := s.nodes.ListSubtrees(txCtx, ev.RootIDs)
		if err != nil {
			return fmt.Errorf("list nodes: %w", err)
		}
		tree := domain.NewTree(nodes)

		node, ok := tree.Node(input.NodeID)
		if !ok {
			return fmt.Errorf("node %s in event %s: %w", input.NodeID, ev.ID, domain.ErrNotFound)
		}
		if !node.IsItem() {
			return fmt.Errorf("node %s is %s: %w", node.ID, node.Kind, domain.ErrInvalidNodeKind)
		}

		rec, err = s.records.Append(txCtx, domain.VerificationRecord{
			ID:          uuid.New(),
			EventID:     ev.ID,
			NodeID:      node.ID,
			Status:      input.Status,
			IssueCode:   input.IssueCode,
			Actor:       actor,
			Comment:     trimOrNil(input.Comment),
			ObservedQty: input.ObservedQty,
			MissingQty:  input.MissingQty,
		})
		if err != nil {
			return fmt.Errorf("append verification: %w", err)
		}

		ancestors := tree.Ancestors(node.ID)
		if s.opts.LoadPolicy == LoadPolicyAutoReset && rec.Status != domain.StatusOK {
			unloaded, err = s.loads.ClearLoaded(txCtx, ev.ID, ancestors, actor)
			if err != nil {
				return fmt.Errorf("clear loaded ancestors: %w", err)
			}
		}

		// The verifier is now busy on the group holding the item.
		workingOn := node.ID
		if len(ancestors) > 0 {
			workingOn = ancestors[0]
		}
		if _, err := s.presence.Touch(txCtx, ev.ID, actor, &workingOn); err != nil {
			return fmt.Errorf("touch presence: %w", err)
		}

		changes := map[string]any{"status": string(rec.Status)}
		if rec.IssueCode != nil {
			changes["issue_code"] = string(*rec.IssueCode)
		}
		if len(unloaded) > 0 {
			changes["unloaded"] = uuidStrings(loadNodeIDs(unloaded))
		}
		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			ID:         uuid.New(),
			EventID:    &ev.ID,
			Actor:      actor,
			EntityType: domain.EntityTypeVerification,
			EntityID:   &rec.NodeID,
			Action:     domain.AuditActionCreate,
			Changes:    changes,
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.VerificationsTotal.WithLabelValues(string(rec.Status)).Inc()
	s.log.InfoContext(ctx, "item verified",
		slog.String("event_id", ev.ID.String()),
		slog.String("node_id", rec.NodeID.String()),
		slog.String("status", string(rec.Status)),
		slog.String("actor", actor),
	)

	result := &VerificationResult{Record: rec, Unloaded: loadNodeIDs(unloaded)}

	unlock := s.lockEvent(ev.ID)
	defer unlock()

	nodeID := rec.NodeID
	change := notify.Change{
		Kind:    notify.KindItemVerified,
		Seq:     rec.Seq,
		EventID: ev.ID,
		NodeID:  &nodeID,
		Actor:   actor,
		Status:  string(rec.Status),
		At:      rec.CreatedAt,
	}

	doc, err := s.aggregate(ctx, ev, false)
	if err != nil {
		// The record is committed: the caller still gets it and subscribers
		// still hear about it, without the recomputed path.
		s.log.WarnContext(ctx, "recompute after verification",
			slog.String("event_id", ev.ID.String()),
			slog.String("error", err.Error()),
		)
	} else {
		result.Path = doc.Path(rec.NodeID)
		change.Path = result.Path
		change.Busy = doc.Busy
	}

	s.notifier.Publish(ctx, change)
	for _, st := range unloaded {
		s.publishLoad(ctx, doc, st, actor)
	}

	return result, nil
}

// publishLoad announces a load state change. doc may be nil when the
// recompute failed; the change then carries no path.
func (s *Service) publishLoad(ctx context.Context, doc *status.Document, st domain.LoadState, actor string) {
	nodeID, loaded := st.NodeID, st.Loaded
	c := notify.Change{
		Kind:    notify.KindLoadChanged,
		Seq:     st.Version,
		EventID: st.EventID,
		NodeID:  &nodeID,
		Actor:   actor,
		Loaded:  &loaded,
		At:      st.UpdatedAt,
	}
	if doc != nil {
		c.Path = doc.Path(nodeID)
	}
	s.notifier.Publish(ctx, c)
}

func loadNodeIDs(states []domain.LoadState) []uuid.UUID {
	if len(states) == 0 {
		return nil
	}
	out := make([]uuid.UUID, len(states))
	for i, st := range states {
		out[i] = st.NodeID
	}
	return out
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
