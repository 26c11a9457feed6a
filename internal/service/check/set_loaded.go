package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/metrics"
	"github.com/heartmarshall/stockcheck-backend/internal/service/status"
)

// LoadResult is the stored load state and the recomputed path of the group.
type LoadResult struct {
	State domain.LoadState
	Path  []status.NodeStatus
}

// SetLoaded marks a group loaded into a vehicle or unloads it. Loading is
// gated on the group being complete; a failed gate writes nothing.
func (s *Service) SetLoaded(ctx context.Context, input SetLoadedInput) (*LoadResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	actor := strings.TrimSpace(input.Actor)
	var vehicle *string
	if input.Loaded {
		vehicle = trimOrNil(input.VehicleLabel)
	}

	var (
		ev    domain.Event
		state domain.LoadState
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

		if err := s.loads.Lock(txCtx, ev.ID, input.NodeID); err != nil {
			return fmt.Errorf("lock load state: %w", err)
		}

		// Read after the lock so the gate sees every committed verification.
		doc, err := s.aggregate(txCtx, ev, true)
		if err != nil {
			return fmt.Errorf("aggregate event %s: %w", ev.ID, err)
		}

		if input.Loaded {
			if err := status.CheckLoadable(doc, input.NodeID); err != nil {
				return err
			}
		} else {
			ns, ok := doc.Node(input.NodeID)
			if !ok {
				return fmt.Errorf("node %s in event %s: %w", input.NodeID, ev.ID, domain.ErrNotFound)
			}
			if ns.Kind != domain.NodeKindGroup {
				return fmt.Errorf("node %s is %s: %w", ns.ID, ns.Kind, domain.ErrInvalidNodeKind)
			}
		}

		state, err = s.loads.Upsert(txCtx, domain.LoadState{
			EventID:      ev.ID,
			NodeID:       input.NodeID,
			Loaded:       input.Loaded,
			SetBy:        actor,
			VehicleLabel: vehicle,
		})
		if err != nil {
			return fmt.Errorf("upsert load state: %w", err)
		}

		changes := map[string]any{"loaded": input.Loaded}
		if vehicle != nil {
			changes["vehicle_label"] = *vehicle
		}
		auditErr := s.audit.Log(txCtx, domain.AuditRecord{
			ID:         uuid.New(),
			EventID:    &ev.ID,
			Actor:      actor,
			EntityType: domain.EntityTypeLoadState,
			EntityID:   &state.NodeID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
		if auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrPreconditionFailed) {
			metrics.LoadTogglesTotal.WithLabelValues("precondition_failed").Inc()
		} else {
			metrics.LoadTogglesTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	result := loadResultLabel(state.Loaded)
	metrics.LoadTogglesTotal.WithLabelValues(result).Inc()
	s.log.InfoContext(ctx, "load state changed",
		slog.String("event_id", ev.ID.String()),
		slog.String("node_id", state.NodeID.String()),
		slog.String("result", result),
		slog.String("actor", actor),
	)

	out := &LoadResult{State: state}

	unlock := s.lockEvent(ev.ID)
	defer unlock()

	doc, err := s.aggregate(ctx, ev, false)
	if err != nil {
		s.log.WarnContext(ctx, "recompute after load toggle",
			slog.String("event_id", ev.ID.String()),
			slog.String("error", err.Error()),
		)
	} else {
		out.Path = doc.Path(state.NodeID)
	}
	s.publishLoad(ctx, doc, state, actor)

	return out, nil
}

func loadResultLabel(loaded bool) string {
	if loaded {
		return "loaded"
	}
	return "unloaded"
}
