package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
	"github.com/heartmarshall/stockcheck-backend/internal/metrics"
)

const (
	defaultBuffer = 64
	outboxSize    = 1024
)

// Forwarder ships locally published changes to other instances.
type Forwarder interface {
	Forward(ctx context.Context, c Change) error
}

type seqKey struct {
	node uuid.UUID
	kind Kind
}

// Hub keeps per-event subscriber sets.
type Hub struct {
	log    *slog.Logger
	buffer int

	mu        sync.RWMutex
	subs      map[uuid.UUID]map[*Subscription]struct{}
	forwarder Forwarder
	outbox    chan Change

	// orderMu makes the sequence check and the fan-out one step, so two
	// writers cannot interleave between them.
	orderMu sync.Mutex
	last    map[uuid.UUID]map[seqKey]int64
}

// Subscription is a live feed of one event's changes. C is closed by Close
// and on hub shutdown. A subscriber that falls behind is closed as well and
// Lagged then reports true.
type Subscription struct {
	EventID uuid.UUID
	C       <-chan Change

	ch     chan Change
	hub    *Hub
	once   sync.Once
	lagged atomic.Bool
}

// NewHub creates a hub whose subscribers buffer up to buffer changes.
func NewHub(log *slog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		log:    log.With("component", "notify"),
		buffer: buffer,
		subs:   make(map[uuid.UUID]map[*Subscription]struct{}),
		last:   make(map[uuid.UUID]map[seqKey]int64),
	}
}

// SetForwarder installs a cross-instance forwarder. Call before serving
// traffic and run RunForwarding to drain the queue.
func (h *Hub) SetForwarder(f Forwarder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forwarder = f
	if h.outbox == nil {
		h.outbox = make(chan Change, outboxSize)
	}
}

// RunForwarding hands queued changes to the forwarder until ctx is
// cancelled. Forwarding errors are logged.
func (h *Hub) RunForwarding(ctx context.Context) error {
	h.mu.RLock()
	f, outbox := h.forwarder, h.outbox
	h.mu.RUnlock()
	if f == nil {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-outbox:
			if err := f.Forward(ctx, c); err != nil {
				h.log.WarnContext(ctx, "forward change",
					slog.String("event_id", c.EventID.String()),
					slog.String("kind", string(c.Kind)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Subscribe registers a new subscriber for eventID.
func (h *Hub) Subscribe(eventID uuid.UUID) *Subscription {
	ch := make(chan Change, h.buffer)
	s := &Subscription{EventID: eventID, C: ch, ch: ch, hub: h}

	h.mu.Lock()
	set, ok := h.subs[eventID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[eventID] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	metrics.StreamSubscribers.Inc()
	return s
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		if set, ok := h.subs[s.EventID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.subs, s.EventID)
			}
		}
		close(s.ch)
		h.mu.Unlock()

		metrics.StreamSubscribers.Dec()
	})
}

// Lagged reports whether the subscription was closed because it missed a change.
func (s *Subscription) Lagged() bool { return s.lagged.Load() }

// Subscribers returns the number of live subscriptions for eventID.
func (h *Hub) Subscribers(eventID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[eventID])
}

// Publish delivers c to local subscribers and queues it for the forwarder.
// It never blocks: not on a subscriber, not on the forwarder.
func (h *Hub) Publish(ctx context.Context, c Change) {
	if _, ok := h.deliverOrdered(c); !ok {
		h.log.DebugContext(ctx, "skipped superseded change",
			slog.String("event_id", c.EventID.String()),
			slog.String("kind", string(c.Kind)),
			slog.Int64("seq", c.Seq),
		)
		return
	}

	h.mu.RLock()
	outbox := h.outbox
	h.mu.RUnlock()
	if outbox == nil {
		return
	}
	select {
	case outbox <- c:
	default:
		metrics.NotifyForwardDropped.Inc()
		h.log.WarnContext(ctx, "forward queue full",
			slog.String("event_id", c.EventID.String()),
			slog.String("kind", string(c.Kind)),
		)
	}
}

// Deliver sends a change received from another instance to local
// subscribers only. It returns the number of subscribers that fell behind
// and were closed.
func (h *Hub) Deliver(c Change) int {
	lagging, _ := h.deliverOrdered(c)
	return lagging
}

// deliverOrdered fans c out unless a newer change for the same target was
// already delivered.
func (h *Hub) deliverOrdered(c Change) (int, bool) {
	h.orderMu.Lock()
	defer h.orderMu.Unlock()

	if !h.admit(c) {
		return 0, false
	}
	return h.deliver(c), true
}

func (h *Hub) deliver(c Change) int {
	var lagging []*Subscription

	h.mu.RLock()
	for s := range h.subs[c.EventID] {
		select {
		case s.ch <- c:
		default:
			lagging = append(lagging, s)
		}
	}
	h.mu.RUnlock()

	// Close takes the write lock, so it runs after the read lock is released.
	for _, s := range lagging {
		s.lagged.Store(true)
		s.Close()
	}
	if len(lagging) > 0 {
		metrics.NotifyDropped.Add(float64(len(lagging)))
		h.log.Debug("closed lagging subscribers",
			slog.String("event_id", c.EventID.String()),
			slog.Int("lagging", len(lagging)),
		)
	}
	return len(lagging)
}

// admit reports whether c is newer than the last change delivered for the
// same (event, node, kind). Unordered changes are always admitted. Closing
// an event forgets its sequence numbers. Callers hold orderMu.
func (h *Hub) admit(c Change) bool {
	if c.Kind == KindEventStatus && c.Status == string(domain.EventStatusClosed) {
		delete(h.last, c.EventID)
		return true
	}
	if c.Seq == 0 || c.NodeID == nil {
		return true
	}

	seen, ok := h.last[c.EventID]
	if !ok {
		seen = make(map[seqKey]int64)
		h.last[c.EventID] = seen
	}
	key := seqKey{node: *c.NodeID, kind: c.Kind}
	if c.Seq <= seen[key] {
		return false
	}
	seen[key] = c.Seq
	return true
}

// Shutdown closes every subscription.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	var all []*Subscription
	for _, set := range h.subs {
		for s := range set {
			all = append(all, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range all {
		s.Close()
	}
}
