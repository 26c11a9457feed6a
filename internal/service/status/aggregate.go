// Package status computes the per-event status document: item verification
// state, group completeness, load eligibility and busy actors. Everything in
// this package is a pure function of its inputs.
package status

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/stockcheck-backend/internal/domain"
)

// Snapshot is the committed state of one event at read time.
type Snapshot struct {
	EventID  uuid.UUID
	Roots    []uuid.UUID
	Nodes    []domain.StockNode
	Records  []domain.VerificationRecord
	Loads    []domain.LoadState
	Presence []domain.PresenceEntry
}

// NodeStatus is the derived state of one node in the closure.
type NodeStatus struct {
	ID       uuid.UUID       `json:"id"`
	ParentID *uuid.UUID      `json:"parent_id,omitempty"`
	Name     string          `json:"name"`
	Kind     domain.NodeKind `json:"type"`
	Children []uuid.UUID     `json:"children,omitempty"`
	Busy     []string        `json:"busy,omitempty"`

	// Item fields.
	Status     domain.VerificationStatus `json:"status,omitempty"`
	LastActor  string                    `json:"last_actor,omitempty"`
	LastAt     *time.Time                `json:"last_at,omitempty"`
	Comment    *string                   `json:"comment,omitempty"`
	IssueCode  *domain.IssueCode         `json:"issue_code,omitempty"`
	MissingQty *int                      `json:"missing_qty,omitempty"`

	// Group fields.
	Verified     int     `json:"verified"`
	Total        int     `json:"total"`
	Complete     bool    `json:"complete"`
	CanLoad      bool    `json:"can_load"`
	Loaded       bool    `json:"loaded"`
	LoadedBy     string  `json:"loaded_by,omitempty"`
	VehicleLabel *string `json:"vehicle_label,omitempty"`
	LoadStale    bool    `json:"load_stale,omitempty"`
}

// Summary counts nodes of the closure by state.
type Summary struct {
	ItemsTotal     int `json:"items_total"`
	ItemsOK        int `json:"items_ok"`
	ItemsNotOK     int `json:"items_not_ok"`
	ItemsTodo      int `json:"items_todo"`
	GroupsTotal    int `json:"groups_total"`
	GroupsComplete int `json:"groups_complete"`
	GroupsLoaded   int `json:"groups_loaded"`
}

// Document is the status of every node reachable from an event's roots.
type Document struct {
	EventID     uuid.UUID                 `json:"event_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Roots       []uuid.UUID               `json:"roots"`
	Nodes       map[uuid.UUID]*NodeStatus `json:"nodes"`
	Busy        []string                  `json:"busy"`
	Summary     Summary                   `json:"summary"`
}

// Aggregate builds the status document for one event. now is the reference
// time for presence freshness and is never cached by the caller.
func Aggregate(in Snapshot, now time.Time, window time.Duration) *Document {
	tree := domain.NewTree(in.Nodes)
	latest := LatestIndex(in.Records)

	loads := make(map[uuid.UUID]domain.LoadState, len(in.Loads))
	for _, ls := range in.Loads {
		loads[ls.NodeID] = ls
	}

	doc := &Document{
		EventID:     in.EventID,
		GeneratedAt: now,
		Nodes:       make(map[uuid.UUID]*NodeStatus),
		Busy:        []string{},
	}

	seen := make(map[uuid.UUID]struct{})
	for _, r := range in.Roots {
		if _, ok := tree.Node(r); !ok {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		// A root nested under another included root is already covered.
		if covered(tree, r, in.Roots) {
			continue
		}
		doc.Roots = append(doc.Roots, r)
		fold(tree, r, latest, loads, doc, seen)
	}
	if doc.Roots == nil {
		doc.Roots = []uuid.UUID{}
	}

	applyPresence(doc, tree, in.Presence, now, window)
	doc.Summary = summarize(doc)

	return doc
}

func covered(tree *domain.Tree, id uuid.UUID, roots []uuid.UUID) bool {
	for _, other := range roots {
		if other != id && tree.IsAncestorOf(other, id) {
			return true
		}
	}
	return false
}

// fold computes the node's status after its children (post-order) and
// returns its (verified, total) leaf counts.
func fold(
	tree *domain.Tree,
	id uuid.UUID,
	latest map[uuid.UUID]domain.VerificationRecord,
	loads map[uuid.UUID]domain.LoadState,
	doc *Document,
	seen map[uuid.UUID]struct{},
) (int, int) {
	if _, ok := seen[id]; ok {
		return 0, 0
	}
	seen[id] = struct{}{}

	n, _ := tree.Node(id)
	ns := &NodeStatus{
		ID:       n.ID,
		ParentID: n.ParentID,
		Name:     n.Name,
		Kind:     n.Kind,
	}
	doc.Nodes[id] = ns

	if n.IsItem() {
		ns.Status = domain.StatusTodo
		if rec, ok := latest[id]; ok {
			at := rec.CreatedAt
			ns.Status = rec.Status
			ns.LastActor = rec.Actor
			ns.LastAt = &at
			ns.Comment = rec.Comment
			ns.IssueCode = rec.IssueCode
			ns.MissingQty = rec.MissingQty
		}
		ns.Total = 1
		if ns.Status == domain.StatusOK {
			ns.Verified = 1
		}
		ns.Complete = ns.Verified == 1
		return ns.Verified, ns.Total
	}

	for _, c := range tree.Children(id) {
		v, tot := fold(tree, c, latest, loads, doc, seen)
		ns.Verified += v
		ns.Total += tot
		ns.Children = append(ns.Children, c)
	}

	ns.Complete = ns.Total == 0 || ns.Verified == ns.Total
	ns.CanLoad = ns.Complete
	if ls, ok := loads[id]; ok {
		ns.Loaded = ls.Loaded
		ns.LoadedBy = ls.SetBy
		ns.VehicleLabel = ls.VehicleLabel
	}
	ns.LoadStale = ns.Loaded && !ns.Complete

	return ns.Verified, ns.Total
}

func applyPresence(doc *Document, tree *domain.Tree, entries []domain.PresenceEntry, now time.Time, window time.Duration) {
	perNode := make(map[uuid.UUID]map[string]struct{})

	add := func(id uuid.UUID, actor string) {
		set, ok := perNode[id]
		if !ok {
			set = make(map[string]struct{})
			perNode[id] = set
		}
		set[actor] = struct{}{}
	}

	for _, p := range entries {
		if p.Actor == "" || !p.IsFresh(now, window) {
			continue
		}
		if p.SubtreeID == nil {
			continue
		}
		if _, ok := doc.Nodes[*p.SubtreeID]; !ok {
			continue
		}
		add(*p.SubtreeID, p.Actor)
		for _, a := range tree.Ancestors(*p.SubtreeID) {
			if _, ok := doc.Nodes[a]; !ok {
				break
			}
			add(a, p.Actor)
		}
	}

	doc.Busy = BusyActors(entries, now, window)
	for id, set := range perNode {
		doc.Nodes[id].Busy = sortedKeys(set)
	}
}

// BusyActors returns the distinct actors with a fresh ping anywhere in the
// event, sorted.
func BusyActors(entries []domain.PresenceEntry, now time.Time, window time.Duration) []string {
	set := make(map[string]struct{})
	for _, p := range entries {
		if p.Actor != "" && p.IsFresh(now, window) {
			set[p.Actor] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func summarize(doc *Document) Summary {
	var s Summary
	for _, ns := range doc.Nodes {
		if ns.Kind == domain.NodeKindItem {
			s.ItemsTotal++
			switch ns.Status {
			case domain.StatusOK:
				s.ItemsOK++
			case domain.StatusTodo:
				s.ItemsTodo++
			default:
				s.ItemsNotOK++
			}
			continue
		}
		s.GroupsTotal++
		if ns.Complete {
			s.GroupsComplete++
		}
		if ns.Loaded {
			s.GroupsLoaded++
		}
	}
	return s
}

// Node returns the status of id if it is in the closure.
func (d *Document) Node(id uuid.UUID) (*NodeStatus, bool) {
	ns, ok := d.Nodes[id]
	return ns, ok
}

// Contains reports whether id is reachable from the event's roots.
func (d *Document) Contains(id uuid.UUID) bool {
	_, ok := d.Nodes[id]
	return ok
}

// Path returns the status of id followed by each ancestor up to the
// included root. It is the set of nodes a single write can change.
func (d *Document) Path(id uuid.UUID) []NodeStatus {
	var out []NodeStatus
	ns, ok := d.Nodes[id]
	for ok {
		out = append(out, *ns)
		if ns.ParentID == nil || slices.Contains(d.Roots, ns.ID) {
			break
		}
		ns, ok = d.Nodes[*ns.ParentID]
	}
	return out
}
