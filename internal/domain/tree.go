package domain

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Tree is an in-memory index over a set of stock nodes. Nodes whose parent
// is not part of the set are treated as roots of the index.
type Tree struct {
	nodes    map[uuid.UUID]StockNode
	children map[uuid.UUID][]uuid.UUID
	roots    []uuid.UUID
}

// NewTree indexes nodes. Children are ordered groups first, then by
// position, then by case-insensitive name.
func NewTree(nodes []StockNode) *Tree {
	t := &Tree{
		nodes:    make(map[uuid.UUID]StockNode, len(nodes)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, n := range nodes {
		t.nodes[n.ID] = n
	}
	for _, n := range nodes {
		if n.ParentID != nil {
			if _, ok := t.nodes[*n.ParentID]; ok {
				t.children[*n.ParentID] = append(t.children[*n.ParentID], n.ID)
				continue
			}
		}
		t.roots = append(t.roots, n.ID)
	}

	for id := range t.children {
		t.sortIDs(t.children[id])
	}
	t.sortIDs(t.roots)

	return t
}

func (t *Tree) sortIDs(ids []uuid.UUID) {
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		na, nb := t.nodes[a], t.nodes[b]
		if na.Kind != nb.Kind {
			if na.Kind == NodeKindGroup {
				return -1
			}
			return 1
		}
		if na.Position != nb.Position {
			return na.Position - nb.Position
		}
		if c := strings.Compare(strings.ToLower(na.Name), strings.ToLower(nb.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.String(), b.String())
	})
}

// Len returns the number of indexed nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with the given id.
func (t *Tree) Node(id uuid.UUID) (StockNode, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Roots returns the top-level node ids in display order.
func (t *Tree) Roots() []uuid.UUID { return t.roots }

// Children returns the ordered child ids of id.
func (t *Tree) Children(id uuid.UUID) []uuid.UUID { return t.children[id] }

// Ancestors returns the ancestor chain of id, nearest parent first.
func (t *Tree) Ancestors(id uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	seen := map[uuid.UUID]struct{}{id: {}}

	n, ok := t.nodes[id]
	for ok && n.ParentID != nil {
		pid := *n.ParentID
		if _, loop := seen[pid]; loop {
			break
		}
		parent, exists := t.nodes[pid]
		if !exists {
			break
		}
		seen[pid] = struct{}{}
		out = append(out, pid)
		n = parent
	}
	return out
}

// IsAncestorOf reports whether ancestor lies strictly above node. Every
// structural mutation (move, duplicate, create) uses it to keep the forest acyclic.
func (t *Tree) IsAncestorOf(ancestor, node uuid.UUID) bool {
	if ancestor == node {
		return false
	}
	return slices.Contains(t.Ancestors(node), ancestor)
}

// Level returns the depth of id with roots at level 1, or 0 if unknown.
func (t *Tree) Level(id uuid.UUID) int {
	if _, ok := t.nodes[id]; !ok {
		return 0
	}
	return len(t.Ancestors(id)) + 1
}

// Height returns the number of levels in the subtree rooted at id (a leaf is 1).
func (t *Tree) Height(id uuid.UUID) int {
	if _, ok := t.nodes[id]; !ok {
		return 0
	}
	return t.height(id, map[uuid.UUID]struct{}{})
}

func (t *Tree) height(id uuid.UUID, seen map[uuid.UUID]struct{}) int {
	if _, ok := seen[id]; ok {
		return 0
	}
	seen[id] = struct{}{}

	best := 0
	for _, c := range t.children[id] {
		if h := t.height(c, seen); h > best {
			best = h
		}
	}
	return best + 1
}

// Subtree returns id and all its descendants in pre-order.
func (t *Tree) Subtree(id uuid.UUID) []StockNode {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}
	var out []StockNode
	t.walk(id, map[uuid.UUID]struct{}{}, func(n StockNode) { out = append(out, n) })
	return out
}

// Closure returns every node reachable from the given roots in pre-order.
// Unknown roots are skipped and nested roots are visited once.
func (t *Tree) Closure(roots []uuid.UUID) []StockNode {
	var out []StockNode
	seen := make(map[uuid.UUID]struct{})
	for _, r := range roots {
		if _, ok := t.nodes[r]; !ok {
			continue
		}
		t.walk(r, seen, func(n StockNode) { out = append(out, n) })
	}
	return out
}

func (t *Tree) walk(id uuid.UUID, seen map[uuid.UUID]struct{}, visit func(StockNode)) {
	if _, ok := seen[id]; ok {
		return
	}
	seen[id] = struct{}{}
	visit(t.nodes[id])
	for _, c := range t.children[id] {
		t.walk(c, seen, visit)
	}
}
