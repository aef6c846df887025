package sitemap

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Forest.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Forest.AddNode] when a node with
	// the same ID already exists. Node IDs must be unique per forest.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Forest.Link] when either endpoint does
	// not exist in the forest.
	ErrUnknownNode = errors.New("unknown node")

	// ErrLinkMismatch is returned by [Forest.Validate] when a node's
	// ParentID and the parent's ChildIDs disagree.
	ErrLinkMismatch = errors.New("parent/child links are inconsistent")

	// ErrDepthMismatch is returned by [Forest.Validate] when a child's depth
	// is not exactly one greater than its parent's.
	ErrDepthMismatch = errors.New("child depth must be parent depth + 1")
)

// Forest is an insertion-ordered arena of sitemap nodes. Besides the nodes
// themselves it maintains two read indexes used by layout: the first-seen
// order of categories (column order) and depth buckets (row alignment).
//
// The zero value is not usable - use New. Forest is not safe for concurrent
// use without external synchronization; callers serialize layout runs.
type Forest struct {
	nodes  map[string]*Node
	order  []string // insertion order of node IDs
	cats   []string // first-seen order of categories
	depths map[int][]*Node
}

// New creates an empty forest.
func New() *Forest {
	return &Forest{
		nodes:  make(map[string]*Node),
		depths: make(map[int][]*Node),
	}
}

// AddNode adds a node to the forest and indexes it by depth and category.
// Returns ErrInvalidNodeID if the ID is empty, or ErrDuplicateNodeID if a
// node with the same ID already exists.
//
// AddNode does not wire hierarchy - use [Forest.Link] after both endpoints
// exist. A node added with a dangling ParentID is treated as a root by
// [Forest.Roots] until the parent appears.
func (f *Forest) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := f.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}

	node := &n
	f.nodes[node.ID] = node
	f.order = append(f.order, node.ID)
	f.depths[node.Depth] = append(f.depths[node.Depth], node)

	cat := node.EffectiveCategory()
	if !slices.Contains(f.cats, cat) {
		f.cats = append(f.cats, cat)
	}
	return nil
}

// Link records parentID as the parent of childID, updating both sides of
// the relationship. Returns ErrUnknownNode if either node is missing.
// Linking the same pair twice is a no-op.
func (f *Forest) Link(parentID, childID string) error {
	parent, ok := f.nodes[parentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, parentID)
	}
	child, ok := f.nodes[childID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, childID)
	}

	child.ParentID = parent.ID
	if !slices.Contains(parent.ChildIDs, child.ID) {
		parent.ChildIDs = append(parent.ChildIDs, child.ID)
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The pointer refers to the actual node, so modifications affect the
// forest (except topology - use Link).
func (f *Forest) Node(id string) (*Node, bool) {
	n, ok := f.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The slice contains pointers
// to the actual node structs.
func (f *Forest) Nodes() []*Node {
	nodes := make([]*Node, 0, len(f.order))
	for _, id := range f.order {
		nodes = append(nodes, f.nodes[id])
	}
	return nodes
}

// NodeCount returns the number of nodes in the forest.
func (f *Forest) NodeCount() int { return len(f.nodes) }

// Categories returns the distinct categories in first-seen order. This is
// the column order used by layout. The returned slice must not be modified.
func (f *Forest) Categories() []string { return f.cats }

// NodesAtDepth returns all nodes at the given depth in insertion order,
// spanning all categories. Returns nil for an empty depth.
func (f *Forest) NodesAtDepth(depth int) []*Node { return f.depths[depth] }

// Depths returns the distinct depth values present, sorted ascending.
func (f *Forest) Depths() []int {
	ds := make([]int, 0, len(f.depths))
	for d := range f.depths {
		ds = append(ds, d)
	}
	slices.Sort(ds)
	return ds
}

// MaxDepth returns the deepest level present, or 0 for an empty forest.
func (f *Forest) MaxDepth() int {
	max := 0
	for d := range f.depths {
		if d > max {
			max = d
		}
	}
	return max
}

// Roots returns nodes without a resolvable parent, in insertion order.
// A node whose ParentID references a missing node counts as a root.
func (f *Forest) Roots() []*Node {
	var roots []*Node
	for _, id := range f.order {
		n := f.nodes[id]
		if n.ParentID == "" {
			roots = append(roots, n)
			continue
		}
		if _, ok := f.nodes[n.ParentID]; !ok {
			roots = append(roots, n)
		}
	}
	return roots
}

// Children returns the child nodes of id in ChildIDs order. Dangling child
// references are skipped. Returns nil if the node has no children or does
// not exist.
func (f *Forest) Children(id string) []*Node {
	n, ok := f.nodes[id]
	if !ok {
		return nil
	}
	var children []*Node
	for _, cid := range n.ChildIDs {
		if c, ok := f.nodes[cid]; ok {
			children = append(children, c)
		}
	}
	return children
}

// ClearPositions removes positions and anchors from every node, making all
// nodes eligible for fresh placement. Callers use this before a full
// re-layout; incremental layout calls skip it.
func (f *Forest) ClearPositions() {
	for _, n := range f.nodes {
		n.Pos = nil
		n.Anchor = nil
	}
}

// Validate checks forest integrity and returns nil if valid. It verifies:
//
//  1. ParentID and ChildIDs are mutually consistent: child.ParentID == p.ID
//     exactly when p.ChildIDs contains child.ID.
//  2. Whenever parent and child are both present, the child's depth is
//     exactly one greater than the parent's.
//
// Returns ErrLinkMismatch or ErrDepthMismatch wrapped with the offending
// node IDs. Dangling ParentID references are allowed (treated as roots).
func (f *Forest) Validate() error {
	for _, id := range f.order {
		n := f.nodes[id]

		for _, cid := range n.ChildIDs {
			child, ok := f.nodes[cid]
			if !ok {
				continue
			}
			if child.ParentID != n.ID {
				return fmt.Errorf("%w: %s lists child %s, but its parent is %q",
					ErrLinkMismatch, n.ID, child.ID, child.ParentID)
			}
			if child.Depth != n.Depth+1 {
				return fmt.Errorf("%w: %s (depth %d) -> %s (depth %d)",
					ErrDepthMismatch, n.ID, n.Depth, child.ID, child.Depth)
			}
		}

		if n.ParentID != "" {
			parent, ok := f.nodes[n.ParentID]
			if ok && !slices.Contains(parent.ChildIDs, n.ID) {
				return fmt.Errorf("%w: %s names parent %s, which does not list it",
					ErrLinkMismatch, n.ID, parent.ID)
			}
		}
	}
	return nil
}
