package sitemap

// DefaultCategory is the category assigned to nodes without an explicit one.
const DefaultCategory = "general"

// Position is a 2D point in canvas coordinates. Layout positions refer to
// the center of a node's bounding box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents one page of a site: a positionable unit with hierarchy,
// a category label, and display text.
//
// The zero value is not usable - ID must be set before adding to a Forest.
type Node struct {
	ID       string   // Unique identifier (never empty in a valid forest)
	ParentID string   // Parent node ID, empty for roots
	ChildIDs []string // Ordered child IDs, kept consistent with ParentID by Forest.Link
	Depth    int      // Hierarchical distance from a root (roots are 0)
	Category string   // Column grouping label; empty means DefaultCategory
	Title    string   // Display title (defaults to ID when empty)
	URL      string   // Page URL, used for label sizing and rendering

	// Pos is the node's position, nil until placed. Layout never overwrites
	// a non-nil Pos; manual placements are sticky.
	Pos *Position

	// Anchor is the relaxation bookkeeping position (the last corrected
	// location written by the overlap relaxer). Transient: cleared together
	// with Pos and not part of the node's topology.
	Anchor *Position
}

// EffectiveCategory returns the node's category, or DefaultCategory when unset.
func (n *Node) EffectiveCategory() string {
	if n.Category == "" {
		return DefaultCategory
	}
	return n.Category
}

// DisplayTitle returns the title if set, otherwise the ID.
func (n *Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Placed reports whether the node holds a position.
func (n *Node) Placed() bool { return n.Pos != nil }

// SetPos assigns a position to the node.
func (n *Node) SetPos(x, y float64) { n.Pos = &Position{X: x, Y: y} }
