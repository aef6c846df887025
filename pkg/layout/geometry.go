package layout

import "github.com/sitegrid/sitegrid/pkg/sitemap"

// Minimum estimated bounding box for a node, in canvas units.
const (
	MinNodeWidth  = 150.0
	MinNodeHeight = 100.0
)

// Label sizing heuristics. Node boxes are not stored anywhere; they are
// re-estimated from the display text whenever a pass needs them.
const (
	charWidth   = 8.0  // average glyph advance at the renderer's font size
	textPadding = 24.0 // horizontal padding inside the box
)

// Box is an axis-aligned bounding box in canvas coordinates, with y growing
// downward (Top < Bottom).
type Box struct {
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Expand returns the box grown by pad on every side.
func (b Box) Expand(pad float64) Box {
	return Box{
		Left:   b.Left - pad,
		Right:  b.Right + pad,
		Top:    b.Top - pad,
		Bottom: b.Bottom + pad,
	}
}

// Overlap returns the overlap extent of two boxes per axis. Both values are
// positive only when the boxes actually intersect.
func (b Box) Overlap(o Box) (x, y float64) {
	x = min(b.Right, o.Right) - max(b.Left, o.Left)
	y = min(b.Bottom, o.Bottom) - max(b.Top, o.Top)
	return x, y
}

// Intersects reports whether the boxes overlap on both axes.
func (b Box) Intersects(o Box) bool {
	x, y := b.Overlap(o)
	return x > 0 && y > 0
}

// EstimateSize estimates a node's bounding box dimensions from its display
// text. Longer titles and URLs widen the box; the height is fixed since
// labels render on a single line with the URL beneath.
func EstimateSize(n *sitemap.Node) (w, h float64) {
	chars := len(n.DisplayTitle())
	if len(n.URL) > chars {
		chars = len(n.URL)
	}
	w = float64(chars)*charWidth + textPadding
	if w < MinNodeWidth {
		w = MinNodeWidth
	}
	return w, MinNodeHeight
}

// NodeBox returns the estimated bounding box of a node centered at pos.
func NodeBox(n *sitemap.Node, pos sitemap.Position) Box {
	w, h := EstimateSize(n)
	return Box{
		Left:   pos.X - w/2,
		Right:  pos.X + w/2,
		Top:    pos.Y - h/2,
		Bottom: pos.Y + h/2,
	}
}
