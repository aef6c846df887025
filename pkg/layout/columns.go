package layout

// Column is the horizontal band of the canvas reserved for one category.
// Nodes are placed only inside the inner span; the padding strips on both
// sides leave room for labels and connecting lines without touching the
// neighboring column.
type Column struct {
	Category    string
	Left, Right float64 // outer bounds, [Left, Right)

	InnerLeft, InnerRight float64 // placement span
}

// Width returns the outer width of the column.
func (c Column) Width() float64 { return c.Right - c.Left }

// InnerWidth returns the width of the placement span.
func (c Column) InnerWidth() float64 { return c.InnerRight - c.InnerLeft }

// CenterX returns the horizontal center of the placement span.
func (c Column) CenterX() float64 { return (c.InnerLeft + c.InnerRight) / 2 }

// Contains reports whether x lies within the column's placement span.
func (c Column) Contains(x float64) bool {
	return x >= c.InnerLeft && x <= c.InnerRight
}

// AllocateColumns partitions the canvas width into one column per category,
// laid out left to right in the given order (first occurrence in the input
// sequence, by convention).
//
// All columns share the same width, sized so that the row of columns plus
// the gutters between them is centered between the outer margins. With a
// single category this degenerates to one column spanning the width inside
// the margins. An empty category list yields nil.
//
// AllocateColumns is a pure read-only pass with no error conditions; a
// width too small for the category count produces narrow (possibly
// zero-inner-width) columns rather than failing.
func AllocateColumns(categories []string, cfg Config) []Column {
	k := len(categories)
	if k == 0 {
		return nil
	}

	usable := cfg.Width - 2*cfg.Margin - float64(k-1)*cfg.Gutter
	colWidth := usable / float64(k)
	if colWidth < 0 {
		colWidth = 0
	}

	// Re-center in case the width clamp above shrank the total span.
	span := float64(k)*colWidth + float64(k-1)*cfg.Gutter
	left := (cfg.Width - span) / 2

	pad := cfg.ColumnPadding
	if pad > colWidth/2 {
		pad = colWidth / 2
	}

	cols := make([]Column, k)
	for i, cat := range categories {
		l := left + float64(i)*(colWidth+cfg.Gutter)
		cols[i] = Column{
			Category:   cat,
			Left:       l,
			Right:      l + colWidth,
			InnerLeft:  l + pad,
			InnerRight: l + colWidth - pad,
		}
	}
	return cols
}
