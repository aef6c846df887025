package layout

import (
	"cmp"
	"slices"

	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// Placement holds the side tables produced by [PlaceBands]. Nothing is
// written onto the nodes themselves until the engine merges the result;
// the tables also tell [ReconcileBounds] which nodes were assigned a
// column and row in this run.
type Placement struct {
	// Positions maps node ID to the freshly computed position. Only nodes
	// that lacked a position appear here.
	Positions map[string]sitemap.Position

	// Columns maps node ID to its assigned column.
	Columns map[string]Column

	// RowY maps node ID to its depth-aligned base row.
	RowY map[string]float64
}

// PlaceBands computes positions for every unplaced node, one (category,
// depth) band at a time.
//
// Within a band, nodes are ordered by parent ID (keeping siblings adjacent)
// with title and then ID as tie-breaks, and spread with equal spacing from
// the column's inner-left to inner-right edge. A single node is centered.
// The row position is cfg.RowY(depth), identical across categories, so
// equal depths align horizontally through the whole diagram.
//
// Nodes that already hold a position are skipped entirely: they are not
// written and do not occupy a slot in the spacing computation. An empty
// band is a no-op. No error conditions.
func PlaceBands(f *sitemap.Forest, columns []Column, cfg Config) Placement {
	pl := Placement{
		Positions: make(map[string]sitemap.Position),
		Columns:   make(map[string]Column),
		RowY:      make(map[string]float64),
	}

	byDepth := IndexByDepth(f.Nodes())

	for _, depth := range f.Depths() {
		rowY := cfg.RowY(depth)

		// Split the depth row into per-category bands.
		bands := make(map[string][]*sitemap.Node)
		for _, n := range byDepth[depth] {
			if n.Placed() {
				continue
			}
			cat := n.EffectiveCategory()
			bands[cat] = append(bands[cat], n)
		}

		for _, col := range columns {
			band := bands[col.Category]
			if len(band) == 0 {
				continue
			}

			slices.SortStableFunc(band, func(a, b *sitemap.Node) int {
				if c := cmp.Compare(a.ParentID, b.ParentID); c != 0 {
					return c
				}
				if c := cmp.Compare(a.DisplayTitle(), b.DisplayTitle()); c != 0 {
					return c
				}
				return cmp.Compare(a.ID, b.ID)
			})

			for i, n := range band {
				x := col.CenterX()
				if len(band) > 1 {
					x = col.InnerLeft + float64(i)*col.InnerWidth()/float64(len(band)-1)
				}
				pl.Positions[n.ID] = sitemap.Position{X: x, Y: rowY}
				pl.Columns[n.ID] = col
				pl.RowY[n.ID] = rowY
			}
		}
	}

	return pl
}
