package layout

import "github.com/sitegrid/sitegrid/pkg/sitemap"

// ReconcileBounds clamps relaxed positions back into the grouping and
// alignment constraints the relaxer knows nothing about: x into the
// assigned column's inner span, y into a window of ±cfg.MaxRowDrift()
// around the depth-aligned base row.
//
// Only nodes present in the placement side tables are touched - nodes that
// entered the run already positioned (manual placements, earlier layouts)
// were never assigned a column and are left unclamped. pos is mutated in
// place.
func ReconcileBounds(pl Placement, pos map[string]sitemap.Position, cfg Config) {
	drift := cfg.MaxRowDrift()

	for id, col := range pl.Columns {
		p, ok := pos[id]
		if !ok {
			continue
		}

		p.X = clamp(p.X, col.InnerLeft, col.InnerRight)

		rowY := pl.RowY[id]
		p.Y = clamp(p.Y, rowY-drift, rowY+drift)

		pos[id] = p
	}
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		// Degenerate span (zero-width column); collapse to its midpoint.
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
