package layout

import "github.com/sitegrid/sitegrid/pkg/sitemap"

// Relax runs cfg.RelaxIterations passes of greedy pairwise separation over
// pos, mutating it in place. For every unordered pair of positioned nodes
// whose padded bounding boxes intersect, the pair is pushed apart along the
// axis of least overlap, scaled by cfg.RelaxStrength (1 resolves the
// overlap in one step, lower values apply partial correction to avoid
// oscillation).
//
// Each iteration reads from a snapshot of the positions taken at the start
// of the pass and writes corrections into pos, so the order in which pairs
// are visited cannot change the outcome of a pass. The snapshot is the
// explicit form of the "fixed position" anchor: the returned map records,
// per moved node, the last corrected location, which callers surface as the
// node's anchor.
//
// Only nodes in movable receive pushes; everything else (typically nodes
// that held a manual or previous position before the run) participates as
// an immovable obstacle, with the full separation applied to its movable
// counterpart. Pairs with no movable member are skipped.
//
// Relax is greedy and budgeted, not convergent: dense or tightly
// constrained inputs can exit with residual overlap, which is accepted.
// Complexity is O(n² × iterations).
func Relax(nodes []*sitemap.Node, pos map[string]sitemap.Position, movable map[string]bool, cfg Config) map[string]sitemap.Position {
	anchors := make(map[string]sitemap.Position)

	// Only positioned nodes participate.
	active := make([]*sitemap.Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := pos[n.ID]; ok {
			active = append(active, n)
		}
	}

	for it := 0; it < cfg.RelaxIterations; it++ {
		ref := make(map[string]sitemap.Position, len(pos))
		for id, p := range pos {
			ref[id] = p
		}

		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				a, b := active[i], active[j]
				aMove, bMove := movable[a.ID], movable[b.ID]
				if !aMove && !bMove {
					continue
				}

				boxA := NodeBox(a, ref[a.ID]).Expand(cfg.RelaxPadding)
				boxB := NodeBox(b, ref[b.ID]).Expand(cfg.RelaxPadding)
				ox, oy := boxA.Overlap(boxB)
				if ox <= 0 || oy <= 0 {
					continue
				}

				// Push along the axis needing the smaller correction.
				if ox <= oy {
					dir := 1.0
					if ref[a.ID].X > ref[b.ID].X {
						dir = -1
					}
					push(pos, anchors, a.ID, b.ID, aMove, bMove, -dir*ox*cfg.RelaxStrength, 0)
				} else {
					dir := 1.0
					if ref[a.ID].Y > ref[b.ID].Y {
						dir = -1
					}
					push(pos, anchors, a.ID, b.ID, aMove, bMove, 0, -dir*oy*cfg.RelaxStrength)
				}
			}
		}
	}

	return anchors
}

// push applies the separation (dx, dy) to a pair: split evenly when both
// nodes can move, or in full to the single movable node. a receives the
// negative-direction half.
func push(pos, anchors map[string]sitemap.Position, aID, bID string, aMove, bMove bool, dx, dy float64) {
	switch {
	case aMove && bMove:
		shift(pos, anchors, aID, dx/2, dy/2)
		shift(pos, anchors, bID, -dx/2, -dy/2)
	case aMove:
		shift(pos, anchors, aID, dx, dy)
	case bMove:
		shift(pos, anchors, bID, -dx, -dy)
	}
}

func shift(pos, anchors map[string]sitemap.Position, id string, dx, dy float64) {
	p := pos[id]
	p.X += dx
	p.Y += dy
	pos[id] = p
	anchors[id] = p
}
