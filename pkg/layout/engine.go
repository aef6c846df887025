package layout

import (
	"slices"

	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// Result reports everything one layout run produced. Positions cover every
// node that holds a position after the run, including pre-existing manual
// placements; side-table data (columns, rows) covers only what this run
// computed.
type Result struct {
	// Positions maps node ID to final position for all positioned nodes.
	Positions map[string]sitemap.Position

	// Anchors maps node ID to the relaxer's last corrected location, for
	// nodes the relaxer moved. Mirrored onto Node.Anchor by Compute.
	Anchors map[string]sitemap.Position

	// Columns are the allocated category columns in first-seen order.
	Columns []Column

	// RowY maps each depth present in the forest to its base row position
	// (before relaxation drift).
	RowY map[int]float64

	// PlacedIDs lists the nodes that received a fresh position in this
	// run, sorted by ID. Nodes already positioned are absent.
	PlacedIDs []string
}

// Engine runs the full grouped-column layout over a forest. It is a
// synchronous, single-call computation: no goroutines, no I/O, no retained
// references. Concurrent runs over the same forest must be serialized by
// the caller.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given config. Zero config fields
// are replaced with defaults.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.Normalize()}
}

// Config returns the engine's normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// Compute assigns positions to every unplaced node in the forest and
// returns the run's result. Nodes that already hold a position keep it
// bit for bit; they act as immovable obstacles during relaxation.
//
// The passes run in a fixed order: column allocation and depth indexing
// (read-only), band placement (computes fresh positions into side tables),
// overlap relaxation (nudges freshly placed nodes apart), and bounds
// reconciliation (clamps the relaxed positions back into their column and
// row window). Only then are positions and anchors merged into the nodes.
//
// Given the same input order and config, Compute is deterministic.
func (e *Engine) Compute(f *sitemap.Forest) Result {
	nodes := f.Nodes()

	columns := AllocateColumns(f.Categories(), e.cfg)

	rowY := make(map[int]float64)
	for depth := range IndexByDepth(nodes) {
		rowY[depth] = e.cfg.RowY(depth)
	}

	pl := PlaceBands(f, columns, e.cfg)

	// Working position table: existing placements plus fresh ones.
	pos := make(map[string]sitemap.Position, len(nodes))
	movable := make(map[string]bool, len(pl.Positions))
	for _, n := range nodes {
		if n.Pos != nil {
			pos[n.ID] = *n.Pos
		}
	}
	for id, p := range pl.Positions {
		pos[id] = p
		movable[id] = true
	}

	anchors := Relax(nodes, pos, movable, e.cfg)
	ReconcileBounds(pl, pos, e.cfg)

	// Merge: fresh positions onto their nodes, anchors onto moved nodes.
	placed := make([]string, 0, len(pl.Positions))
	for _, n := range nodes {
		if _, fresh := pl.Positions[n.ID]; fresh {
			p := pos[n.ID]
			n.Pos = &sitemap.Position{X: p.X, Y: p.Y}
			placed = append(placed, n.ID)
		}
		if a, ok := anchors[n.ID]; ok {
			n.Anchor = &sitemap.Position{X: a.X, Y: a.Y}
		}
	}
	slices.Sort(placed)

	return Result{
		Positions: pos,
		Anchors:   anchors,
		Columns:   columns,
		RowY:      rowY,
		PlacedIDs: placed,
	}
}

// Compute is a convenience wrapper around [Engine.Compute] for one-shot use.
func Compute(f *sitemap.Forest, cfg Config) Result {
	return NewEngine(cfg).Compute(f)
}
