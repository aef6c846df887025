package layout

import (
	"testing"

	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

func TestReconcileBounds_ClampsIntoColumnAndRow(t *testing.T) {
	cfg := testConfig()
	col := Column{Category: "general", Left: 60, Right: 580, InnerLeft: 100, InnerRight: 540}

	pl := Placement{
		Columns: map[string]Column{"n": col},
		RowY:    map[string]float64{"n": 260},
	}
	// Relaxation drove the node out of its column and far off its row.
	pos := map[string]sitemap.Position{
		"n": {X: 700, Y: 500},
	}

	ReconcileBounds(pl, pos, cfg)

	drift := cfg.MaxRowDrift()
	if got, want := pos["n"].X, col.InnerRight; got != want {
		t.Errorf("x = %f, want clamped to inner right %f", got, want)
	}
	if got, want := pos["n"].Y, 260+drift; got != want {
		t.Errorf("y = %f, want clamped to row + drift %f", got, want)
	}
}

func TestReconcileBounds_InBoundsUntouched(t *testing.T) {
	cfg := testConfig()
	col := Column{Category: "general", Left: 60, Right: 580, InnerLeft: 100, InnerRight: 540}

	pl := Placement{
		Columns: map[string]Column{"n": col},
		RowY:    map[string]float64{"n": 260},
	}
	pos := map[string]sitemap.Position{
		"n": {X: 320, Y: 270},
	}

	ReconcileBounds(pl, pos, cfg)

	if pos["n"] != (sitemap.Position{X: 320, Y: 270}) {
		t.Errorf("in-bounds position changed: %v", pos["n"])
	}
}

func TestReconcileBounds_SkipsUnassignedNodes(t *testing.T) {
	cfg := testConfig()

	// A manually positioned node has no column assignment; reconciliation
	// must leave it alone no matter where it sits.
	pl := Placement{Columns: map[string]Column{}, RowY: map[string]float64{}}
	pos := map[string]sitemap.Position{
		"manual": {X: -500, Y: 9000},
	}

	ReconcileBounds(pl, pos, cfg)

	if pos["manual"] != (sitemap.Position{X: -500, Y: 9000}) {
		t.Errorf("unassigned node clamped: %v", pos["manual"])
	}
}
