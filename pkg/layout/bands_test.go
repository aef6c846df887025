package layout

import (
	"math"
	"testing"

	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

func mustAdd(t *testing.T, f *sitemap.Forest, n sitemap.Node) {
	t.Helper()
	if err := f.AddNode(n); err != nil {
		t.Fatalf("add node %s: %v", n.ID, err)
	}
}

func TestPlaceBands_SingleNodeCentered(t *testing.T) {
	cfg := testConfig()
	f := sitemap.New()
	mustAdd(t, f, sitemap.Node{ID: "home", Depth: 0})

	cols := AllocateColumns(f.Categories(), cfg)
	pl := PlaceBands(f, cols, cfg)

	p, ok := pl.Positions["home"]
	if !ok {
		t.Fatal("home was not placed")
	}
	if got, want := p.X, cols[0].CenterX(); got != want {
		t.Errorf("x = %f, want column center %f", got, want)
	}
	if got, want := p.Y, cfg.RowY(0); got != want {
		t.Errorf("y = %f, want base row %f", got, want)
	}
}

func TestPlaceBands_EvenSpread(t *testing.T) {
	cfg := testConfig()
	f := sitemap.New()
	mustAdd(t, f, sitemap.Node{ID: "root", Depth: 0})
	for _, id := range []string{"a", "b", "c", "d"} {
		mustAdd(t, f, sitemap.Node{ID: id, ParentID: "root", Depth: 1})
	}

	cols := AllocateColumns(f.Categories(), cfg)
	pl := PlaceBands(f, cols, cfg)

	col := cols[0]
	step := col.InnerWidth() / 3
	for i, id := range []string{"a", "b", "c", "d"} {
		p := pl.Positions[id]
		want := col.InnerLeft + float64(i)*step
		if math.Abs(p.X-want) > 1e-9 {
			t.Errorf("%s x = %f, want %f", id, p.X, want)
		}
		if got, want := p.Y, cfg.RowY(1); got != want {
			t.Errorf("%s y = %f, want %f", id, got, want)
		}
	}

	// First and last node sit exactly on the inner edges.
	if got := pl.Positions["a"].X; got != col.InnerLeft {
		t.Errorf("first x = %f, want inner left %f", got, col.InnerLeft)
	}
	if got := pl.Positions["d"].X; math.Abs(got-col.InnerRight) > 1e-9 {
		t.Errorf("last x = %f, want inner right %f", got, col.InnerRight)
	}
}

func TestPlaceBands_SiblingsStayAdjacent(t *testing.T) {
	cfg := testConfig()
	f := sitemap.New()
	mustAdd(t, f, sitemap.Node{ID: "r1", Depth: 0})
	mustAdd(t, f, sitemap.Node{ID: "r2", Depth: 0})
	// Interleave children of the two parents on purpose.
	mustAdd(t, f, sitemap.Node{ID: "x", ParentID: "r2", Depth: 1, Title: "Zeta"})
	mustAdd(t, f, sitemap.Node{ID: "y", ParentID: "r1", Depth: 1, Title: "Alpha"})
	mustAdd(t, f, sitemap.Node{ID: "z", ParentID: "r2", Depth: 1, Title: "Beta"})

	cols := AllocateColumns(f.Categories(), cfg)
	pl := PlaceBands(f, cols, cfg)

	// Band order is parent-major, title-minor: y (r1), then z before x (r2).
	xy, xz, xx := pl.Positions["y"].X, pl.Positions["z"].X, pl.Positions["x"].X
	if !(xy < xz && xz < xx) {
		t.Errorf("band order by x = [y:%f z:%f x:%f], want y < z < x", xy, xz, xx)
	}
}

func TestPlaceBands_SkipsPlacedNodes(t *testing.T) {
	cfg := testConfig()
	f := sitemap.New()
	mustAdd(t, f, sitemap.Node{ID: "kept", Depth: 0, Pos: &sitemap.Position{X: 42, Y: 42}})
	mustAdd(t, f, sitemap.Node{ID: "fresh", Depth: 0})

	cols := AllocateColumns(f.Categories(), cfg)
	pl := PlaceBands(f, cols, cfg)

	if _, ok := pl.Positions["kept"]; ok {
		t.Error("pre-placed node must not be written")
	}
	if _, ok := pl.Columns["kept"]; ok {
		t.Error("pre-placed node must not be assigned a column")
	}

	// The placed node does not occupy a slot: the remaining node is a
	// one-element band and lands on the column center.
	p, ok := pl.Positions["fresh"]
	if !ok {
		t.Fatal("fresh node was not placed")
	}
	if got, want := p.X, cols[0].CenterX(); got != want {
		t.Errorf("fresh x = %f, want column center %f", got, want)
	}
}

func TestPlaceBands_CrossCategoryRowAlignment(t *testing.T) {
	cfg := testConfig()
	f := sitemap.New()
	mustAdd(t, f, sitemap.Node{ID: "root", Depth: 0})
	mustAdd(t, f, sitemap.Node{ID: "p", ParentID: "root", Depth: 1, Category: "products"})
	mustAdd(t, f, sitemap.Node{ID: "s", ParentID: "root", Depth: 1, Category: "support"})

	cols := AllocateColumns(f.Categories(), cfg)
	pl := PlaceBands(f, cols, cfg)

	// Identical base row across categories at equal depth.
	if got, want := pl.Positions["p"].Y, pl.Positions["s"].Y; got != want {
		t.Errorf("row y differs across categories: %f vs %f", got, want)
	}
	if got, want := pl.RowY["p"], cfg.RowY(1); got != want {
		t.Errorf("row table y = %f, want %f", got, want)
	}
}

func TestPlaceBands_EmptyForest(t *testing.T) {
	cfg := testConfig()
	f := sitemap.New()
	pl := PlaceBands(f, nil, cfg)
	if len(pl.Positions) != 0 {
		t.Errorf("expected no placements, got %d", len(pl.Positions))
	}
}
