package sitemap

import (
	"errors"
	"testing"
)

func TestAddNode_Validation(t *testing.T) {
	f := New()

	if err := f.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID error = %v, want ErrInvalidNodeID", err)
	}

	if err := f.AddNode(Node{ID: "home"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.AddNode(Node{ID: "home"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "a", Category: "blog"})
	_ = f.AddNode(Node{ID: "b"}) // default category
	_ = f.AddNode(Node{ID: "c", Category: "shop"})
	_ = f.AddNode(Node{ID: "d", Category: "blog"}) // repeat, no reorder

	got := f.Categories()
	want := []string{"blog", DefaultCategory, "shop"}
	if len(got) != len(want) {
		t.Fatalf("category count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLink_WiresBothSides(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "home", Depth: 0})
	_ = f.AddNode(Node{ID: "about", Depth: 1})

	if err := f.Link("home", "about"); err != nil {
		t.Fatalf("link: %v", err)
	}

	about, _ := f.Node("about")
	if about.ParentID != "home" {
		t.Errorf("ParentID = %q, want home", about.ParentID)
	}
	children := f.Children("home")
	if len(children) != 1 || children[0].ID != "about" {
		t.Errorf("children = %v, want [about]", children)
	}

	// Relinking the same pair is a no-op.
	if err := f.Link("home", "about"); err != nil {
		t.Fatalf("relink: %v", err)
	}
	home, _ := f.Node("home")
	if got, want := len(home.ChildIDs), 1; got != want {
		t.Errorf("child count after relink = %d, want %d", got, want)
	}
}

func TestLink_UnknownNode(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "home"})

	if err := f.Link("home", "ghost"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("error = %v, want ErrUnknownNode", err)
	}
	if err := f.Link("ghost", "home"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("error = %v, want ErrUnknownNode", err)
	}
}

func TestRoots_DanglingParentIsRoot(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "home"})
	_ = f.AddNode(Node{ID: "stray", ParentID: "missing", Depth: 1})

	roots := f.Roots()
	if got, want := len(roots), 2; got != want {
		t.Fatalf("root count = %d, want %d", got, want)
	}
}

func TestValidate(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "home", Depth: 0})
	_ = f.AddNode(Node{ID: "about", Depth: 1})
	_ = f.Link("home", "about")

	if err := f.Validate(); err != nil {
		t.Errorf("valid forest rejected: %v", err)
	}
}

func TestValidate_DepthMismatch(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "home", Depth: 0})
	_ = f.AddNode(Node{ID: "deep", Depth: 5})
	_ = f.Link("home", "deep")

	if err := f.Validate(); !errors.Is(err, ErrDepthMismatch) {
		t.Errorf("error = %v, want ErrDepthMismatch", err)
	}
}

func TestValidate_LinkMismatch(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "p", Depth: 0, ChildIDs: []string{"c"}})
	_ = f.AddNode(Node{ID: "c", Depth: 1, ParentID: "other"})

	if err := f.Validate(); !errors.Is(err, ErrLinkMismatch) {
		t.Errorf("error = %v, want ErrLinkMismatch", err)
	}
}

func TestClearPositions(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "a", Pos: &Position{X: 1, Y: 2}, Anchor: &Position{X: 3, Y: 4}})

	f.ClearPositions()

	a, _ := f.Node("a")
	if a.Pos != nil || a.Anchor != nil {
		t.Error("positions not cleared")
	}
}

func TestDepthsAndMaxDepth(t *testing.T) {
	f := New()
	_ = f.AddNode(Node{ID: "a", Depth: 2})
	_ = f.AddNode(Node{ID: "b", Depth: 0})
	_ = f.AddNode(Node{ID: "c", Depth: 2})

	ds := f.Depths()
	if len(ds) != 2 || ds[0] != 0 || ds[1] != 2 {
		t.Errorf("Depths() = %v, want [0 2]", ds)
	}
	if got, want := f.MaxDepth(), 2; got != want {
		t.Errorf("MaxDepth() = %d, want %d", got, want)
	}
	if got, want := len(f.NodesAtDepth(2)), 2; got != want {
		t.Errorf("NodesAtDepth(2) = %d nodes, want %d", got, want)
	}
}

func TestNodes_InsertionOrder(t *testing.T) {
	f := New()
	for _, id := range []string{"z", "a", "m"} {
		_ = f.AddNode(Node{ID: id})
	}

	var got []string
	for _, n := range f.Nodes() {
		got = append(got, n.ID)
	}
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Nodes() order = %v, want %v", got, want)
		}
	}
}
