package diagram

import (
	"strings"
	"testing"

	"github.com/sitegrid/sitegrid/pkg/layout"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

func sampleForest(t *testing.T) *sitemap.Forest {
	t.Helper()
	f := sitemap.New()
	for _, n := range []sitemap.Node{
		{ID: "home", Title: "Home", Depth: 0, URL: "/"},
		{ID: "blog", Depth: 1, Category: "content", URL: "/blog"},
		{ID: "shop", Depth: 1, Category: "commerce"},
	} {
		if err := f.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	_ = f.Link("home", "blog")
	_ = f.Link("home", "shop")
	return f
}

func TestRoundTrip(t *testing.T) {
	f := sampleForest(t)
	res := layout.Compute(f, layout.Config{Width: 1200})

	doc := FromForest(f, &res)
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	f2, err := ToForest(parsed)
	if err != nil {
		t.Fatalf("to forest: %v", err)
	}

	if got, want := f2.NodeCount(), f.NodeCount(); got != want {
		t.Fatalf("node count = %d, want %d", got, want)
	}

	// Category order survives the round trip (it fixes column order).
	c1, c2 := f.Categories(), f2.Categories()
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Errorf("category[%d] = %q, want %q", i, c2[i], c1[i])
		}
	}

	// Positions survive bit for bit.
	for _, n := range f.Nodes() {
		n2, ok := f2.Node(n.ID)
		if !ok {
			t.Fatalf("node %s missing after round trip", n.ID)
		}
		if *n.Pos != *n2.Pos {
			t.Errorf("%s position = %v, want %v", n.ID, *n2.Pos, *n.Pos)
		}
		if n2.ParentID != n.ParentID {
			t.Errorf("%s parent = %q, want %q", n.ID, n2.ParentID, n.ParentID)
		}
	}

	// Side tables carried over.
	if got, want := len(parsed.Columns), 3; got != want {
		t.Errorf("columns = %d, want %d", got, want)
	}
	if len(parsed.Rows) != 2 || parsed.Rows[0].Depth != 0 || parsed.Rows[1].Depth != 1 {
		t.Errorf("rows = %v, want depths [0 1]", parsed.Rows)
	}
}

func TestFromForest_WithoutLayout(t *testing.T) {
	f := sampleForest(t)
	doc := FromForest(f, nil)

	if len(doc.Columns) != 0 || len(doc.Rows) != 0 {
		t.Error("unexpected side tables without a layout result")
	}
	for _, n := range doc.Nodes {
		if n.Pos != nil {
			t.Errorf("node %s has a position before layout", n.ID)
		}
	}
}

func TestUnmarshal_Validation(t *testing.T) {
	cases := []struct {
		name string
		json string
		want string
	}{
		{"missing id", `{"nodes": [{"depth": 1}]}`, "no id"},
		{"duplicate id", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, "duplicate"},
		{"bad json", `{nodes}`, "unmarshal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestToForest_DanglingParent(t *testing.T) {
	doc := Document{Nodes: []Node{
		{ID: "stray", ParentID: "missing", Depth: 1},
	}}

	f, err := ToForest(doc)
	if err != nil {
		t.Fatalf("to forest: %v", err)
	}
	if got, want := len(f.Roots()), 1; got != want {
		t.Errorf("roots = %d, want %d (dangling parent keeps node a root)", got, want)
	}
	n, _ := f.Node("stray")
	if n.ParentID != "missing" {
		t.Errorf("ParentID = %q, want preserved reference", n.ParentID)
	}
}

func TestWriteReadFile(t *testing.T) {
	f := sampleForest(t)
	doc := FromForest(f, nil)
	path := t.TempDir() + "/sitemap.json"

	if err := WriteFile(doc, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got, want := len(back.Nodes), 3; got != want {
		t.Errorf("nodes = %d, want %d", got, want)
	}
}
