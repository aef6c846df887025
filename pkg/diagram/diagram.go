package diagram

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/sitegrid/sitegrid/pkg/layout"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// Document is the canonical serialization format for positioned sitemaps.
// Used for API responses, storage, caching, and file export.
//
// The format is designed for round-trip fidelity: export → re-import
// produces a forest with identical topology, positions, and column order.
type Document struct {
	Title  string  `json:"title,omitempty" bson:"title,omitempty"`
	Width  float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height float64 `json:"height,omitempty" bson:"height,omitempty"`

	// Nodes in forest insertion order. Order matters: it fixes the
	// first-seen category order and the in-band placement order.
	Nodes []Node `json:"nodes" bson:"nodes"`

	// Columns and Rows are the layout side tables from the last run,
	// empty for documents that were never laid out.
	Columns []Column `json:"columns,omitempty" bson:"columns,omitempty"`
	Rows    []Row    `json:"rows,omitempty" bson:"rows,omitempty"`
}

// Node is the serialized form of one sitemap page. Hierarchy is carried by
// ParentID references; there is no separate edge list.
type Node struct {
	ID       string `json:"id" bson:"id"`
	ParentID string `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Depth    int    `json:"depth,omitempty" bson:"depth,omitempty"`
	Category string `json:"category,omitempty" bson:"category,omitempty"`
	Title    string `json:"title,omitempty" bson:"title,omitempty"`
	URL      string `json:"url,omitempty" bson:"url,omitempty"`

	Pos    *Point `json:"pos,omitempty" bson:"pos,omitempty"`
	Anchor *Point `json:"anchor,omitempty" bson:"anchor,omitempty"`
}

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Column records one allocated category column.
type Column struct {
	Category   string  `json:"category" bson:"category"`
	Left       float64 `json:"left" bson:"left"`
	Right      float64 `json:"right" bson:"right"`
	InnerLeft  float64 `json:"inner_left" bson:"inner_left"`
	InnerRight float64 `json:"inner_right" bson:"inner_right"`
}

// Row records the base y position of one depth level.
type Row struct {
	Depth int     `json:"depth" bson:"depth"`
	Y     float64 `json:"y" bson:"y"`
}

// FromForest converts a forest and an optional layout result to a Document.
// Pass nil for res to serialize topology and positions only.
func FromForest(f *sitemap.Forest, res *layout.Result) Document {
	doc := Document{
		Nodes: make([]Node, 0, f.NodeCount()),
	}

	for _, n := range f.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeFromSitemap(n))
	}

	if res != nil {
		for _, c := range res.Columns {
			doc.Columns = append(doc.Columns, Column{
				Category:   c.Category,
				Left:       c.Left,
				Right:      c.Right,
				InnerLeft:  c.InnerLeft,
				InnerRight: c.InnerRight,
			})
		}
		depths := make([]int, 0, len(res.RowY))
		for d := range res.RowY {
			depths = append(depths, d)
		}
		slices.Sort(depths)
		for _, d := range depths {
			doc.Rows = append(doc.Rows, Row{Depth: d, Y: res.RowY[d]})
		}
	}

	return doc
}

// ToForest converts a Document back to a forest. Nodes are added in listed
// order and parent links are rebuilt from ParentID references. References
// to nodes absent from the document are kept as dangling parents (roots).
func ToForest(doc Document) (*sitemap.Forest, error) {
	f := sitemap.New()

	for _, dn := range doc.Nodes {
		n := sitemap.Node{
			ID:       dn.ID,
			ParentID: dn.ParentID,
			Depth:    dn.Depth,
			Category: dn.Category,
			Title:    dn.Title,
			URL:      dn.URL,
		}
		if dn.Pos != nil {
			n.Pos = &sitemap.Position{X: dn.Pos.X, Y: dn.Pos.Y}
		}
		if dn.Anchor != nil {
			n.Anchor = &sitemap.Position{X: dn.Anchor.X, Y: dn.Anchor.Y}
		}
		if err := f.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", dn.ID, err)
		}
	}

	for _, dn := range doc.Nodes {
		if dn.ParentID == "" {
			continue
		}
		if _, ok := f.Node(dn.ParentID); !ok {
			continue
		}
		if err := f.Link(dn.ParentID, dn.ID); err != nil {
			return nil, fmt.Errorf("link %s -> %s: %w", dn.ParentID, dn.ID, err)
		}
	}

	return f, nil
}

// Marshal serializes a Document to pretty-printed JSON bytes.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Document.
// Validates that every node has a unique, non-empty ID.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal document: %w", err)
	}

	seen := make(map[string]bool, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if n.ID == "" {
			return Document{}, fmt.Errorf("node %d has no id", i)
		}
		if seen[n.ID] {
			return Document{}, fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}

	return doc, nil
}

// WriteFile writes a Document to a JSON file.
func WriteFile(doc Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Document from a JSON file.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// nodeFromSitemap converts a sitemap node to its serialized form.
// This is the single point of conversion for all Forest→Document operations.
func nodeFromSitemap(n *sitemap.Node) Node {
	dn := Node{
		ID:       n.ID,
		ParentID: n.ParentID,
		Depth:    n.Depth,
		Category: n.Category,
		Title:    n.Title,
		URL:      n.URL,
	}
	if n.Pos != nil {
		dn.Pos = &Point{X: n.Pos.X, Y: n.Pos.Y}
	}
	if n.Anchor != nil {
		dn.Anchor = &Point{X: n.Anchor.X, Y: n.Anchor.Y}
	}
	return dn
}
