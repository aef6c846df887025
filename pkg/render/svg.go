package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sitegrid/sitegrid/pkg/diagram"
	"github.com/sitegrid/sitegrid/pkg/layout"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// Options configures rendering.
type Options struct {
	// ShowGrid draws the category column guides and labels.
	ShowGrid bool

	// ShowEdges draws parent-child connector lines beneath the boxes.
	ShowEdges bool

	// Engine selects the Graphviz layout engine for DOT-based renders.
	// Empty means "dot".
	Engine string
}

const svgStyles = `
    .column-guide { fill: #f4f6f8; stroke: #d9dee3; stroke-width: 1; }
    .column-label { font: 600 14px sans-serif; fill: #6b7682; text-transform: uppercase; letter-spacing: 1px; }
    .edge { stroke: #b6bec7; stroke-width: 1.5; fill: none; }
    .node { fill: #ffffff; stroke: #3d4853; stroke-width: 1.5; }
    .node:hover { stroke-width: 3; }
    .node-title { font: 600 15px sans-serif; fill: #1f262d; text-anchor: middle; }
    .node-url { font: 12px monospace; fill: #7a8591; text-anchor: middle; }`

// RenderSVG renders a positioned document as a standalone SVG image.
// Nodes without positions are skipped; render after layout.
func RenderSVG(doc diagram.Document, opts Options) []byte {
	width, height := frameSize(doc)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgStyles)

	if opts.ShowGrid {
		renderColumnGuides(&buf, doc.Columns, height)
	}
	if opts.ShowEdges {
		renderEdges(&buf, doc)
	}
	renderNodes(&buf, doc)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frameSize returns the canvas dimensions, derived from the document's
// content when the document does not carry explicit dimensions.
func frameSize(doc diagram.Document) (w, h float64) {
	w, h = doc.Width, doc.Height
	if w > 0 && h > 0 {
		return w, h
	}

	for _, c := range doc.Columns {
		w = max(w, c.Right+60)
	}
	for _, n := range doc.Nodes {
		if n.Pos == nil {
			continue
		}
		box := nodeBox(n)
		w = max(w, box.Right+60)
		h = max(h, box.Bottom+60)
	}
	if w == 0 {
		w = 800
	}
	if h == 0 {
		h = 600
	}
	return w, h
}

func renderColumnGuides(buf *bytes.Buffer, cols []diagram.Column, height float64) {
	for _, c := range cols {
		fmt.Fprintf(buf, `  <rect class="column-guide" x="%.1f" y="0" width="%.1f" height="%.1f" rx="8"/>`+"\n",
			c.Left, c.Right-c.Left, height)
		fmt.Fprintf(buf, `  <text class="column-label" x="%.1f" y="24" text-anchor="middle">%s</text>`+"\n",
			(c.Left+c.Right)/2, escape(c.Category))
	}
}

func renderEdges(buf *bytes.Buffer, doc diagram.Document) {
	pos := make(map[string]*diagram.Point, len(doc.Nodes))
	for _, n := range doc.Nodes {
		pos[n.ID] = n.Pos
	}
	for _, n := range doc.Nodes {
		if n.ParentID == "" || n.Pos == nil {
			continue
		}
		pp, ok := pos[n.ParentID]
		if !ok || pp == nil {
			continue
		}
		fmt.Fprintf(buf, `  <line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			pp.X, pp.Y, n.Pos.X, n.Pos.Y)
	}
}

func renderNodes(buf *bytes.Buffer, doc diagram.Document) {
	for _, n := range doc.Nodes {
		if n.Pos == nil {
			continue
		}
		box := nodeBox(n)
		fmt.Fprintf(buf, `  <rect class="node" id="node-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6"/>`+"\n",
			escape(n.ID), box.Left, box.Top, box.Width(), box.Height())

		title := n.Title
		if title == "" {
			title = n.ID
		}
		fmt.Fprintf(buf, `  <text class="node-title" x="%.1f" y="%.1f">%s</text>`+"\n",
			n.Pos.X, n.Pos.Y-4, escape(title))
		if n.URL != "" {
			fmt.Fprintf(buf, `  <text class="node-url" x="%.1f" y="%.1f">%s</text>`+"\n",
				n.Pos.X, n.Pos.Y+16, escape(n.URL))
		}
	}
}

// nodeBox computes the drawn box for a serialized node using the same size
// estimate the layout engine uses, so rendered boxes match relaxed spacing.
func nodeBox(n diagram.Node) layout.Box {
	sn := &sitemap.Node{ID: n.ID, Title: n.Title, URL: n.URL}
	return layout.NodeBox(sn, sitemap.Position{X: n.Pos.X, Y: n.Pos.Y})
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}
