package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/sitegrid/sitegrid/pkg/diagram"
)

// ToDOT converts a document to Graphviz DOT format for tree-style
// rendering. Hierarchy edges come from ParentID references; categories
// become clusters so related pages stay visually grouped.
func ToDOT(doc diagram.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph sitemap {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	// Group nodes per category, preserving document order.
	byCategory := make(map[string][]diagram.Node)
	var categories []string
	ids := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		cat := n.Category
		if cat == "" {
			cat = "general"
		}
		if _, seen := byCategory[cat]; !seen {
			categories = append(categories, cat)
		}
		byCategory[cat] = append(byCategory[cat], n)
		ids[n.ID] = true
	}

	for i, cat := range categories {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", cat)
		buf.WriteString("    color=\"#d9dee3\";\n")
		for _, n := range byCategory[cat] {
			label := n.Title
			if label == "" {
				label = n.ID
			}
			fmt.Fprintf(&buf, "    %q [label=%q];\n", n.ID, label)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, n := range doc.Nodes {
		if n.ParentID == "" || !ids[n.ParentID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", n.ParentID, n.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// GraphvizSVG renders a DOT graph to SVG using Graphviz.
func GraphvizSVG(dot string, engine string) ([]byte, error) {
	data, err := graphvizRender(dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(data), nil
}

// GraphvizPNG renders a DOT graph to PNG using Graphviz.
func GraphvizPNG(dot string, engine string) ([]byte, error) {
	return graphvizRender(dot, engine, graphviz.PNG)
}

func graphvizRender(dot, engine string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if engine != "" {
		gv.SetLayout(graphviz.Layout(engine))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg element so the image scales in
// embedding contexts (origin at 0 0, explicit pixel dimensions).
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
