// Package render turns positioned sitemap documents into visual outputs.
//
// # Overview
//
// Two renderers are provided:
//
//   - Native SVG ([RenderSVG]): draws the grouped-column grid directly,
//     with category guides, hierarchy connectors, and labeled page boxes.
//     This is the primary output and requires no external tooling.
//   - Graphviz ([ToDOT], [GraphvizSVG], [GraphvizPNG]): exports the
//     hierarchy as a DOT digraph and renders it through Graphviz, for
//     users who want a classic top-down tree instead of the grid.
//
// # Usage
//
//	doc := diagram.FromForest(f, &res)
//	svg := render.RenderSVG(doc, render.Options{ShowEdges: true})
//
//	dot := render.ToDOT(doc, render.Options{})
//	png, err := render.GraphvizPNG(dot)
//
// Rendering works from the serialized [diagram.Document] rather than the
// live forest, so cached or stored documents render identically.
package render
