// Package sitemap provides the node forest that all layout and rendering
// operations work on.
//
// A forest is an arena of [Node] values keyed by ID. Nodes carry hierarchy
// (parent/children), a pre-computed depth, a category label used for column
// grouping, and an optional 2D position. The forest preserves insertion
// order, which makes category ordering and layout output deterministic for
// a given input sequence.
//
// # Ownership
//
// The forest owns topology; the layout engine (pkg/layout) only reads it
// and fills in missing positions. Builders (pkg/ingest) create nodes and
// wire parent/child links before any layout runs. Nothing in this package
// computes depth - builders supply it.
//
// # Positions
//
// A node with a nil Pos has not been placed yet. Layout only assigns
// positions to such nodes; an existing position is never overwritten.
// Use [Forest.ClearPositions] to force a full re-layout.
package sitemap
