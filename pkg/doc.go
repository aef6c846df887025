// Package pkg provides the core libraries for Sitegrid sitemap diagrams.
//
// # Overview
//
// Sitegrid turns flat page inventories (URL lists, CSV exports) into
// two-dimensional sitemap diagrams: every category gets its own vertical
// column band, and pages of equal depth share a horizontal row. The pkg
// directory is organized into five main areas:
//
//  1. [sitemap] - Domain model (page forest with categories and depths)
//  2. [ingest] - Source parsing (URL lists, CSV exports)
//  3. [layout] - The grid layout engine (columns, rows, relaxation)
//  4. [render] - Output generation (native SVG grid, Graphviz tree)
//  5. [pipeline] - Orchestration (build → layout → render)
//
// # Architecture
//
// The typical data flow through Sitegrid:
//
//	URL list / CSV export
//	         ↓
//	    [ingest] package (derive hierarchy, categories, depths)
//	         ↓
//	    [sitemap] package (forest structure + validation)
//	         ↓
//	    [layout] package (column bands, depth rows, overlap relaxation)
//	         ↓
//	    [render] package (SVG/PNG/DOT/JSON output)
//
// # Quick Start
//
// Build and render a sitemap:
//
//	import (
//	    "context"
//	    "github.com/sitegrid/sitegrid/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Source:  urlList,
//	    Format:  "urls",
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// ## Domain
//
// [sitemap] - The page forest: nodes with stable IDs, parent links, explicit
// depths, and category assignment. Manually positioned pages are preserved
// bit for bit across layout runs.
//
// [ingest] - Builders that turn raw source data into a forest. The URL
// builder derives hierarchy from path segments and synthesizes missing
// ancestors; the CSV builder reads explicit id/parent/depth/category rows.
//
// ## Layout
//
// [layout] - The grid engine. Column bands are allocated per category and
// sized by subtree weight, rows align pages of equal depth, and an
// iterative relaxation pass separates overlapping siblings. Pages that
// already carry positions act as immovable obstacles.
//
// [diagram] - Serialization types for positioned sitemaps (JSON on disk
// and over the API, BSON in MongoDB).
//
// ## Rendering
//
// [render] - Two renderers: the native grid renderer draws the category
// column layout directly as SVG, and the Graphviz renderer draws a classic
// top-down tree. PNG and DOT output always go through Graphviz.
//
// ## Infrastructure
//
// [pipeline] - The complete build → layout → render pipeline used by CLI
// and server. Every stage caches its output keyed by content hash.
//
// [cache] - Cache interface with file, Redis, and null backends plus the
// key derivation for the three cache families (forest, layout, artifact).
//
// [store] - Persistent diagram storage with memory and MongoDB backends.
//
// [observability] - Hook interfaces for pipeline, cache, and store
// instrumentation.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [sitemap]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/sitemap
// [ingest]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/ingest
// [layout]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/layout
// [diagram]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/diagram
// [render]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/cache
// [store]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/store
// [observability]: https://pkg.go.dev/github.com/sitegrid/sitegrid/pkg/observability
package pkg
