// Package diagram provides serialization types for positioned sitemaps.
//
// This package defines the canonical wire format for Sitegrid's layout data,
// used for JSON files, API responses, caching, and storage.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Document]: Serialization type (this package)
//   - pkg/sitemap.Forest: Internal node arena with hierarchy and positions
//   - pkg/layout.Result: Layout side tables (columns, rows, anchors)
//
// Use [FromForest]/[ToForest] to convert between them.
//
// # Document Serialization
//
// Documents use a flat node-list JSON format:
//
//	{
//	  "nodes": [
//	    {"id": "home", "depth": 0, "pos": {"x": 226.7, "y": 80}},
//	    {"id": "blog", "parent_id": "home", "depth": 1, "category": "content"}
//	  ],
//	  "columns": [{"category": "general", "left": 60, "right": 580}]
//	}
//
// Common operations:
//
//	doc := diagram.FromForest(f, res)            // Forest → Document
//	data, _ := diagram.Marshal(doc)              // Document → []byte
//	doc, _ = diagram.Unmarshal(data)             // []byte → Document
//	f, _ = diagram.ToForest(doc)                 // Document → Forest
//	diagram.WriteFile(doc, "sitemap.json")       // Document → file
//
// Hierarchy is carried by parent_id references rather than an edge list;
// round-tripping a document reconstructs the same parent/child links.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package diagram
