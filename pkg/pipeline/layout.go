package pipeline

import (
	"github.com/sitegrid/sitegrid/pkg/diagram"
	"github.com/sitegrid/sitegrid/pkg/layout"
	"github.com/sitegrid/sitegrid/pkg/sitemap"
)

// computeLayout runs the layout engine over the forest and returns the
// positioned document. The forest is mutated: fresh positions and anchors
// are written onto its nodes.
func computeLayout(f *sitemap.Forest, opts Options) diagram.Document {
	cfg := opts.Layout.Normalize()
	res := layout.Compute(f, cfg)

	doc := diagram.FromForest(f, &res)
	doc.Width = cfg.Width
	doc.Height = cfg.Height
	return doc
}
