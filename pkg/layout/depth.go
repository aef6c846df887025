package layout

import "github.com/sitegrid/sitegrid/pkg/sitemap"

// IndexByDepth buckets nodes by their hierarchical depth, independent of
// category. The resulting map drives cross-category row alignment: every
// depth level maps to one horizontal row shared by all columns.
//
// IndexByDepth is a pure read-only pass. Input order is preserved within
// each bucket, and nodes keep their stored depth (missing depth is the
// zero value, i.e. a root row). Runs in O(n).
func IndexByDepth(nodes []*sitemap.Node) map[int][]*sitemap.Node {
	byDepth := make(map[int][]*sitemap.Node)
	for _, n := range nodes {
		byDepth[n.Depth] = append(byDepth[n.Depth], n)
	}
	return byDepth
}
