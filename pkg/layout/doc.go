// Package layout computes non-overlapping 2D positions for a sitemap forest.
//
// Nodes grouped by category occupy distinct vertical columns, nodes sharing
// a hierarchical depth align horizontally across columns, and overlapping
// bounding boxes are nudged apart by an iterative relaxer.
//
// # Passes
//
// A layout run is a fixed sequence of passes, each a plain function that
// can also be used standalone:
//
//  1. [IndexByDepth] buckets nodes by depth across all categories.
//  2. [AllocateColumns] partitions the canvas width into one column per
//     category, in first-seen order.
//  3. [PlaceBands] spreads each (category, depth) band evenly across its
//     column's inner width at the depth-aligned row, filling only nodes
//     that lack a position.
//  4. [Relax] runs a fixed number of greedy pairwise separation passes
//     over padded bounding boxes, pushing overlapping pairs apart along
//     the axis of least overlap.
//  5. [ReconcileBounds] clamps relaxed positions back into their assigned
//     column and a bounded window around their depth row, repairing drift
//     the relaxer introduced across grouping boundaries.
//
// [Engine.Compute] wires the passes together. Per-pass metadata (column
// assignment, base row) lives in side tables, not on the nodes; positions
// are merged into the forest once at the end of the run.
//
// # Convergence
//
// The relaxer is greedy and budgeted: dense inputs can exit the iteration
// budget with residual overlap. That is accepted - the result is a best
// effort reduction, not a packing guarantee.
package layout
