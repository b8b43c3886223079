// Package layout positions a mindmap tree in layout space.
//
// # Overview
//
// The engine runs three passes over a [tree.Tree]:
//
//  1. Measure: every node gets a bounding box from the dimension
//     calculator.
//  2. Position: left edges are assigned per depth using adaptive step
//     distances; vertical centers are assigned depth-first with
//     tidy-tree centering (an internal node sits at the mean of its
//     children's centers, whole subtrees shift as units when they would
//     collide with a sibling subtree's extent).
//  3. Resolve: a post-pass finds unrelated nodes whose boxes still violate
//     the minimum gap and pushes the lower one (and its subtree) down,
//     iterating to convergence.
//
// Layout space puts a node's vertical value at its *center* and its
// horizontal value at its *left edge*; [geometry] converts to the
// render-space corner anchor.
//
// # Adaptive Horizontal Spacing
//
// The step from depth d to d+1 is
//
//	step = clamp(base + srcRatio·avgWidth(d) + tgtRatio·avgWidth(d+1) + safety,
//	             minSpacing, maxSpacing)
//
// so wide labels earn wide columns, bounded both ways. A node's left edge
// is the prefix sum of steps along its depth.
//
// # Determinism
//
// Given the same tree, dimensions and config, layout produces bit-identical
// positions: child order is insertion order, there is no randomness, and
// every accumulation runs in a fixed order.
//
// # Error Model
//
// Nothing in this package returns an error. Overlap resolution that fails
// to converge within the configured pass budget returns its partial result
// with Converged=false for the caller to log. Malformed trees (cycles,
// orphans) are precondition violations the arena in [tree] makes
// unconstructible.
package layout
