package layout

import (
	"sort"

	"github.com/Hanzzh/mindmap/pkg/geometry"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// Adjustment records one overlap correction: the pushed node's center
// before and after. Subtree propagation is implied (children keep their
// relative offsets) and not recorded per descendant.
type Adjustment struct {
	Node           tree.NodeID `json:"node"`
	PreviousCenter float64     `json:"previous_center"`
	NewCenter      float64     `json:"new_center"`
}

// Resolution is the audit trail of an overlap-resolution run.
type Resolution struct {
	Adjustments []Adjustment `json:"adjustments"`
	// Converged is false when the pass budget ran out before a clean pass.
	// The positions are still usable; the caller decides whether to warn.
	Converged bool `json:"converged"`
	Passes    int  `json:"passes"`
}

// ResolveOverlaps finds pairs of nodes that are not in an ancestor/
// descendant relationship whose boxes violate minGap, and pushes the lower
// node of each violating pair down until a full detection pass is clean.
//
// Violations are processed top to bottom. The node later in stable
// pre-order breaks center ties as "lower". Each push moves the node's
// entire subtree, preserving the parent-relative ordering the engine
// produced. maxPasses bounds the loop; on exhaustion the partial result is
// returned with Converged=false. This function never fails.
func ResolveOverlaps(t *tree.Tree, minGap float64, maxPasses int) Resolution {
	ids := t.NodeIDs()
	if maxPasses <= 0 {
		maxPasses = DefaultConfig().maxPasses(len(ids))
	}

	// Pre-order rank for the tie-break.
	rank := make(map[tree.NodeID]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}

	res := Resolution{Adjustments: []Adjustment{}}
	for res.Passes < maxPasses {
		res.Passes++
		if adj, moved := resolvePass(t, ids, rank, minGap); moved {
			res.Adjustments = append(res.Adjustments, adj)
			continue
		}
		res.Converged = true
		break
	}
	return res
}

// resolvePass scans for the topmost violation, corrects it, and reports
// whether anything moved. Scanning restarts after each correction because
// a push can create or destroy violations below it.
func resolvePass(t *tree.Tree, ids []tree.NodeID, rank map[tree.NodeID]int, minGap float64) (Adjustment, bool) {
	ordered := make([]tree.NodeID, len(ids))
	copy(ordered, ids)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if t.Center(a) != t.Center(b) {
			return t.Center(a) < t.Center(b)
		}
		return rank[a] < rank[b]
	})

	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			upper, lower := ordered[i], ordered[j]
			if !candidates(t, upper, lower) {
				continue
			}
			if !geometry.Overlaps(t.Center(upper), t.Height(upper), t.Center(lower), t.Height(lower), minGap) {
				continue
			}
			gap := geometry.GapBetween(t.Center(upper), t.Height(upper), t.Center(lower), t.Height(lower))
			prev := t.Center(lower)
			shiftSubtree(t, lower, minGap-gap)
			return Adjustment{Node: lower, PreviousCenter: prev, NewCenter: t.Center(lower)}, true
		}
	}
	return Adjustment{}, false
}

// candidates reports whether the pair is eligible for overlap correction:
// horizontally intersecting and not in an ancestor/descendant relation.
// The relationship filter is explicit rather than relying on differing
// left edges, because a deep subtree's horizontal step can be small enough
// for ancestor and descendant columns to brush.
func candidates(t *tree.Tree, a, b tree.NodeID) bool {
	aL, aR := t.LeftEdge(a), t.LeftEdge(a)+t.Width(a)
	bL, bR := t.LeftEdge(b), t.LeftEdge(b)+t.Width(b)
	if aR < bL || bR < aL {
		return false
	}
	return !t.Related(a, b)
}

// CheckOverlaps returns the violating pairs without mutating anything.
// Used by tests to assert the no-overlap postcondition, and by hosts that
// want to log residual violations after a non-converged run.
func CheckOverlaps(t *tree.Tree, minGap float64) [][2]tree.NodeID {
	ids := t.NodeIDs()
	var bad [][2]tree.NodeID
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if !candidates(t, a, b) {
				continue
			}
			if geometry.Overlaps(t.Center(a), t.Height(a), t.Center(b), t.Height(b), minGap) {
				bad = append(bad, [2]tree.NodeID{a, b})
			}
		}
	}
	return bad
}
