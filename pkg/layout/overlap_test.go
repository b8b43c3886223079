package layout

import (
	"testing"

	"github.com/Hanzzh/mindmap/pkg/geometry"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// crowdedTree hand-positions nodes so the resolver has real work to do.
// The resolver only reads centers, boxes and relationships, so tests can
// stage violations directly instead of coaxing the engine into them.
func crowdedTree(t *testing.T) (*tree.Tree, [3]tree.NodeID) {
	t.Helper()
	tr := tree.New("root")
	a, _ := tr.AddChild(tree.Root, "a")
	b, _ := tr.AddChild(tree.Root, "b")
	c, _ := tr.AddChild(b, "c")

	tr.SetSize(tree.Root, 100, 40)
	tr.SetLeftEdge(tree.Root, 0)
	tr.SetCenter(tree.Root, 50)

	// a and b share a column and overlap each other; c hangs under b.
	for _, id := range []tree.NodeID{a, b} {
		tr.SetSize(id, 100, 40)
		tr.SetLeftEdge(id, 120)
	}
	tr.SetCenter(a, 30)
	tr.SetCenter(b, 50)

	tr.SetSize(c, 100, 40)
	tr.SetLeftEdge(c, 240)
	tr.SetCenter(c, 60)

	return tr, [3]tree.NodeID{a, b, c}
}

func TestResolveOverlapsPostcondition(t *testing.T) {
	tr, _ := crowdedTree(t)
	res := ResolveOverlaps(tr, 8, 0)

	if !res.Converged {
		t.Fatalf("expected convergence, passes=%d", res.Passes)
	}
	if len(res.Adjustments) == 0 {
		t.Fatal("staged overlap produced no adjustments")
	}
	if bad := CheckOverlaps(tr, 8); len(bad) != 0 {
		t.Errorf("violations remain after resolution: %v", bad)
	}
}

func TestResolvePushesLowerNodeByExactAmount(t *testing.T) {
	tr, ids := crowdedTree(t)
	a, b := ids[0], ids[1]

	gap := geometry.GapBetween(tr.Center(a), tr.Height(a), tr.Center(b), tr.Height(b))
	res := ResolveOverlaps(tr, 8, 0)

	var adj *Adjustment
	for i := range res.Adjustments {
		if res.Adjustments[i].Node == b {
			adj = &res.Adjustments[i]
			break
		}
	}
	if adj == nil {
		t.Fatal("lower sibling b was not the pushed node")
	}
	if want := adj.PreviousCenter + (8 - gap); adj.NewCenter != want {
		t.Errorf("pushed to %v, want previous %v + (minGap − gap) = %v",
			adj.NewCenter, adj.PreviousCenter, want)
	}
}

func TestResolvePropagatesToSubtree(t *testing.T) {
	tr, ids := crowdedTree(t)
	b, c := ids[1], ids[2]
	offset := tr.Center(c) - tr.Center(b)

	ResolveOverlaps(tr, 8, 0)

	if got := tr.Center(c) - tr.Center(b); got != offset {
		t.Errorf("child offset changed from %v to %v; subtree must move as a unit", offset, got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	tr, _ := crowdedTree(t)
	ResolveOverlaps(tr, 8, 0)

	again := ResolveOverlaps(tr, 8, 0)
	if len(again.Adjustments) != 0 {
		t.Errorf("second run adjusted %d nodes, want 0", len(again.Adjustments))
	}
	if !again.Converged || again.Passes != 1 {
		t.Errorf("second run: converged=%v passes=%d, want clean single pass", again.Converged, again.Passes)
	}
}

func TestResolveSkipsAncestorPairs(t *testing.T) {
	// Parent and child deliberately overlap in both axes; the resolver
	// must leave related pairs alone even when their columns intersect.
	tr := tree.New("root")
	kid, _ := tr.AddChild(tree.Root, "kid")
	tr.SetSize(tree.Root, 300, 60)
	tr.SetLeftEdge(tree.Root, 0)
	tr.SetCenter(tree.Root, 0)
	tr.SetSize(kid, 100, 60)
	tr.SetLeftEdge(kid, 150) // still inside the root's wide box
	tr.SetCenter(kid, 10)

	res := ResolveOverlaps(tr, 8, 0)
	if len(res.Adjustments) != 0 {
		t.Errorf("ancestor/descendant pair was adjusted: %+v", res.Adjustments)
	}
}

func TestResolveTieBreakPushesLaterPreOrder(t *testing.T) {
	tr := tree.New("root")
	a, _ := tr.AddChild(tree.Root, "a")
	b, _ := tr.AddChild(tree.Root, "b")
	tr.SetSize(tree.Root, 80, 30)
	tr.SetCenter(tree.Root, 0)
	for _, id := range []tree.NodeID{a, b} {
		tr.SetSize(id, 80, 30)
		tr.SetLeftEdge(id, 100)
		tr.SetCenter(id, 40) // identical centers
	}

	res := ResolveOverlaps(tr, 4, 0)
	if len(res.Adjustments) == 0 {
		t.Fatal("identical centers must be a violation")
	}
	if res.Adjustments[0].Node != b {
		t.Errorf("pushed %v, want the later pre-order node %v", res.Adjustments[0].Node, b)
	}
	if tr.Center(a) != 40 {
		t.Errorf("upper node moved: %v", tr.Center(a))
	}
}

func TestResolveNonConvergedStillReturns(t *testing.T) {
	tr, _ := crowdedTree(t)
	res := ResolveOverlaps(tr, 8, 1)

	if res.Converged {
		t.Fatal("one pass cannot be clean on a staged violation")
	}
	if res.Passes != 1 {
		t.Errorf("passes = %d, want 1", res.Passes)
	}
	// Partial result: the first correction happened.
	if len(res.Adjustments) != 1 {
		t.Errorf("adjustments = %d, want the single in-budget correction", len(res.Adjustments))
	}
}

func TestEngineResolveIntegration(t *testing.T) {
	// Long wrapped labels at depth 2 produce tall boxes that can brush
	// cousins; after LayoutAndResolve the postcondition must hold.
	tr := tree.New("root")
	for i := 0; i < 3; i++ {
		branch, _ := tr.AddChild(tree.Root, "branch")
		for j := 0; j < 4; j++ {
			tr.AddChild(branch, "a deliberately verbose child label that wraps across several lines once the compact width limit applies")
		}
	}

	e := testEngine()
	res := e.LayoutAndResolve(tr)
	if !res.Resolution.Converged {
		t.Fatal("layout did not converge")
	}
	if bad := CheckOverlaps(tr, DefaultConfig().MinNodeGap); len(bad) != 0 {
		t.Errorf("violations after full pipeline: %v", bad)
	}
}
