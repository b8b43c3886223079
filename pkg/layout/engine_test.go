package layout

import (
	"math"
	"testing"

	"github.com/Hanzzh/mindmap/pkg/dimension"
	"github.com/Hanzzh/mindmap/pkg/measure"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// testEngine uses the estimator so results are identical on every machine.
func testEngine() *Engine {
	calc := dimension.NewCalculator(dimension.DefaultPolicy(), measure.Estimator{})
	return NewEngine(DefaultConfig(), calc)
}

func sampleTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New("Planning")
	add := func(p tree.NodeID, text string) tree.NodeID {
		id, err := tr.AddChild(p, text)
		if err != nil {
			t.Fatal(err)
		}
		return id
	}
	goals := add(tree.Root, "Goals")
	add(goals, "Ship the first release")
	add(goals, "Keep the scope small")
	risks := add(tree.Root, "Risks")
	add(risks, "Scope creep")
	add(risks, "Unclear requirements make everything slower")
	add(tree.Root, "Team")
	return tr
}

func TestLayoutDeterministic(t *testing.T) {
	t1, t2 := sampleTree(t), sampleTree(t)
	testEngine().Layout(t1)
	testEngine().Layout(t2)

	ids1, ids2 := t1.NodeIDs(), t2.NodeIDs()
	for i := range ids1 {
		if t1.Center(ids1[i]) != t2.Center(ids2[i]) || t1.LeftEdge(ids1[i]) != t2.LeftEdge(ids2[i]) {
			t.Fatalf("node %d: positions differ between identical runs", ids1[i])
		}
	}

	// Re-running on the same tree is also bit-identical.
	before := t1.Center(ids1[3])
	testEngine().Layout(t1)
	if t1.Center(ids1[3]) != before {
		t.Error("re-layout drifted")
	}
}

func TestRootAtLeftEdgeZero(t *testing.T) {
	tr := sampleTree(t)
	testEngine().Layout(tr)
	if tr.LeftEdge(tree.Root) != 0 {
		t.Errorf("root left edge = %v, want 0", tr.LeftEdge(tree.Root))
	}
}

func TestLeftEdgeIsPrefixSumOfSteps(t *testing.T) {
	tr := sampleTree(t)
	e := testEngine()
	e.Layout(tr)
	steps := e.Steps(tr)

	want := make([]float64, len(steps)+1)
	for d, s := range steps {
		want[d+1] = want[d] + s
	}
	tr.Walk(func(id tree.NodeID) bool {
		if got := tr.LeftEdge(id); got != want[tr.Depth(id)] {
			t.Errorf("node %d depth %d: left edge %v, want %v", id, tr.Depth(id), got, want[tr.Depth(id)])
		}
		return true
	})
}

func TestStepsClamped(t *testing.T) {
	tr := sampleTree(t)
	e := testEngine()
	e.Layout(tr)
	a := DefaultConfig().Adaptive
	for d, s := range e.Steps(tr) {
		if s < a.MinSpacing || s > a.MaxSpacing {
			t.Errorf("step %d = %v outside [%v, %v]", d, s, a.MinSpacing, a.MaxSpacing)
		}
	}
}

func TestAdaptiveSpacingMonotonic(t *testing.T) {
	// Widening a node's label never tightens the step to its children.
	narrow := tree.New("r")
	n1, _ := narrow.AddChild(tree.Root, "x")
	narrow.AddChild(n1, "leaf")

	wide := tree.New("r")
	w1, _ := wide.AddChild(tree.Root, "an extremely long label that measures much wider")
	wide.AddChild(w1, "leaf")

	e := testEngine()
	e.Layout(narrow)
	e.Layout(wide)

	narrowSteps := e.Steps(narrow)
	wideSteps := e.Steps(wide)
	for d := range narrowSteps {
		if wideSteps[d] < narrowSteps[d] {
			t.Errorf("step %d shrank from %v to %v when a node got wider", d, narrowSteps[d], wideSteps[d])
		}
	}
}

func TestParentCentersOnChildren(t *testing.T) {
	tr := sampleTree(t)
	testEngine().Layout(tr)

	tr.Walk(func(id tree.NodeID) bool {
		kids := tr.Children(id)
		if len(kids) == 0 {
			return true
		}
		sum := 0.0
		for _, k := range kids {
			sum += tr.Center(k)
		}
		mean := sum / float64(len(kids))
		if math.Abs(tr.Center(id)-mean) > 1e-9 {
			t.Errorf("node %d center %v, want mean of children %v", id, tr.Center(id), mean)
		}
		return true
	})
}

func TestSiblingOrderPreserved(t *testing.T) {
	tr := sampleTree(t)
	testEngine().Layout(tr)

	tr.Walk(func(id tree.NodeID) bool {
		kids := tr.Children(id)
		for i := 1; i < len(kids); i++ {
			if tr.Center(kids[i]) <= tr.Center(kids[i-1]) {
				t.Errorf("children of %d out of order: %v then %v",
					id, tr.Center(kids[i-1]), tr.Center(kids[i]))
			}
		}
		return true
	})
}

func TestSiblingAdvanceRespectsHeights(t *testing.T) {
	cfg := DefaultConfig()
	tr := tree.New("r")
	a, _ := tr.AddChild(tree.Root, "first")
	b, _ := tr.AddChild(tree.Root, "second")
	testEngine().Layout(tr)

	adv := tr.Center(b) - tr.Center(a)
	ha := tr.Height(a) + cfg.NodeHeightBuffer
	hb := tr.Height(b) + cfg.NodeHeightBuffer
	want := math.Max(cfg.MinVerticalGap, (ha+hb)/2+cfg.VerticalSpacing)
	if math.Abs(adv-want) > 1e-9 {
		t.Errorf("sibling advance %v, want %v", adv, want)
	}
}

func TestChildlessRootOccupiesPoint(t *testing.T) {
	tr := tree.New("alone")
	testEngine().Layout(tr)
	if tr.Center(tree.Root) != 0 || tr.LeftEdge(tree.Root) != 0 {
		t.Errorf("childless root at (%v, %v), want origin", tr.Center(tree.Root), tr.LeftEdge(tree.Root))
	}
}

func TestDimensionsWrittenBack(t *testing.T) {
	tr := sampleTree(t)
	testEngine().Layout(tr)
	tr.Walk(func(id tree.NodeID) bool {
		if tr.Width(id) <= 0 || tr.Height(id) <= 0 {
			t.Errorf("node %d has degenerate box %vx%v", id, tr.Width(id), tr.Height(id))
		}
		return true
	})
}

func TestLayoutAndResolveSnapshotsPositions(t *testing.T) {
	tr := sampleTree(t)
	res := testEngine().LayoutAndResolve(tr)

	if len(res.Positions) != tr.Len() {
		t.Fatalf("positions for %d nodes, want %d", len(res.Positions), tr.Len())
	}
	tr.Walk(func(id tree.NodeID) bool {
		p := res.Positions[id]
		if p.Center != tr.Center(id) || p.LeftEdge != tr.LeftEdge(id) {
			t.Errorf("node %d snapshot (%v, %v) != tree (%v, %v)",
				id, p.Center, p.LeftEdge, tr.Center(id), tr.LeftEdge(id))
		}
		return true
	})
	if !res.Resolution.Converged {
		t.Error("small tree should converge")
	}
}
