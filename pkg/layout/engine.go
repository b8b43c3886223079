package layout

import (
	"math"

	"github.com/Hanzzh/mindmap/pkg/dimension"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// Engine computes node positions for a tree. It is cheap to construct; the
// dimension calculator carries the only cache.
type Engine struct {
	cfg  Config
	calc *dimension.Calculator
}

// NewEngine builds an engine. A nil calculator gets the default style
// policy with the best available measurer.
func NewEngine(cfg Config, calc *dimension.Calculator) *Engine {
	if calc == nil {
		calc = dimension.NewCalculator(dimension.DefaultPolicy(), nil)
	}
	return &Engine{cfg: cfg, calc: calc}
}

// Position is one node's layout-space coordinates.
type Position struct {
	Center   float64 `json:"center"`
	LeftEdge float64 `json:"left_edge"`
}

// Result is the outcome of a full layout run, kept for testability and
// debugging: final positions plus the overlap-resolution audit trail.
type Result struct {
	Positions  map[tree.NodeID]Position
	Resolution Resolution
}

// Layout assigns every node's center and left edge in place. It is the
// baseline full-tree recomputation: always correct, bounded by tree size,
// no suspension points and no I/O.
func (e *Engine) Layout(t *tree.Tree) {
	e.measure(t)
	e.assignHorizontal(t)

	var cur cursor
	e.place(t, tree.Root, &cur)
}

// LayoutAndResolve runs Layout followed by overlap resolution and snapshots
// the final positions.
func (e *Engine) LayoutAndResolve(t *tree.Tree) Result {
	e.Layout(t)
	res := ResolveOverlaps(t, e.cfg.MinNodeGap, e.cfg.maxPasses(t.Len()))

	positions := make(map[tree.NodeID]Position, t.Len())
	t.Walk(func(id tree.NodeID) bool {
		positions[id] = Position{Center: t.Center(id), LeftEdge: t.LeftEdge(id)}
		return true
	})
	return Result{Positions: positions, Resolution: res}
}

// Calculator exposes the engine's dimension calculator so hosts can
// invalidate entries when labels change.
func (e *Engine) Calculator() *dimension.Calculator { return e.calc }

// measure writes each node's box dimensions back onto the tree.
func (e *Engine) measure(t *tree.Tree) {
	t.Walk(func(id tree.NodeID) bool {
		d := e.calc.Dimensions(t.Depth(id), t.Text(id))
		t.SetSize(id, d.Width, d.Height)
		return true
	})
}

// assignHorizontal computes per-depth step distances and writes each node's
// left edge as the prefix sum of steps along its depth. The root's left
// edge is always 0.
func (e *Engine) assignHorizontal(t *tree.Tree) {
	steps := e.Steps(t)

	edges := make([]float64, len(steps)+1)
	for d, s := range steps {
		edges[d+1] = edges[d] + s
	}

	t.Walk(func(id tree.NodeID) bool {
		t.SetLeftEdge(id, edges[t.Depth(id)])
		return true
	})
}

// Steps returns the adaptive horizontal step for each depth transition
// [0→1, 1→2, ...]. Exposed for tests and for the host's viewport sizing.
func (e *Engine) Steps(t *tree.Tree) []float64 {
	maxDepth := t.MaxDepth()
	if maxDepth == 0 {
		return nil
	}

	sums := make([]float64, maxDepth+1)
	counts := make([]int, maxDepth+1)
	t.Walk(func(id tree.NodeID) bool {
		d := t.Depth(id)
		sums[d] += t.Width(id)
		counts[d]++
		return true
	})

	avg := func(d int) float64 {
		if d > maxDepth || counts[d] == 0 {
			// No width statistics: fall back to the fixed spacing seed.
			return e.cfg.HorizontalSpacing
		}
		return sums[d] / float64(counts[d])
	}

	a := e.cfg.Adaptive
	steps := make([]float64, maxDepth)
	for d := 0; d < maxDepth; d++ {
		step := a.BaseSpacing + a.SourceNodeRatio*avg(d) + a.TargetNodeRatio*avg(d+1) + a.SafetyMargin
		steps[d] = clamp(step, a.MinSpacing, a.MaxSpacing)
	}
	return steps
}

// cursor is the running vertical position shared by the whole placement
// pass. It remembers the previous leaf so the sibling advance can account
// for both heights.
type cursor struct {
	center     float64
	prevHeight float64
	placed     bool
}

// place positions the subtree rooted at id and returns its vertical extent
// [top, bottom]. Leaves advance the cursor; internal nodes center on the
// mean of their children and shift later child subtrees down when they
// would intrude on an earlier sibling's reserved extent.
func (e *Engine) place(t *tree.Tree, id tree.NodeID, cur *cursor) (top, bottom float64) {
	h := t.Height(id) + e.cfg.NodeHeightBuffer
	kids := t.Children(id)

	if len(kids) == 0 {
		var c float64
		if cur.placed {
			adv := math.Max(e.cfg.MinVerticalGap, (cur.prevHeight+h)/2+e.cfg.VerticalSpacing)
			c = cur.center + adv
		}
		cur.center, cur.prevHeight, cur.placed = c, h, true
		t.SetCenter(id, c)
		return c - h/2, c + h/2
	}

	var sum, prevBottom float64
	first := true
	for _, k := range kids {
		kt, kb := e.place(t, k, cur)
		if !first && kt < prevBottom+e.cfg.VerticalSpacing {
			delta := prevBottom + e.cfg.VerticalSpacing - kt
			shiftSubtree(t, k, delta)
			kt += delta
			kb += delta
			// The cursor points into the shifted subtree; keep it in sync.
			cur.center += delta
		}
		if first {
			top = kt
			prevBottom = kb
			first = false
		} else if kb > prevBottom {
			prevBottom = kb
		}
		sum += t.Center(k)
	}

	c := sum / float64(len(kids))
	t.SetCenter(id, c)

	top = math.Min(top, c-h/2)
	bottom = math.Max(prevBottom, c+h/2)
	return top, bottom
}

// shiftSubtree moves a subtree's centers by delta, keeping every relative
// offset intact.
func shiftSubtree(t *tree.Tree, id tree.NodeID, delta float64) {
	t.SetCenter(id, t.Center(id)+delta)
	for _, k := range t.Children(id) {
		shiftSubtree(t, k, delta)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
