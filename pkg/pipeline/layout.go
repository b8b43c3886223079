package pipeline

import (
	"context"
	"time"

	"github.com/Hanzzh/mindmap/pkg/dimension"
	"github.com/Hanzzh/mindmap/pkg/layout"
	"github.com/Hanzzh/mindmap/pkg/observability"
	"github.com/Hanzzh/mindmap/pkg/render"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout positions a tree and packages the result into the
// serializable layout format. The returned layout carries everything a
// sink needs: node boxes with wrapped lines, connectors, frame size, and
// the overlap resolver's outcome.
func GenerateLayout(ctx context.Context, t *tree.Tree, opts Options) (render.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return render.Layout{}, err
	}
	cfg, err := opts.ResolveConfig()
	if err != nil {
		return render.Layout{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, t.Len())

	l, res, err := generateLayout(t, cfg, opts)

	observability.Pipeline().OnLayoutComplete(ctx, res.Resolution.Passes, res.Resolution.Converged, time.Since(start), err)
	return l, err
}

func generateLayout(t *tree.Tree, cfg layout.Config, opts Options) (render.Layout, layout.Result, error) {
	policy, _ := dimension.PolicyByName(opts.Style) // validated upstream
	calc := dimension.NewCalculator(policy, nil)

	// The engine never errors: non-convergence comes back as a flag on the
	// result, not a failure.
	eng := layout.NewEngine(cfg, calc)
	res := eng.LayoutAndResolve(t)

	return render.FromTree(t, res, calc), res, nil
}
