// Package pkg provides the core libraries for mindmap layout and rendering.
//
// # Overview
//
// Mindmap turns indented text outlines into overlap-free mindmap diagrams.
// Node boxes grow with their labels, and the layout engine spaces branches
// adaptively so dense subtrees never collide. The pkg directory is organized
// into these areas:
//
//  1. [tree] - The node hierarchy: an arena of labeled nodes parsed from outlines
//  2. [dimension] - Text measurement and node box sizing
//  3. [layout] - Recursive positioning and iterative overlap resolution
//  4. [render] - Frame-space layouts and output formats (SVG, PNG, DOT, JSON)
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//  6. [cache] / [store] - Infrastructure (file/Redis caching, document storage)
//
// # Architecture
//
// The typical data flow:
//
//	Indented outline text
//	         ↓
//	    [tree] package (parse into a node arena)
//	         ↓
//	    [dimension] package (measure labels, size boxes)
//	         ↓
//	    [layout] package (position subtrees, resolve overlaps)
//	         ↓
//	    [render] package (frame-space layout + SVG/PNG/DOT/JSON output)
//
// # Quick Start
//
// Parse an outline and render it as SVG:
//
//	import (
//	    "github.com/Hanzzh/mindmap/pkg/dimension"
//	    "github.com/Hanzzh/mindmap/pkg/layout"
//	    "github.com/Hanzzh/mindmap/pkg/render"
//	    "github.com/Hanzzh/mindmap/pkg/render/svg"
//	    "github.com/Hanzzh/mindmap/pkg/tree"
//	)
//
//	// 1. Parse the outline
//	t, _ := tree.ParseOutline(strings.NewReader("Project\n\t- Research\n\t- Build\n"))
//
//	// 2. Size the nodes
//	calc := dimension.NewCalculator(dimension.DefaultPolicy(), nil)
//
//	// 3. Compute the layout
//	engine := layout.NewEngine(layout.DefaultConfig(), calc)
//	result := engine.LayoutAndResolve(t)
//
//	// 4. Render to SVG
//	l := render.FromTree(t, result, calc)
//	data := svg.Render(l)
//
// Or run the whole thing through the pipeline, which also handles caching:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Outline: "Project\n\t- Research\n\t- Build\n",
//	    Formats: []string{"svg"},
//	})
//
// # Main Packages
//
// [tree] - Arena-backed node hierarchy with integer handles. Parses and
// writes the indented outline format and hashes tree content for caching.
//
// [geometry] - Scalar intervals and axis-aligned boxes used by the layout
// engine's overlap tests.
//
// [measure] - Text width measurement. Uses real font metrics via system
// font discovery when available, with an estimator fallback.
//
// [dimension] - Node box sizing from label text: wrapping, padding, and
// per-depth style policies.
//
// [layout] - The layout engine. Positions subtrees recursively, then runs
// bounded overlap-resolution passes until sibling subtrees are separated.
//
// [render] - Frame-space layout types and JSON serialization, with
// subpackages for SVG ([render/svg]), PNG ([render/png]), and Graphviz DOT
// ([render/dot]) output.
//
// [pipeline] - Complete pipeline (parse → layout → render) used by the CLI
// and the HTTP API. Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed caching of computed layouts and rendered
// artifacts. File-backed for the CLI, Redis-backed for servers.
//
// [store] - Document persistence for named outlines (memory and MongoDB).
//
// [errors] - Coded errors shared across packages, mapped onto HTTP status
// codes by the API server.
//
// [observability] - Pluggable hooks for pipeline, cache, and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//
// [tree]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/tree
// [geometry]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/geometry
// [measure]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/measure
// [dimension]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/dimension
// [layout]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/layout
// [render]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/render/svg
// [render/png]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/render/png
// [render/dot]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/cache
// [store]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/store
// [errors]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/Hanzzh/mindmap/pkg/observability
package pkg
