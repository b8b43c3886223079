// Package render turns computed layouts into drawable output.
//
// # Overview
//
// This package holds the frame-space layout types shared by every output
// format, plus the format backends themselves:
//
//   - Layout construction and JSON serialization (this package)
//   - Scalable vector output (in [svg] subpackage)
//   - Raster output (in [png] subpackage)
//   - Graphviz DOT export (in [dot] subpackage)
//
// # Frame Space
//
// The layout engine positions nodes in an unbounded layout space that can
// extend into negative coordinates. [FromTree] translates everything into
// frame space, where the origin sits at the top-left and a fixed margin
// surrounds the content. All format backends consume frame-space layouts.
//
//	result := engine.LayoutAndResolve(t)
//	l := render.FromTree(t, result, calc)
//
// # Formats
//
// The [svg] subpackage draws node boxes with wrapped text and cubic Bezier
// connectors. The [png] subpackage rasterizes the same geometry with real
// font glyphs and configurable supersampling. The [dot] subpackage emits
// Graphviz DOT text and can also render it via the embedded Graphviz engine.
//
//	data := svg.Render(l, svg.WithBackground("#ffffff"))
//	img, err := png.Render(l, png.WithScale(2.0))
//	text := dot.ToDOT(l)
//
// Layouts round-trip losslessly through [Marshal] and [Unmarshal], which is
// what makes cached layouts reusable across processes.
//
// [svg]: github.com/Hanzzh/mindmap/pkg/render/svg
// [png]: github.com/Hanzzh/mindmap/pkg/render/png
// [dot]: github.com/Hanzzh/mindmap/pkg/render/dot
package render
