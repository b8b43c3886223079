// Package svg renders a positioned mindmap layout as an SVG document.
//
// The sink consumes the serialization format in [render], converting every
// coordinate through [geometry] so the picture matches what the layout
// engine computed. Nodes are rounded rectangles tinted by depth; connector
// curves anchor just inside each box's visual border.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Hanzzh/mindmap/pkg/geometry"
	"github.com/Hanzzh/mindmap/pkg/render"
)

// connectorGap is how far outside the padding line a connector attaches.
const connectorGap = 3

// Depth-tinted fill palette; depths beyond the palette reuse the last entry.
var fills = []string{"#f5d76e", "#aed6f1", "#a9dfbf", "#f5b7b1", "#d7bde2", "#d5dbdb"}

// Option configures the SVG renderer.
type Option func(*renderer)

type renderer struct {
	fontFamily string
	background string
	showFrame  bool
}

// WithFontFamily overrides the CSS font family.
func WithFontFamily(f string) Option { return func(r *renderer) { r.fontFamily = f } }

// WithBackground sets a solid background color (default: transparent).
func WithBackground(c string) Option { return func(r *renderer) { r.background = c } }

// WithFrame draws the frame boundary, useful when debugging offsets.
func WithFrame() Option { return func(r *renderer) { r.showFrame = true } }

// Render produces a complete SVG document for the layout.
func Render(l render.Layout, opts ...Option) []byte {
	r := renderer{fontFamily: "Helvetica, Arial, sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `<g font-family="%s">`+"\n", r.fontFamily)

	if r.background != "" {
		fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", l.Width, l.Height, r.background)
	}
	if r.showFrame {
		fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="none" stroke="#ccc"/>`+"\n", l.Width, l.Height)
	}

	renderEdges(&buf, l)
	for _, n := range l.Nodes {
		renderNode(&buf, l, n)
	}

	buf.WriteString("</g>\n</svg>\n")
	return buf.Bytes()
}

// renderEdges draws parent→child connectors beneath the boxes.
func renderEdges(buf *bytes.Buffer, l render.Layout) {
	for _, e := range l.Edges {
		parent, ok := l.NodeByID(e.From)
		if !ok {
			continue
		}
		child, ok := l.NodeByID(e.To)
		if !ok {
			continue
		}

		x1 := geometry.RightEdge(parent.LeftEdge, parent.Width, parent.Padding, connectorGap, l.OffsetX)
		y1 := parent.Center + l.OffsetY
		x2 := geometry.LeftEdge(child.LeftEdge, child.Padding, connectorGap, l.OffsetX)
		y2 := child.Center + l.OffsetY

		// Cubic with horizontal tangents at both ends.
		mx := (x1 + x2) / 2
		fmt.Fprintf(buf, `<path d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="#8395a7" stroke-width="1.5"/>`+"\n",
			x1, y1, mx, y1, mx, y2, x2, y2)
	}
}

func renderNode(buf *bytes.Buffer, l render.Layout, n render.Node) {
	b := l.Bounds(n)
	fill := fills[min(n.Depth, len(fills)-1)]

	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="#57606f"/>`+"\n",
		b.X, b.Y, b.Width, b.Height, fill)

	lines := n.Lines
	if len(lines) == 0 {
		lines = []string{n.Text}
	}
	fontSize := n.FontSize
	if fontSize == 0 {
		fontSize = 14
	}
	weight := "normal"
	if n.Bold {
		weight = "bold"
	}

	// Lines are vertically centered as a block within the box.
	lineHeight := 1.25 * fontSize
	blockTop := n.Center + l.OffsetY - lineHeight*float64(len(lines))/2
	for i, line := range lines {
		y := blockTop + lineHeight*(float64(i)+0.78) // baseline inside the line box
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-size="%.1f" font-weight="%s" text-anchor="middle" fill="#2f3542">%s</text>`+"\n",
			b.X+b.Width/2, y, fontSize, weight, escape(line))
	}
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
