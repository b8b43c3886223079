// Package png rasterizes a positioned mindmap layout.
//
// Unlike the SVG sink, which defers text to the viewer's fonts, the raster
// path draws with the same TrueType face the layout was measured against
// when one is available, falling back to a built-in bitmap face.
package png

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/Hanzzh/mindmap/pkg/measure"
	"github.com/Hanzzh/mindmap/pkg/render"
)

// Option configures the raster renderer.
type Option func(*renderer)

type renderer struct {
	scale float64
	fm    *measure.FontMeasurer
}

// WithScale sets the supersampling factor (default 2.0 for crisp text).
func WithScale(s float64) Option {
	return func(r *renderer) { r.scale = s }
}

// WithFonts draws text using the given measurer's faces instead of the
// bitmap fallback.
func WithFonts(fm *measure.FontMeasurer) Option {
	return func(r *renderer) { r.fm = fm }
}

var (
	nodeFill   = [...]color.RGBA{
		{0xf5, 0xd7, 0x6e, 0xff},
		{0xae, 0xd6, 0xf1, 0xff},
		{0xa9, 0xdf, 0xbf, 0xff},
		{0xf5, 0xb7, 0xb1, 0xff},
		{0xd7, 0xbd, 0xe2, 0xff},
		{0xd5, 0xdb, 0xdb, 0xff},
	}
	nodeStroke = color.RGBA{0x57, 0x60, 0x6f, 0xff}
	edgeStroke = color.RGBA{0x83, 0x95, 0xa7, 0xff}
	textColor  = color.RGBA{0x2f, 0x35, 0x42, 0xff}
)

// Render rasterizes the layout and returns encoded PNG bytes.
func Render(l render.Layout, opts ...Option) ([]byte, error) {
	r := renderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}

	dc := gg.NewContext(int(l.Width*r.scale), int(l.Height*r.scale))
	dc.Scale(r.scale, r.scale)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r.drawEdges(dc, l)
	for _, n := range l.Nodes {
		r.drawNode(dc, l, n)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *renderer) drawEdges(dc *gg.Context, l render.Layout) {
	dc.SetColor(edgeStroke)
	dc.SetLineWidth(1.5)
	for _, e := range l.Edges {
		parent, ok := l.NodeByID(e.From)
		if !ok {
			continue
		}
		child, ok := l.NodeByID(e.To)
		if !ok {
			continue
		}
		pb, cb := l.Bounds(parent), l.Bounds(child)
		x1, y1 := pb.Right, parent.Center+l.OffsetY
		x2, y2 := cb.X, child.Center+l.OffsetY
		mx := (x1 + x2) / 2
		dc.MoveTo(x1, y1)
		dc.CubicTo(mx, y1, mx, y2, x2, y2)
		dc.Stroke()
	}
}

func (r *renderer) drawNode(dc *gg.Context, l render.Layout, n render.Node) {
	b := l.Bounds(n)
	fill := nodeFill[min(n.Depth, len(nodeFill)-1)]

	dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, 6)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(nodeStroke)
	dc.SetLineWidth(1)
	dc.Stroke()

	fontSize := n.FontSize
	if fontSize == 0 {
		fontSize = 14
	}
	dc.SetFontFace(r.face(fontSize, n.Bold))
	dc.SetColor(textColor)

	lines := n.Lines
	if len(lines) == 0 {
		lines = []string{n.Text}
	}
	lineHeight := measure.LineHeight(fontSize)
	blockTop := n.Center + l.OffsetY - lineHeight*float64(len(lines))/2
	for i, line := range lines {
		y := blockTop + lineHeight*(float64(i)+0.5)
		dc.DrawStringAnchored(line, b.X+b.Width/2, y, 0.5, 0.35)
	}
}

func (r *renderer) face(size float64, bold bool) font.Face {
	if r.fm != nil {
		if f, err := r.fm.Face(size, bold); err == nil {
			return f
		}
	}
	return basicfont.Face7x13
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
