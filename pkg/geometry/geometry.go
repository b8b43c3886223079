// Package geometry converts between layout space and render space.
//
// Layout space is the coordinate system the layout engine works in: a node's
// vertical value is its *center* and its horizontal value is its *left edge*.
// Render space is what the drawing surface uses: a node is anchored at its
// top-left corner.
//
// All functions are pure and stateless, so they are safe to call from any
// goroutine. The layout engine, the overlap resolver, and every render sink
// share these conversions so that a position computed once means the same
// thing everywhere.
package geometry

// ToRenderX converts a layout-space left edge to a render-space X coordinate.
// The horizontal axis maps directly; only the frame offset is applied.
func ToRenderX(layoutEdge, offset float64) float64 {
	return layoutEdge + offset
}

// ToRenderY converts a layout-space center to a render-space Y coordinate.
// The drawing primitive anchors at the top edge, so the node height is
// folded in to shift from center to top.
func ToRenderY(layoutCenter, nodeHeight, offset float64) float64 {
	return layoutCenter + offset - nodeHeight/2
}

// FromRenderY is the exact inverse of ToRenderY. For any real-valued inputs,
// FromRenderY(ToRenderY(c, h, o), h, o) == c.
func FromRenderY(renderY, nodeHeight, offset float64) float64 {
	return renderY - offset + nodeHeight/2
}

// RightEdge returns the render-space X where a connector should attach on a
// node's right side. The anchor sits just inside the visual border (padding
// pulls it in, lineGap pushes it back out toward the child).
func RightEdge(layoutEdge, width, padding, lineGap, offset float64) float64 {
	return layoutEdge + width - padding + lineGap + offset
}

// LeftEdge returns the render-space X where a connector should attach on a
// node's left side. Mirror of RightEdge.
func LeftEdge(layoutEdge, padding, lineGap, offset float64) float64 {
	return layoutEdge + padding - lineGap + offset
}

// Bounds is a render-space bounding box, used by renderers and by the host's
// hit-testing layer.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoundsOf builds the bounding box for a node at the given render position.
func BoundsOf(renderX, renderY, width, height float64) Bounds {
	return Bounds{
		X:      renderX,
		Y:      renderY,
		Right:  renderX + width,
		Bottom: renderY + height,
		Width:  width,
		Height: height,
	}
}

// GapBetween returns the signed vertical clearance between two nodes given
// their layout-space centers and heights. Positive means clear space, zero
// means touching, negative is the overlap depth.
func GapBetween(center1, height1, center2, height2 float64) float64 {
	return (center2 - height2/2) - (center1 + height1/2)
}

// Overlaps reports whether two nodes violate the minimum vertical gap.
// The check is symmetric. An exact touch with minGap == 0 does not overlap:
// the boundary case resolves to false.
func Overlaps(center1, height1, center2, height2, minGap float64) bool {
	top1, bottom1 := center1-height1/2, center1+height1/2
	top2, bottom2 := center2-height2/2, center2+height2/2
	return !(bottom1+minGap <= top2 || bottom2+minGap <= top1)
}
