// Package render holds the serialization format for positioned mindmaps
// and the shared scene model the sinks (SVG, PNG, DOT) draw from.
//
// The format is designed for round-trip fidelity: layout → export → import
// → render produces the same picture. JSON is the interchange encoding;
// BSON tags support document storage.
package render

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/Hanzzh/mindmap/pkg/dimension"
	"github.com/Hanzzh/mindmap/pkg/geometry"
	"github.com/Hanzzh/mindmap/pkg/layout"
	"github.com/Hanzzh/mindmap/pkg/tree"
)

// Margin is the clear border around the rendered content, in user units.
const Margin = 24.0

// Node is one positioned node in the serialization format. Center and
// LeftEdge are layout-space; sinks convert through OffsetX/OffsetY.
type Node struct {
	ID       int      `json:"id" bson:"id"`
	Parent   int      `json:"parent" bson:"parent"` // -1 for the root
	Text     string   `json:"text" bson:"text"`
	Depth    int      `json:"depth" bson:"depth"`
	Lines    []string `json:"lines,omitempty" bson:"lines,omitempty"`
	Center   float64  `json:"center" bson:"center"`
	LeftEdge float64  `json:"left_edge" bson:"left_edge"`
	Width    float64  `json:"width" bson:"width"`
	Height   float64  `json:"height" bson:"height"`
	Padding  float64  `json:"padding,omitempty" bson:"padding,omitempty"`
	FontSize float64  `json:"font_size,omitempty" bson:"font_size,omitempty"`
	Bold     bool     `json:"bold,omitempty" bson:"bold,omitempty"`
}

// Edge is a parent→child connector.
type Edge struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// Layout is the complete serializable picture: frame, offsets that map
// layout space into the frame, nodes and connectors, and the overlap
// resolver's outcome for diagnostics.
type Layout struct {
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	OffsetX float64 `json:"offset_x" bson:"offset_x"`
	OffsetY float64 `json:"offset_y" bson:"offset_y"`

	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`

	Converged bool `json:"converged" bson:"converged"`
}

// FromTree exports a positioned tree. The frame is sized to the content
// plus margins, and offsets are chosen so every render coordinate is
// positive. calc may be nil, in which case labels render unwrapped with
// default metrics.
func FromTree(t *tree.Tree, res layout.Result, calc *dimension.Calculator) Layout {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	t.Walk(func(id tree.NodeID) bool {
		top := t.Center(id) - t.Height(id)/2
		if t.LeftEdge(id) < minX {
			minX = t.LeftEdge(id)
		}
		if r := t.LeftEdge(id) + t.Width(id); r > maxX {
			maxX = r
		}
		if top < minY {
			minY = top
		}
		if b := t.Center(id) + t.Height(id)/2; b > maxY {
			maxY = b
		}
		return true
	})

	l := Layout{
		OffsetX:   Margin - minX,
		OffsetY:   Margin - minY,
		Width:     (maxX - minX) + 2*Margin,
		Height:    (maxY - minY) + 2*Margin,
		Converged: res.Resolution.Converged,
	}

	t.Walk(func(id tree.NodeID) bool {
		n := Node{
			ID:       int(id),
			Parent:   int(t.Parent(id)),
			Text:     t.Text(id),
			Depth:    t.Depth(id),
			Center:   t.Center(id),
			LeftEdge: t.LeftEdge(id),
			Width:    t.Width(id),
			Height:   t.Height(id),
		}
		if calc != nil {
			d := calc.Dimensions(t.Depth(id), t.Text(id))
			n.Lines = d.Lines
			n.Padding = d.Padding
			n.FontSize = d.FontSize
			n.Bold = d.Bold
		}
		l.Nodes = append(l.Nodes, n)
		if p := t.Parent(id); p != tree.None {
			l.Edges = append(l.Edges, Edge{From: int(p), To: int(id)})
		}
		return true
	})
	return l
}

// Bounds returns the node's render-space bounding box, for sinks and for
// the host's hit-testing layer.
func (l Layout) Bounds(n Node) geometry.Bounds {
	x := geometry.ToRenderX(n.LeftEdge, l.OffsetX)
	y := geometry.ToRenderY(n.Center, n.Height, l.OffsetY)
	return geometry.BoundsOf(x, y, n.Width, n.Height)
}

// NodeByID looks up a node in the serialized layout.
func (l Layout) NodeByID(id int) (Node, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout, validating the minimum
// shape a sink needs.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if len(l.Nodes) == 0 {
		return Layout{}, fmt.Errorf("layout contains no nodes")
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
