package svg

import (
	"strings"
	"testing"

	"github.com/Hanzzh/mindmap/pkg/render"
)

func sampleLayout() render.Layout {
	return render.Layout{
		Width:   400,
		Height:  200,
		OffsetX: 24,
		OffsetY: 74,
		Nodes: []render.Node{
			{ID: 0, Parent: -1, Text: "Root & Co", Depth: 0, Center: 0, LeftEdge: 0, Width: 120, Height: 48, Padding: 14, FontSize: 20, Bold: true},
			{ID: 1, Parent: 0, Text: "<child>", Depth: 1, Center: 0, LeftEdge: 180, Width: 100, Height: 36, Padding: 12, FontSize: 17, Bold: true},
		},
		Edges:     []render.Edge{{From: 0, To: 1}},
		Converged: true,
	}
}

func TestRenderProducesDocument(t *testing.T) {
	out := string(Render(sampleLayout()))

	if !strings.HasPrefix(out, "<svg ") {
		t.Fatalf("output does not start with an svg element: %.60q", out)
	}
	if !strings.Contains(out, `viewBox="0 0 400.0 200.0"`) {
		t.Error("viewBox should match the frame size")
	}
	if got := strings.Count(out, "<rect"); got != 2 {
		t.Errorf("rect count = %d, want 2", got)
	}
	if got := strings.Count(out, "<path"); got != 1 {
		t.Errorf("path count = %d, want 1", got)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("document is not closed")
	}
}

func TestRenderEscapesText(t *testing.T) {
	out := string(Render(sampleLayout()))

	if strings.Contains(out, "<child>") {
		t.Error("raw angle brackets leaked into markup")
	}
	if !strings.Contains(out, "&lt;child&gt;") {
		t.Error("text should be entity-escaped")
	}
	if !strings.Contains(out, "Root &amp; Co") {
		t.Error("ampersand should be entity-escaped")
	}
}

func TestRenderBoldWeight(t *testing.T) {
	out := string(Render(sampleLayout()))
	if !strings.Contains(out, `font-weight="bold"`) {
		t.Error("bold nodes should render with bold weight")
	}
}

func TestRenderOptions(t *testing.T) {
	out := string(Render(sampleLayout(), WithBackground("#ffffff"), WithFontFamily("monospace")))
	if !strings.Contains(out, `fill="#ffffff"`) {
		t.Error("background rect missing")
	}
	if !strings.Contains(out, `font-family="monospace"`) {
		t.Error("font family override missing")
	}
}

func TestRenderMultilineNode(t *testing.T) {
	l := sampleLayout()
	l.Nodes[1].Lines = []string{"first line", "second line"}
	out := string(Render(l))
	if got := strings.Count(out, "<text"); got != 3 {
		t.Errorf("text element count = %d, want 3 (one per line)", got)
	}
}
