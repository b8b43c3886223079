package tree

import (
	"bytes"
	"strings"
	"testing"
)

const sampleOutline = `Project
	- Goals
		- Ship v1
		- Keep scope small
	- Risks
		- Scope creep
	- Team
`

func TestParseOutline(t *testing.T) {
	tr, err := ParseOutline(strings.NewReader(sampleOutline))
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}

	if tr.Text(Root) != "Project" {
		t.Errorf("root = %q", tr.Text(Root))
	}
	kids := tr.Children(Root)
	if len(kids) != 3 {
		t.Fatalf("root has %d children, want 3", len(kids))
	}
	if tr.Text(kids[0]) != "Goals" || tr.Text(kids[2]) != "Team" {
		t.Errorf("child order: %q, %q", tr.Text(kids[0]), tr.Text(kids[2]))
	}
	goals := tr.Children(kids[0])
	if len(goals) != 2 || tr.Text(goals[1]) != "Keep scope small" {
		t.Errorf("grandchildren wrong: %v", goals)
	}
	if tr.Depth(goals[0]) != 2 {
		t.Errorf("depth of grandchild = %d, want 2", tr.Depth(goals[0]))
	}
}

func TestParseOutlineTwoSpaceIndent(t *testing.T) {
	src := "Root\n  First\n    Deep\n  Second\n"
	tr, err := ParseOutline(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}
	if tr.Len() != 4 {
		t.Errorf("Len = %d, want 4", tr.Len())
	}
	if tr.MaxDepth() != 2 {
		t.Errorf("MaxDepth = %d, want 2", tr.MaxDepth())
	}
}

func TestParseOutlineErrors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"indented first": "\t- oops\n",
		"two roots":      "one\ntwo\n",
		"indent jump":    "root\n\t\t\t- too deep\n",
	}
	for name, src := range cases {
		if _, err := ParseOutline(strings.NewReader(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestOutlineRoundTrip(t *testing.T) {
	tr, err := ParseOutline(strings.NewReader(sampleOutline))
	if err != nil {
		t.Fatalf("ParseOutline: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteOutline(&buf, tr); err != nil {
		t.Fatalf("WriteOutline: %v", err)
	}
	back, err := ParseOutline(&buf)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if back.Hash() != tr.Hash() {
		t.Error("outline round trip changed the tree")
	}
}

func TestOutlineEscapesEmbeddedNewlines(t *testing.T) {
	tr := New("root")
	if _, err := tr.AddChild(Root, "two\nlines"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteOutline(&buf, tr); err != nil {
		t.Fatal(err)
	}
	back, err := ParseOutline(&buf)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	kid := back.Children(Root)[0]
	if back.Text(kid) != "two\nlines" {
		t.Errorf("embedded newline lost: %q", back.Text(kid))
	}
}
