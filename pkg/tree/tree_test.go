package tree

import (
	"testing"
)

func buildSample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tr := New("root")
	ids := map[string]NodeID{"root": Root}
	add := func(parent, name string) {
		id, err := tr.AddChild(ids[parent], name)
		if err != nil {
			t.Fatalf("AddChild(%s, %s): %v", parent, name, err)
		}
		ids[name] = id
	}
	add("root", "a")
	add("root", "b")
	add("a", "a1")
	add("a", "a2")
	add("b", "b1")
	return tr, ids
}

func TestDepthsAndParents(t *testing.T) {
	tr, ids := buildSample(t)

	if tr.Depth(Root) != 0 || tr.Parent(Root) != None {
		t.Error("root must be depth 0 with no parent")
	}
	if tr.Depth(ids["a"]) != 1 || tr.Depth(ids["a1"]) != 2 {
		t.Error("child depth must be parent depth + 1")
	}
	if tr.Parent(ids["a2"]) != ids["a"] {
		t.Error("parent back-pointer wrong")
	}
}

func TestChildOrderIsInsertionOrder(t *testing.T) {
	tr, ids := buildSample(t)
	kids := tr.Children(ids["a"])
	if len(kids) != 2 || kids[0] != ids["a1"] || kids[1] != ids["a2"] {
		t.Errorf("children of a = %v, want [a1 a2]", kids)
	}
}

func TestWalkPreOrder(t *testing.T) {
	tr, _ := buildSample(t)
	var order []string
	tr.Walk(func(id NodeID) bool {
		order = append(order, tr.Text(id))
		return true
	})
	want := []string{"root", "a", "a1", "a2", "b", "b1"}
	if len(order) != len(want) {
		t.Fatalf("walk visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("walk order %v, want %v", order, want)
		}
	}
}

func TestIsAncestor(t *testing.T) {
	tr, ids := buildSample(t)
	if !tr.IsAncestor(Root, ids["a1"]) {
		t.Error("root is an ancestor of a1")
	}
	if !tr.IsAncestor(ids["a"], ids["a2"]) {
		t.Error("a is an ancestor of a2")
	}
	if tr.IsAncestor(ids["a1"], ids["a"]) {
		t.Error("a1 is not an ancestor of a")
	}
	if tr.IsAncestor(ids["a"], ids["a"]) {
		t.Error("a node is not its own ancestor")
	}
	if tr.Related(ids["a1"], ids["b1"]) {
		t.Error("cousins are not related")
	}
	if !tr.Related(ids["a1"], Root) {
		t.Error("Related must hold in both directions")
	}
}

func TestRemoveSubtree(t *testing.T) {
	tr, ids := buildSample(t)
	if err := tr.Remove(ids["a"]); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if tr.Len() != 3 {
		t.Errorf("Len = %d after removing subtree of 3, want 3", tr.Len())
	}
	var seen []string
	tr.Walk(func(id NodeID) bool {
		seen = append(seen, tr.Text(id))
		return true
	})
	if len(seen) != 3 {
		t.Errorf("walk after remove visited %v", seen)
	}

	// Removed handles are invalid for mutation.
	if _, err := tr.AddChild(ids["a1"], "ghost"); err == nil {
		t.Error("AddChild under a removed node should fail")
	}
	if err := tr.Remove(Root); err == nil {
		t.Error("removing the root should fail")
	}
}

func TestHashTracksContentNotPositions(t *testing.T) {
	tr1, _ := buildSample(t)
	tr2, ids := buildSample(t)

	if tr1.Hash() != tr2.Hash() {
		t.Error("identical trees should hash identically")
	}

	tr2.SetCenter(ids["a"], 123)
	tr2.SetSize(ids["a"], 50, 20)
	if tr1.Hash() != tr2.Hash() {
		t.Error("positions and dimensions must not affect the content hash")
	}

	tr2.SetText(ids["a"], "renamed")
	if tr1.Hash() == tr2.Hash() {
		t.Error("label changes must change the content hash")
	}
}
