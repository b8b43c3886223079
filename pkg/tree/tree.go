// Package tree holds the mindmap node hierarchy.
//
// Nodes live in an arena and are addressed by integer handles instead of
// pointers. Children own their subtrees; the parent reference is a weak
// back-pointer used only for lookups. Because a child can only be created
// by attaching it to an existing node, cycles are structurally impossible
// to construct.
//
// The tree is read-mostly from the layout engine's point of view: the
// engine writes back each node's center, left edge, width and height, and
// touches nothing else. Child order is insertion order and is preserved
// across re-layout.
package tree

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// NodeID is an arena handle. The root is always handle 0.
type NodeID int

// Root is the handle of the tree's single root node.
const Root NodeID = 0

// None marks the absence of a node (the root's parent).
const None NodeID = -1

type node struct {
	text     string
	depth    int
	parent   NodeID
	children []NodeID
	removed  bool

	// Written back by the layout engine and dimension calculator.
	center   float64
	leftEdge float64
	width    float64
	height   float64
}

// Tree is an arena of nodes rooted at handle 0.
type Tree struct {
	nodes []node
	live  int
}

// New creates a tree containing only the root node.
func New(rootText string) *Tree {
	return &Tree{
		nodes: []node{{text: rootText, depth: 0, parent: None}},
		live:  1,
	}
}

// AddChild appends a new node under parent and returns its handle.
func (t *Tree) AddChild(parent NodeID, text string) (NodeID, error) {
	if err := t.check(parent); err != nil {
		return None, err
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		text:   text,
		depth:  t.nodes[parent].depth + 1,
		parent: parent,
	})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	t.live++
	return id, nil
}

// Remove detaches a subtree from its parent. The root cannot be removed.
// Handles inside the removed subtree become invalid; the arena slots are
// not reused.
func (t *Tree) Remove(id NodeID) error {
	if err := t.check(id); err != nil {
		return err
	}
	if id == Root {
		return fmt.Errorf("cannot remove the root node")
	}

	parent := t.nodes[id].parent
	siblings := t.nodes[parent].children
	for i, c := range siblings {
		if c == id {
			t.nodes[parent].children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}

	var mark func(NodeID)
	mark = func(n NodeID) {
		t.nodes[n].removed = true
		t.live--
		for _, c := range t.nodes[n].children {
			mark(c)
		}
	}
	mark(id)
	return nil
}

// Len is the number of live nodes.
func (t *Tree) Len() int { return t.live }

// Text returns a node's raw label.
func (t *Tree) Text(id NodeID) string { return t.nodes[id].text }

// SetText replaces a node's label in place.
func (t *Tree) SetText(id NodeID, text string) { t.nodes[id].text = text }

// Depth returns the node's distance from the root (root is 0).
func (t *Tree) Depth(id NodeID) int { return t.nodes[id].depth }

// Parent returns the node's parent handle, or None for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Children returns the node's children in insertion order. The returned
// slice is the arena's own; callers must not mutate it.
func (t *Tree) Children(id NodeID) []NodeID { return t.nodes[id].children }

// Center returns the node's layout-space vertical center.
func (t *Tree) Center(id NodeID) float64 { return t.nodes[id].center }

// SetCenter writes the node's layout-space vertical center.
func (t *Tree) SetCenter(id NodeID, v float64) { t.nodes[id].center = v }

// LeftEdge returns the node's layout-space horizontal left edge.
func (t *Tree) LeftEdge(id NodeID) float64 { return t.nodes[id].leftEdge }

// SetLeftEdge writes the node's layout-space horizontal left edge.
func (t *Tree) SetLeftEdge(id NodeID, v float64) { t.nodes[id].leftEdge = v }

// Width returns the node's box width.
func (t *Tree) Width(id NodeID) float64 { return t.nodes[id].width }

// Height returns the node's box height.
func (t *Tree) Height(id NodeID) float64 { return t.nodes[id].height }

// SetSize writes the node's box dimensions.
func (t *Tree) SetSize(id NodeID, width, height float64) {
	t.nodes[id].width = width
	t.nodes[id].height = height
}

// Walk visits live nodes in stable pre-order. Returning false from fn stops
// the traversal.
func (t *Tree) Walk(fn func(NodeID) bool) {
	var visit func(NodeID) bool
	visit = func(id NodeID) bool {
		if t.nodes[id].removed {
			return true
		}
		if !fn(id) {
			return false
		}
		for _, c := range t.nodes[id].children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(Root)
}

// NodeIDs returns all live handles in pre-order.
func (t *Tree) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, t.live)
	t.Walk(func(id NodeID) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// IsAncestor reports whether a is a strict ancestor of b.
func (t *Tree) IsAncestor(a, b NodeID) bool {
	for p := t.nodes[b].parent; p != None; p = t.nodes[p].parent {
		if p == a {
			return true
		}
	}
	return false
}

// Related reports whether the two nodes are in an ancestor/descendant
// relationship (in either direction). A node is not related to itself.
func (t *Tree) Related(a, b NodeID) bool {
	return t.IsAncestor(a, b) || t.IsAncestor(b, a)
}

// MaxDepth returns the deepest live node's depth.
func (t *Tree) MaxDepth() int {
	max := 0
	t.Walk(func(id NodeID) bool {
		if d := t.nodes[id].depth; d > max {
			max = d
		}
		return true
	})
	return max
}

// Hash returns a content hash over the tree's structure and labels,
// independent of positions and dimensions. Used as the cache key for
// computed layouts.
func (t *Tree) Hash() string {
	h := sha256.New()
	var buf [8]byte
	t.Walk(func(id NodeID) bool {
		binary.LittleEndian.PutUint64(buf[:], uint64(t.nodes[id].depth))
		h.Write(buf[:])
		h.Write([]byte(t.nodes[id].text))
		h.Write([]byte{0})
		return true
	})
	return hex.EncodeToString(h.Sum(nil))
}

func (t *Tree) check(id NodeID) error {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id].removed {
		return fmt.Errorf("invalid node handle %d", id)
	}
	return nil
}
