package tree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Outline format: one node per line, depth expressed by indentation. A tab
// or two spaces count as one level; an optional "- " list marker after the
// indent is tolerated and stripped. The first non-blank line is the root
// and must not be indented.
//
// This mirrors how the host editor hands the engine a tree: the engine
// itself interprets no markup, it only needs depth, text and child order.

// ParseOutline reads an indented outline into a tree.
func ParseOutline(r io.Reader) (*Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var t *Tree
	// Last node seen per depth, so each line attaches to the nearest
	// shallower line above it.
	last := make(map[int]NodeID)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth, text := splitIndent(line)

		if t == nil {
			if depth != 0 {
				return nil, fmt.Errorf("line %d: first entry must not be indented", lineNo)
			}
			t = New(text)
			last[0] = Root
			continue
		}

		if depth == 0 {
			return nil, fmt.Errorf("line %d: multiple roots (outline describes a single tree)", lineNo)
		}
		parent, ok := last[depth-1]
		if !ok {
			return nil, fmt.Errorf("line %d: indent jumps past depth %d", lineNo, depth-1)
		}
		id, err := t.AddChild(parent, text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		last[depth] = id
		// Deeper stale entries must not adopt later lines.
		for d := depth + 1; ; d++ {
			if _, ok := last[d]; !ok {
				break
			}
			delete(last, d)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("empty outline")
	}
	return t, nil
}

// WriteOutline serializes the tree back to the indented outline format.
// ParseOutline(WriteOutline(t)) reproduces t's structure and labels.
func WriteOutline(w io.Writer, t *Tree) error {
	var err error
	t.Walk(func(id NodeID) bool {
		depth := t.Depth(id)
		line := strings.Repeat("\t", depth)
		if depth > 0 {
			line += "- "
		}
		// Embedded newlines are escaped so one node stays one line.
		text := strings.ReplaceAll(t.Text(id), "\n", "\\n")
		if _, werr := fmt.Fprintln(w, line+text); werr != nil {
			err = werr
			return false
		}
		return true
	})
	return err
}

// splitIndent measures the indentation level and strips it, along with an
// optional list marker, from the line.
func splitIndent(line string) (depth int, text string) {
	i := 0
	for i < len(line) {
		switch {
		case line[i] == '\t':
			depth++
			i++
		case strings.HasPrefix(line[i:], "  "):
			depth++
			i += 2
		default:
			text = strings.TrimPrefix(line[i:], "- ")
			text = strings.ReplaceAll(text, "\\n", "\n")
			return depth, text
		}
	}
	return depth, ""
}
