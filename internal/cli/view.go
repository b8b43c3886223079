package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Hanzzh/mindmap/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command, an interactive outline browser.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse an outline interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			t, err := tree.ParseOutline(f)
			f.Close()
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewOutlineModel(t, args[0]))
			_, err = p.Run()
			return err
		},
	}
}

// =============================================================================
// OutlineModel - Interactive outline browsing
// =============================================================================

// OutlineModel is the bubbletea model for browsing an outline tree.
// Subtrees can be collapsed and expanded; collapsed state lives in the
// model, the tree itself is never mutated.
type OutlineModel struct {
	Tree      *tree.Tree
	Title     string
	Cursor    int
	Height    int
	Offset    int
	collapsed map[tree.NodeID]bool
	rows      []tree.NodeID // visible nodes in pre-order, honoring collapsed state
}

// NewOutlineModel creates an outline model with every subtree expanded.
func NewOutlineModel(t *tree.Tree, title string) OutlineModel {
	m := OutlineModel{
		Tree:      t,
		Title:     title,
		Height:    20,
		collapsed: make(map[tree.NodeID]bool),
	}
	m.rebuildRows()
	return m
}

// rebuildRows recomputes the visible node list after a collapse or expand.
func (m *OutlineModel) rebuildRows() {
	m.rows = m.rows[:0]
	var visit func(tree.NodeID)
	visit = func(id tree.NodeID) {
		m.rows = append(m.rows, id)
		if m.collapsed[id] {
			return
		}
		for _, c := range m.Tree.Children(id) {
			visit(c)
		}
	}
	visit(tree.Root)

	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
}

func (m OutlineModel) Init() tea.Cmd {
	return nil
}

func (m OutlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			id := m.rows[m.Cursor]
			if len(m.Tree.Children(id)) > 0 {
				m.collapsed[id] = !m.collapsed[id]
				m.rebuildRows()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m OutlineModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ fold/unfold  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		id := m.rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "  "
		if len(m.Tree.Children(id)) > 0 {
			if m.collapsed[id] {
				marker = "+ "
			} else {
				marker = "- "
			}
		}

		indent := strings.Repeat("  ", m.Tree.Depth(id))
		line := cursor + indent + marker + m.Tree.Text(id)

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.collapsed[id] {
			b.WriteString(listDimStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d nodes, depth %d",
		m.Cursor+1, len(m.rows), m.Tree.Len(), m.Tree.MaxDepth())))

	return b.String()
}
