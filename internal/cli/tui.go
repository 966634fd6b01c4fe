package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcegraph/pkg/diagram"
	ferr "github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/state"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// stateColours maps element states to terminal colours.
var stateColours = map[graph.State]lipgloss.Color{
	graph.StateActive:      colorWhite,
	graph.StateSelected:    colorGreen,
	graph.StateHighlighted: colorYellow,
	graph.StateHidden:      colorDim,
}

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [payload]",
		Short: "Interactively click, hover and hide diagram elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := &diagram.Recorder{}
			d, _, err := c.open(args[0], diagram.WithBridge(rec))
			if err != nil {
				return err
			}
			m := NewExploreModel(d, rec)
			if _, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run(); err != nil {
				return err
			}
			printSuccess("%d notifications sent to the renderer", rec.Len())
			return nil
		},
	}
}

// =============================================================================
// ExploreModel - Interactive diagram exploration
// =============================================================================

// ExploreModel is the bubbletea model for driving a diagram from the keyboard.
// Moving the cursor hovers the element under it.
type ExploreModel struct {
	Diagram *diagram.Diagram
	Refs    []graph.ElementRef
	Cursor  int
	Height  int
	Offset  int
	Status  string

	rec *diagram.Recorder
}

// NewExploreModel lists every node then every edge of d and hovers the first.
func NewExploreModel(d *diagram.Diagram, rec *diagram.Recorder) ExploreModel {
	m := ExploreModel{Diagram: d, Height: 15, rec: rec}
	m.refresh()
	if len(m.Refs) > 0 {
		m.act(d.HoverEnter)
	}
	return m
}

// refresh rebuilds the element list after structural changes.
func (m *ExploreModel) refresh() {
	m.Refs = m.Refs[:0]
	for _, n := range m.Diagram.Nodes() {
		m.Refs = append(m.Refs, n.Ref())
	}
	for _, e := range m.Diagram.AllEdges() {
		m.Refs = append(m.Refs, e.Ref())
	}
	if m.Cursor >= len(m.Refs) {
		m.Cursor = max(0, len(m.Refs)-1)
	}
}

func (m ExploreModel) current() (graph.ElementRef, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Refs) {
		return graph.ElementRef{}, false
	}
	return m.Refs[m.Cursor], true
}

// act applies fn to the element under the cursor and records the outcome.
func (m *ExploreModel) act(fn func(graph.ElementRef) ([]state.Change, error)) {
	ref, ok := m.current()
	if !ok {
		return
	}
	changes, err := fn(ref)
	if err != nil {
		m.Status = ferr.UserMessage(err)
		return
	}
	m.Status = describe(changes)
}

func (m *ExploreModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Refs) {
		return
	}
	m.act(m.Diagram.HoverLeave)
	m.Cursor = next
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	m.act(m.Diagram.HoverEnter)
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", " ":
			m.act(m.Diagram.Click)
		case "h":
			m.act(m.Diagram.ToggleHidden)
		case "d":
			m.Status = describe(m.Diagram.DeselectAll())
		case "c":
			on := !m.Diagram.Clustered()
			m.Diagram.EnableClustering(on)
			m.Status = fmt.Sprintf("clustering %s, %d clusters", onOff(on), len(m.Diagram.Clusters()))
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
	}
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Diagram.ID()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ hover  ⏎ click  h hide  d deselect  c cluster  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Refs))
	rows := [][]string{}
	states := []graph.State{}
	for i := m.Offset; i < end; i++ {
		ref := m.Refs[i]
		snap, err := m.Diagram.Snapshot(ref)
		if err != nil {
			continue
		}
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		colour := "—"
		if fill := snap.Fill; fill != "" && fill != "none" && ref.Kind == graph.KindNode {
			colour = swatch(fill) + " " + fill
		} else if snap.Gradient != "" {
			colour = snap.Gradient
		}
		rows = append(rows, []string{cursor, ref.String(), snap.Caption, snap.Type, string(snap.State), colour})
		states = append(states, snap.State)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Element", "Caption", "Type", "State", "Colour").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(states) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(stateColours[states[row]])
			}
			if m.Offset+row == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	pos := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Refs))
	b.WriteString(listDimStyle.Render(pos))
	if m.Status != "" {
		b.WriteString("  " + listSelectedStyle.Render(m.Status))
	}
	if m.rec != nil {
		b.WriteString(listDimStyle.Render("  notifications: " + strconv.Itoa(m.rec.Len())))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func describe(changes []state.Change) string {
	if len(changes) == 0 {
		return "no change"
	}
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s %s→%s", c.Ref, c.From, c.To))
	}
	return strings.Join(parts, ", ")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
