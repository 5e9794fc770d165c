package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wallcheck/pkg/report"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// UnsafeListModel - Interactive browser for unsafe entities
// =============================================================================

// UnsafeListModel is the bubbletea model for browsing the unsafe entities
// of a report. The window scrolls to keep the cursor visible.
type UnsafeListModel struct {
	Report *report.Report
	Map    string
	Cursor int
	Height int
	Offset int
}

// NewUnsafeListModel creates a browser for rep. gridMap is the ASCII map of
// the layout and may be empty.
func NewUnsafeListModel(rep *report.Report, gridMap string) UnsafeListModel {
	return UnsafeListModel{
		Report: rep,
		Map:    gridMap,
		Height: 15,
	}
}

func (m UnsafeListModel) Init() tea.Cmd {
	return nil
}

func (m UnsafeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Report.Unsafe)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m UnsafeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Unsafe Entities"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	refs := m.Report.Unsafe
	if len(refs) == 0 {
		b.WriteString(StyleSuccess.Render(safeMessage))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(refs))
	b.WriteString(unsafeTable(refs[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(refs))))
	b.WriteString("\n")

	if m.Map != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(strings.TrimRight(m.Map, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the entity under the cursor, or nil for a safe report.
func (m UnsafeListModel) Selected() *report.EntityRef {
	if m.Cursor >= len(m.Report.Unsafe) {
		return nil
	}
	return &m.Report.Unsafe[m.Cursor]
}

// browseUnsafe runs the interactive browser until the user quits.
func browseUnsafe(rep *report.Report, gridMap string) error {
	_, err := tea.NewProgram(NewUnsafeListModel(rep, gridMap), tea.WithAltScreen()).Run()
	return err
}
