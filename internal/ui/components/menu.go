package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label string
	// Detail is rendered dimmed after the label, e.g. a lesson's progress.
	Detail   string
	Done     bool
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// SetItems replaces the items and keeps the selection in range.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items = items
	if m.Selected >= len(items) {
		m.Selected = max(len(items)-1, 0)
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	selected := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	normal := lipgloss.NewStyle().Foreground(theme.Text)
	disabled := lipgloss.NewStyle().Foreground(theme.TextDim)
	detail := lipgloss.NewStyle().Foreground(theme.TextDim)
	done := lipgloss.NewStyle().Foreground(theme.Success)

	var b strings.Builder
	for i, item := range m.Items {
		mark := "  "
		if item.Done {
			mark = done.Render("✓ ")
		}
		switch {
		case item.Disabled:
			b.WriteString("    " + mark + disabled.Render(item.Label))
		case i == m.Selected:
			b.WriteString(selected.Render("  ▸ ") + mark + selected.Render(item.Label))
		default:
			b.WriteString("    " + mark + normal.Render(item.Label))
		}
		if item.Detail != "" {
			b.WriteString("  " + detail.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
