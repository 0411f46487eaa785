package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for all framed sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// CabinetFrame wraps content in a double-border frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// UnitChip renders one letter or number of a lesson group.
func UnitChip(label string, studied, cursor bool) string {
	switch {
	case cursor:
		return theme.UnitCursor.Render(label)
	case studied:
		return theme.UnitStudied.Render(label)
	default:
		return theme.UnitPending.Render(label)
	}
}

// RainbowText colors each rune of s with the next band of the rainbow.
func RainbowText(s string) string {
	var b strings.Builder
	i := 0
	for _, r := range s {
		if r == ' ' || r == '\n' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Rainbow[i%len(theme.Rainbow)]).
			Bold(true).
			Render(string(r)))
		i++
	}
	return b.String()
}
