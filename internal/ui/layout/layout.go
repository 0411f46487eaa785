package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30

	// gaugeCells is the width of the header's progress gauge.
	gaugeCells = 7
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Status is what the header shows about the learner.
type Status struct {
	Title           string
	OverallProgress int
	Streak          int
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger window and says by how much.
func RenderMinSizeMessage(width, height int) string {
	var needs []string
	if width < MinWidth {
		needs = append(needs, fmt.Sprintf("rộng thêm %d cột", MinWidth-width))
	}
	if height < MinHeight {
		needs = append(needs, fmt.Sprintf("cao thêm %d dòng", MinHeight-height))
	}

	lines := []string{
		rainbowStripe(min(width, 14)),
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Cầu vồng chưa đủ chỗ!"),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render("Hãy kéo cửa sổ " + strings.Join(needs, " và ")),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("(%d x %d, cần %d x %d)", width, height, MinWidth, MinHeight)),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// RenderHeader renders the top bar: app name, screen title, a rainbow gauge
// of overall progress and the day streak when there is one.
func RenderHeader(s Status, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  🌈 Rainbow")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(s.Title)

	right := ProgressGauge(s.OverallProgress) +
		lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(" %d%%", s.OverallProgress))
	if s.Streak > 0 {
		right += lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("   🔥 %d ngày", s.Streak))
	}

	return bar(spread(left, center, right, max(width-4, 0)), width)
}

// ProgressGauge fills one rainbow band per step of overall progress.
func ProgressGauge(percent int) string {
	filled := min(max(percent, 0), 100) * gaugeCells / 100
	var b strings.Builder
	for i := range gaugeCells {
		if i < filled {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Rainbow[i%len(theme.Rainbow)]).Render("▰"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("▱"))
		}
	}
	return b.String()
}

// RenderFooter renders the footer with key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(h.Key)+" "+
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  ")
	return bar("  "+strings.Join(parts, sep), width)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}

// spread places center in the middle of inner columns with left and right
// pinned to the edges.
func spread(left, center, right string, inner int) string {
	leftLen, centerLen, rightLen := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-centerLen)/2-leftLen, 1)
	rightGap := max(inner-leftLen-leftGap-centerLen-rightLen, 1)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

func rainbowStripe(n int) string {
	var b strings.Builder
	for i := range n {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Rainbow[i*len(theme.Rainbow)/max(n, 1)]).Render("█"))
	}
	return b.String()
}
