package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/progress"
	"github.com/rainbowedu/rainbow/internal/router"
	"github.com/rainbowedu/rainbow/internal/screen"
	"github.com/rainbowedu/rainbow/internal/ui/components"
	"github.com/rainbowedu/rainbow/internal/ui/layout"
	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

// Result is what a finished lesson reports to the summary screen.
type Result struct {
	Subject  curriculum.Subject
	LessonID string
	Title    string
	Record   progress.LessonRecord
	Summary  progress.SubjectSummary
	Overall  progress.OverallRecord
	// Elapsed is the time measured for this attempt, in seconds.
	Elapsed int
}

// SummaryScreen congratulates the learner on a completed lesson.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Hoàn thành bài học"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Trang chủ"},
		{Key: "Esc", Description: "Quay lại bài"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		pop := func() tea.Msg { return router.PopScreenMsg{} }
		switch kmsg.String() {
		case "enter":
			// Pop both summary and lesson screens to get back to home.
			return s, tea.Sequence(pop, pop)
		case "esc":
			return s, pop
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Render(components.RainbowText("Chúc mừng!")))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(
		fmt.Sprintf("%s · Bài %s: %s", curriculum.SubjectDisplayName(r.Subject), r.LessonID, r.Title)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Điểm: %d", r.Record.Score)
	if r.Elapsed > 0 {
		stats += fmt.Sprintf("        Thời gian: %d:%02d", r.Elapsed/60, r.Elapsed%60)
	}
	b.WriteString(center.Foreground(theme.ArcadeYellow).Render(stats))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	subj := components.NewProgressBar(fmt.Sprintf("%-10s", curriculum.SubjectDisplayName(r.Subject)),
		float64(r.Summary.OverallProgress)/100, true, barWidth)
	total := components.NewProgressBar(fmt.Sprintf("%-10s", "Tổng"),
		float64(r.Overall.OverallProgress)/100, true, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, subj.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, total.View()))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%d/%d bài của môn · %d/%d bài tất cả",
			r.Summary.CompletedLessons, r.Summary.TotalLessons,
			r.Overall.TotalCompleted, r.Overall.TotalLessons)))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Render(progress.MotivationalMessage(r.Overall.OverallProgress)))

	return b.String()
}
