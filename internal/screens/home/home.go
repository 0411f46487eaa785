package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/progress"
	"github.com/rainbowedu/rainbow/internal/router"
	"github.com/rainbowedu/rainbow/internal/screen"
	"github.com/rainbowedu/rainbow/internal/screens/lesson"
	"github.com/rainbowedu/rainbow/internal/ui/components"
	"github.com/rainbowedu/rainbow/internal/ui/layout"
	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

const titleFull = `█▀█ ▄▀█ █ █▄ █ █▄▄ █▀█ █ █ █
█▀▄ █▀█ █ █ ▀█ █▄█ █▄█ ▀▄▀▄▀`

const titleCompact = "R A I N B O W"

// HomeScreen is the dashboard: overall progress, one bar per subject and the
// list of lessons to open.
type HomeScreen struct {
	tracker *progress.Tracker
	menu    components.Menu
	now     func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen reading from tracker.
func New(tracker *progress.Tracker) *HomeScreen {
	h := &HomeScreen{tracker: tracker, now: time.Now}
	h.menu = components.NewMenu(h.menuItems())
	if rec := tracker.RecommendedLesson(); rec != nil {
		h.selectLesson(rec.Subject, rec.LessonID)
	}
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Trang chủ"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Chọn bài"},
		{Key: "Enter", Description: "Học"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// Lessons may have changed while another screen was on top.
	h.menu.SetItems(h.menuItems())

	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	summaries := h.tracker.AllSummaries()
	overall := h.tracker.Overall()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center,
			RenderMascot(mascotFor(summaries, overall, h.now()))))
	}
	sections = append(sections, renderOverview(summaries, overall, cw))
	sections = append(sections, h.menu.View())

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

// menuItems lists every lesson in catalogue order followed by an exit item.
func (h *HomeScreen) menuItems() []components.MenuItem {
	var items []components.MenuItem
	for _, l := range h.tracker.Catalog().All() {
		rec, err := h.tracker.LessonProgress(l.Subject, l.ID)
		if err != nil {
			continue
		}
		subject, lessonID := l.Subject, l.ID
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s · Bài %s: %s", curriculum.SubjectDisplayName(l.Subject), l.ID, l.Title),
			Detail: lessonDetail(rec),
			Done:   rec.Completed,
			Action: func() tea.Cmd {
				s := lesson.New(h.tracker, subject, lessonID)
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Thoát",
		Action: func() tea.Cmd { return tea.Quit },
	})
	return items
}

func (h *HomeScreen) selectLesson(subject curriculum.Subject, lessonID string) {
	for i, l := range h.tracker.Catalog().All() {
		if l.Subject == subject && l.ID == lessonID {
			h.menu.Selected = i
			return
		}
	}
}

func lessonDetail(rec progress.LessonRecord) string {
	switch {
	case rec.Completed:
		return fmt.Sprintf("%d điểm", rec.Score)
	case rec.InProgress():
		return fmt.Sprintf("%.0f%%", rec.EffectiveProgress())
	default:
		return "mới"
	}
}

// mascotFor picks the mascot mood from the learner's progress.
func mascotFor(summaries []progress.SubjectSummary, overall progress.OverallRecord, now time.Time) MascotVariant {
	if overall.OverallProgress >= 100 {
		return MascotCelebrating
	}
	inProgress := false
	for _, sum := range summaries {
		for _, rec := range sum.Lessons {
			if rec.CompletedAt != nil && now.Sub(*rec.CompletedAt) < 24*time.Hour && !now.Before(*rec.CompletedAt) {
				return MascotCelebrating
			}
			if rec.InProgress() {
				inProgress = true
			}
		}
	}
	if inProgress {
		return MascotEager
	}
	return MascotIdle
}

func renderTitle(cw int, compact bool) string {
	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.RainbowText(text))
}

// renderOverview renders the motivational line, the overall bar and one bar
// per subject inside a card.
func renderOverview(summaries []progress.SubjectSummary, overall progress.OverallRecord, cw int) string {
	barWidth := cw - 4

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render(progress.MotivationalMessage(overall.OverallProgress)),
		"",
		components.NewProgressBar(fmt.Sprintf("%-10s", "Tổng"), float64(overall.OverallProgress)/100, true, barWidth).View(),
	}
	for i, sum := range summaries {
		bar := components.NewProgressBar(fmt.Sprintf("%-10s", curriculum.SubjectDisplayName(sum.Subject)),
			float64(sum.OverallProgress)/100, true, barWidth)
		bar.Fill = theme.SubjectColor(i)
		lines = append(lines, bar.View())
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Đã xong %d/%d bài", overall.TotalCompleted, overall.TotalLessons)))

	return components.Card(strings.Join(lines, "\n"), cw)
}
