package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/ui/components"
	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if s.lesson.ID == "" {
		return components.CabinetFrame(
			lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("Không mở được bài học: %v", s.err)),
			width, height)
	}

	var sections []string
	sections = append(sections, center.Foreground(theme.Primary).Bold(true).Render(s.lesson.Title))

	if s.lesson.Sequenced() {
		sections = append(sections, s.sequencedView(cw)...)
	} else {
		sections = append(sections, s.simpleView(cw)...)
	}

	if s.err != nil {
		sections = append(sections, center.Foreground(theme.Error).Render(s.err.Error()))
	} else if s.status != "" {
		sections = append(sections, center.Foreground(theme.Success).Render(s.status))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *LessonScreen) sequencedView(cw int) []string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	rec, _ := s.tracker.LessonProgress(s.lesson.Subject, s.lesson.ID)
	studied := map[string]bool{}
	if rec.Sequence != nil {
		for _, u := range rec.Sequence.CompletedUnits {
			studied[u] = true
		}
	}

	var out []string
	if s.banner != "" {
		out = append(out, center.Foreground(theme.ArcadeYellow).Render(s.banner))
	}

	bar := components.NewProgressBar("Tiến độ", rec.EffectiveProgress()/100, true, cw-4)
	out = append(out, center.Render(bar.View()))

	g := s.lesson.Groups[s.group]
	out = append(out, center.Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%s  (%d/%d)", g.Name, s.group+1, len(s.lesson.Groups))))

	chips := make([]string, len(g.Units))
	for i, u := range g.Units {
		chips[i] = components.UnitChip(u, studied[u], i == s.cursor)
	}
	out = append(out, center.Render(strings.Join(chips, " ")))

	done := 0
	for _, u := range g.Units {
		if studied[u] {
			done++
		}
	}
	out = append(out, center.Foreground(theme.TextDim).
		Render(fmt.Sprintf("Nhóm này: %d/%d · Cả bài: %d/%d", done, len(g.Units), len(studied), s.lesson.TotalUnits())))
	return out
}

func (s *LessonScreen) simpleView(cw int) []string {
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	var out []string

	if n := len(s.lesson.Cards); n > 0 {
		c := s.lesson.Cards[s.card]
		body := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(c.Name) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Render(c.Sound)
		out = append(out, components.Card(body, cw))
		out = append(out, center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("Thẻ %d/%d · đã xem %d", s.card+1, n, len(s.seen))))
	}

	if s.timer != nil {
		secs := s.timer.Elapsed()
		out = append(out, center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("⏱ %d:%02d · Nhấn Enter khi học xong", secs/60, secs%60)))
	} else if rec, err := s.tracker.LessonProgress(s.lesson.Subject, s.lesson.ID); err == nil && rec.Completed {
		out = append(out, center.Foreground(theme.Success).Render(fmt.Sprintf("✓ Đã hoàn thành · %d điểm", rec.Score)))
	}
	return out
}
