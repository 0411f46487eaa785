package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/progress"
	"github.com/rainbowedu/rainbow/internal/ui/components"
	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

const statsBarWidth = 48

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		writeStats(cmd.OutOrStdout(), s.tracker)
		return nil
	},
}

func writeStats(w io.Writer, t *progress.Tracker) {
	overall := t.Overall()
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	fmt.Fprintln(w, title.Render("Tổng quan tiến độ học tập"))
	fmt.Fprintln(w, progress.MotivationalMessage(overall.OverallProgress))
	fmt.Fprintln(w)
	fmt.Fprintln(w, components.NewProgressBar("Tổng", percent(overall.OverallProgress), true, statsBarWidth).View())

	lastActive := "Chưa bắt đầu"
	if overall.LastActiveDate != nil {
		lastActive = overall.LastActiveDate.Local().Format("02/01/2006")
	}
	fmt.Fprintln(w, dim.Render(fmt.Sprintf("Bài đã xong: %d/%d   Chuỗi ngày: %d   Lần học cuối: %s",
		overall.TotalCompleted, overall.TotalLessons, t.Streak(), lastActive)))
	fmt.Fprintln(w, strings.Repeat("─", statsBarWidth+8))

	for _, sum := range t.AllSummaries() {
		name := curriculum.SubjectDisplayName(sum.Subject)
		fmt.Fprintln(w, components.NewProgressBar(fmt.Sprintf("%-10s", name), percent(sum.OverallProgress), true, statsBarWidth).View())

		next := "-"
		if sum.NextLesson != "" {
			next = "bài " + sum.NextLesson
		}
		fmt.Fprintln(w, dim.Render(fmt.Sprintf("  %d/%d bài · %d đang học · điểm TB %d · %s · tiếp theo: %s",
			sum.CompletedLessons, sum.TotalLessons, sum.InProgressLessons,
			sum.AverageScore, formatDuration(sum.TotalTimeSpent), next)))
	}

	if rec := t.RecommendedLesson(); rec != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Gợi ý: %s bài %s\n", curriculum.SubjectDisplayName(rec.Subject), rec.LessonID)
	}
}

// percent converts a 0..100 progress value to the bar's 0..1 scale.
func percent(p int) float64 {
	return float64(p) / 100
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm%02ds", seconds/60, seconds%60)
}
