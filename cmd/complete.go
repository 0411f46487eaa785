package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rainbowedu/rainbow/internal/curriculum"
)

var completeCmd = &cobra.Command{
	Use:   "complete SUBJECT LESSON",
	Short: "Mark a lesson completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := parseSubject(args[0])
		if err != nil {
			return err
		}
		score, _ := cmd.Flags().GetInt("score")
		seconds, _ := cmd.Flags().GetInt("time")

		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		sum, overall, err := s.tracker.CompleteLesson(cmd.Context(), subject, args[1], score, seconds)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Hoàn thành %s bài %s với điểm %d\n",
			curriculum.SubjectDisplayName(subject), args[1], sum.Lessons[args[1]].Score)
		fmt.Fprintf(out, "Môn: %d/%d bài, %d%%  Tổng: %d%%\n",
			sum.CompletedLessons, sum.TotalLessons, sum.OverallProgress, overall.OverallProgress)
		return nil
	},
}

func init() {
	completeCmd.Flags().Int("score", 100, "Score 0-100")
	completeCmd.Flags().Int("time", 0, "Time spent in seconds")
}
