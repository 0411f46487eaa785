package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rainbowedu/rainbow/internal/curriculum"
)

var studyCmd = &cobra.Command{
	Use:   "study SUBJECT LESSON UNIT",
	Short: "Record a studied letter or number",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := parseSubject(args[0])
		if err != nil {
			return err
		}
		lessonID, unit := args[1], args[2]

		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		group, _ := cmd.Flags().GetInt("group")
		if !cmd.Flags().Changed("group") {
			lesson, err := s.tracker.Catalog().Lesson(subject, lessonID)
			if err != nil {
				return err
			}
			g, ok := lesson.GroupOf(unit)
			if !ok {
				return fmt.Errorf("unit %q is not part of %s lesson %s", unit, subject, lessonID)
			}
			group = g
		}

		seconds, _ := cmd.Flags().GetInt("time")
		sum, err := s.tracker.RecordUnitStudiedFor(cmd.Context(), subject, lessonID, unit, group, seconds)
		if err != nil {
			return err
		}
		rec := sum.Lessons[lessonID]

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Đã học %s (%s bài %s, nhóm %d)\n", unit, curriculum.SubjectDisplayName(subject), lessonID, group+1)
		fmt.Fprintf(out, "Tiến độ bài: %d%%  Môn: %d%%\n", rec.Score, sum.OverallProgress)
		if rec.Completed {
			fmt.Fprintln(out, "🎉 Hoàn thành bài học!")
		}
		return nil
	},
}

func init() {
	studyCmd.Flags().Int("group", 0, "Group index (0-based) the unit was studied in; inferred when omitted")
	studyCmd.Flags().Int("time", 0, "Seconds spent on the unit")
}

// parseSubject maps a CLI argument to a subject.
func parseSubject(arg string) (curriculum.Subject, error) {
	subject, ok := curriculum.ParseSubject(arg)
	if !ok {
		return "", fmt.Errorf("%w: %q (want vietnamese, math or animal)", curriculum.ErrUnknownSubject, arg)
	}
	return subject, nil
}
