package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/progress"
)

var resumeCmd = &cobra.Command{
	Use:   "resume SUBJECT [LESSON]",
	Short: "Show where to continue studying",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, err := parseSubject(args[0])
		if err != nil {
			return err
		}

		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		var pos *progress.ResumePosition
		if len(args) == 2 {
			pos, err = s.tracker.FindLessonResumePosition(subject, args[1])
		} else {
			pos, err = s.tracker.FindResumePosition(subject)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if pos == nil {
			fmt.Fprintf(out, "%s: đã học hết, không còn gì để tiếp tục.\n", curriculum.SubjectDisplayName(subject))
			return nil
		}

		lesson, err := s.tracker.Catalog().Lesson(pos.Subject, pos.LessonID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s bài %s · %s\n", curriculum.SubjectDisplayName(pos.Subject), pos.LessonID, lesson.Groups[pos.GroupIndex].Name)
		fmt.Fprintf(out, "Tiếp tục với: %s\n", pos.Unit)
		fmt.Fprintf(out, "(%s)\n", resumeReasonText(pos.Reason))
		return nil
	},
}

func resumeReasonText(r progress.Reason) string {
	switch r {
	case progress.ReasonGroupCompleted:
		return "đã xong nhóm trước, chuyển sang nhóm mới"
	case progress.ReasonResumeSaved:
		return "tiếp tục từ chỗ đã dừng"
	default:
		return "chữ đầu tiên chưa học"
	}
}
