package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprint(out, "Xoá toàn bộ tiến độ học tập? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Đã huỷ.")
				return nil
			}
		}

		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		s.tracker.ResetProgress(cmd.Context())
		fmt.Fprintln(out, "Đã xoá tiến độ học tập.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
