package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write progress as JSON to FILE or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		if len(args) == 0 {
			return s.tracker.Export(cmd.OutOrStdout())
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		if err := s.tracker.Export(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace progress with a previously exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.tracker.Import(cmd.Context(), f); err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		overall := s.tracker.Overall()
		fmt.Fprintf(cmd.OutOrStdout(), "Đã nhập tiến độ: %d/%d bài hoàn thành.\n", overall.TotalCompleted, overall.TotalLessons)
		return nil
	},
}
