package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rainbowedu/rainbow/internal/app"
)

// runApp opens the progress store and launches the TUI. Logs go to the
// configured file only, since the terminal belongs to the UI.
func runApp(cmd *cobra.Command) error {
	s, err := openSession(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer s.Close()

	return app.Run(app.Options{Tracker: s.tracker})
}
