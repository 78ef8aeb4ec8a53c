package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd builds the arrosage command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "arrosage",
		Short:         "Redis-backed controller for the watering system",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "", "override the configured log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	root.AddCommand(
		WriteSettingsCmd(),
		ReadSettingsCmd(),
		ModeCmd(),
		StatusCmd(),
		ResetCmd(),
		PauseCmd(),
		ResumeCmd(),
		SemiAutoCmd(),
		LoopCmd(),
		ServeCmd(),
	)

	return root
}
