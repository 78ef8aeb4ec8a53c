package cli

import (
	"github.com/spf13/cobra"
)

// ResetCmd returns the system to its initial state.
func ResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Close all relays and clear the sequence status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cmds.Reset(a.ctx); err != nil {
				return err
			}
			printf(cmd, "System reset: relays closed, status cleared")
			return nil
		},
	}
}

// PauseCmd pauses the running system.
func PauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the system and close all relays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cmds.Pause(a.ctx); err != nil {
				return err
			}
			printf(cmd, "System paused")
			return nil
		},
	}
}

// ResumeCmd resumes a paused system.
func ResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused sequence where it left off",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cmds.Resume(a.ctx); err != nil {
				return err
			}
			printf(cmd, "System resumed")
			return nil
		},
	}
}

// SemiAutoCmd configures and starts a supervised short run.
func SemiAutoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "semi-auto",
		Short: "Switch to semi_auto mode and start a short supervised run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cmds.SemiAuto(a.ctx); err != nil {
				return err
			}
			printf(cmd, "Semi-auto run started: relay 0 open")
			return nil
		},
	}
}
