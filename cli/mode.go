package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arrosage/arrosage/engine/infra/store"
	"github.com/arrosage/arrosage/engine/mode"
)

// ModeCmd groups the mode subcommands.
func ModeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Get or set the operating mode",
	}
	cmd.AddCommand(modeGetCmd(), modeSetCmd())
	return cmd
}

func modeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current operating mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := a.modes.Get(a.ctx)
			if store.IsNotFound(err) {
				printf(cmd, "No mode set")
				return nil
			}
			if err != nil {
				return err
			}
			printf(cmd, "Current mode: %s", current)
			return nil
		},
	}
}

func modeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <mode>",
		Short: "Set the operating mode (manual|auto|semi_auto|pause)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next := mode.Mode(args[0])
			if !next.Valid() {
				return fmt.Errorf("invalid mode %q, valid modes: %v", args[0], mode.ValidModes())
			}
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.modes.Set(a.ctx, next); err != nil {
				return err
			}
			printf(cmd, "Mode set to: %s", next)
			return nil
		},
	}
}
