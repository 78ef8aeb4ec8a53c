package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arrosage/arrosage/engine/loop"
	"github.com/arrosage/arrosage/pkg/logger"
)

// LoopCmd runs the relay sequencing loop in the foreground until
// interrupted.
func LoopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loop",
		Short: "Run the relay sequencing loop until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(a.ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := loop.NewRunner(a.modes, a.statuses, a.seq)
			logger.FromContext(ctx).Info("starting sequencing loop")
			return runner.Run(ctx)
		},
	}
}
