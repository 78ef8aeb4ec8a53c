package cli

import (
	"github.com/spf13/cobra"

	"github.com/arrosage/arrosage/engine/server"
)

// ServeCmd starts the HTTP API.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.New(&a.cfg.Server, a.modes, a.statuses, a.cmds)
			return srv.Run(a.ctx)
		},
	}
}
