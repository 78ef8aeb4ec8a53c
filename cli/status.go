package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// StatusCmd prints the current sequence status.
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current sequence status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setupApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.statuses.Get(a.ctx)
			if err != nil {
				return err
			}
			if st == nil {
				printf(cmd, "Status is empty: no active sequence")
				return nil
			}
			printf(cmd, "Opened relay: %d", st.OpenedRelay)
			printf(cmd, "Opened at:    %s", time.Unix(st.OpenedAt, 0).Format(time.RFC3339))
			if st.ShouldCloseAt > 0 {
				printf(cmd, "Closes at:    %s", time.Unix(st.ShouldCloseAt, 0).Format(time.RFC3339))
			}
			return nil
		},
	}
}
