package cli

import (
	"github.com/spf13/cobra"

	"mcqbot/pkg/logx"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run on an embedded cron schedule, with config hot reload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, log, err := setup()
			if err != nil {
				return err
			}
			if err := a.Serve(cmd.Context(), configPath); err != nil {
				log.Error("serve failed", logx.Err(err))
				return err
			}
			return nil
		},
	}
}
