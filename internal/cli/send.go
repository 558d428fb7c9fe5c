package cli

import (
	"github.com/spf13/cobra"

	"mcqbot/pkg/logx"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Fetch one question and publish it now (no-op outside the posting window)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, log, err := setup()
			if err != nil {
				return err
			}
			if err := a.RunOnce(cmd.Context()); err != nil {
				log.Error("run failed", logx.Err(err))
				return err
			}
			return nil
		},
	}
}
