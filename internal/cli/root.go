// Package cli defines the command-line surface: a one-shot send (the
// default deployment, triggered by an external scheduler) and a serve
// mode with an embedded cron schedule.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mcqbot/internal/app"
	"mcqbot/internal/config"
	"mcqbot/pkg/logx"
)

var (
	configPath string
	envFile    string
)

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("MCQBOT_CONFIG")

	cmd := &cobra.Command{
		Use:           "mcqbot",
		Short:         "Fetches one MCQ question and publishes it to a Telegram channel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to optional YAML config")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to .env file with the required secrets")
	cmd.AddCommand(newSendCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

// setup loads the environment, config, logger, and wired app, shared by
// both subcommands.
func setup() (*app.App, logx.Logger, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, logx.Logger{}, err
		}
	} else {
		// A local .env is a development convenience; its absence is fine.
		_ = godotenv.Load()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, logx.Logger{}, err
	}

	log, err := logx.New(cfg.Logging)
	if err != nil {
		return nil, logx.Logger{}, err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return nil, logx.Logger{}, err
	}
	return a, log, nil
}
