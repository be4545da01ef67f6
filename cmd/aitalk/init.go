package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/aitalk/internal/config"
	"github.com/sandevgo/aitalk/internal/service/installer"
	"github.com/sandevgo/aitalk/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively write provider settings to the runtime .env",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		envPath := filepath.Join(config.GetRuntimePath(), ".env")
		if _, err := installer.RunWizard(envPath); err != nil {
			return err
		}

		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Str("path", envPath).Msg("configuration written, try 'aitalk stateless all'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
