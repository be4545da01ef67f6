package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sandevgo/aitalk/internal/config"
	"github.com/sandevgo/aitalk/pkg/env"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the effective configuration with secrets masked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg, err := config.NewAppConfig()
		if err != nil {
			return err
		}
		embCfg, err := config.NewEmbeddingConfig()
		if err != nil {
			return err
		}

		var lines []string
		for _, c := range []any{appCfg, embCfg} {
			out, err := env.MarshalEnv(c, env.MaskSecrets())
			if err != nil {
				return err
			}
			lines = append(lines, strings.Split(strings.TrimSpace(out), "\n")...)
		}

		// both configs read the shared provider variables
		lines = lo.Uniq(lo.Compact(lines))
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
