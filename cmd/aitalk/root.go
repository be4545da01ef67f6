package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/aitalk/internal/config"
	"github.com/sandevgo/aitalk/internal/core"
	"github.com/sandevgo/aitalk/internal/service/ui"
	"github.com/sandevgo/aitalk/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

// errMissingStep is reported after usage has been printed.
var errMissingStep = errors.New("missing demo step")

var rootCmd = &cobra.Command{
	Use:           core.AppName,
	Short:         "aitalk: LLM memory demos",
	Long:          `aitalk shows that chat completion APIs are stateless and how retrieved context stands in for memory.`,
	Version:       core.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errMissingStep) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), ui.FlagStyle.Render("error:"), err)
		}
		return 1
	}
	return 0
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
	CustomizeHelp(rootCmd)
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
