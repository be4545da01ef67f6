package main

import (
	"github.com/sandevgo/aitalk/internal/service/demo"
	"github.com/spf13/cobra"
)

var statelessCmd = newDemoCmd(
	"stateless [1-1|1-2|1-3|all]",
	"Show that separate completion calls share no memory",
	(*App).StatelessSuite,
)

var memoryCmd = newDemoCmd(
	"memory [2-1|2-2|2-3|2-4|all]",
	"Retrieve stored facts and pass them as context",
	(*App).MemorySuite,
)

func init() {
	rootCmd.AddCommand(statelessCmd, memoryCmd)
}

// newDemoCmd runs one step of a suite. A missing step prints usage and fails;
// an unknown one prints usage and succeeds.
func newDemoCmd(use, short string, suite func(*App) *demo.Suite) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var flushLog func()
			ctx, flushLog = setupLogger(ctx)
			defer flushLog()

			app, err := NewApp(ctx, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			s := suite(app)

			if len(args) == 0 {
				app.printer.Usage(cmd.CommandPath(), s)
				return errMissingStep
			}
			if !s.Has(args[0]) {
				app.printer.Usage(cmd.CommandPath(), s)
				return nil
			}

			return s.Run(ctx, args[0])
		},
	}
}
