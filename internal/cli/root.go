package cli

import (
	"context"
	"io"

	"github.com/specialistvlad/stagegrid/internal/app"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel  string
	logFormat string
}

// commandContext carries what subcommands need to build an App.
type commandContext struct {
	outW  io.Writer
	errW  io.Writer
	flags *globalFlags
}

// newApp validates cfg merged with the global flags and creates the App.
func (c *commandContext) newApp(cfg app.Config) (*app.App, error) {
	cfg.LogLevel = c.flags.logLevel
	cfg.LogFormat = c.flags.logFormat
	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError("%v", err)
	}
	return app.NewApp(c.outW, c.errW, validated), nil
}

// NewRootCommand builds the command tree. Rendered output goes to outW, logs
// and errors to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	ctx := &commandContext{outW: outW, errW: errW, flags: &globalFlags{}}

	rootCmd := &cobra.Command{
		Use:           "stagegrid",
		Short:         "Build, render and serve staged flow diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetOut(outW)
	rootCmd.SetErr(errW)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	rootCmd.PersistentFlags().StringVar(&ctx.flags.logLevel, "log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'")
	rootCmd.PersistentFlags().StringVar(&ctx.flags.logFormat, "log-format", app.FormatText, "Log output format: 'text' or 'json'")

	rootCmd.AddCommand(newRenderCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newEditCommand(ctx))

	return rootCmd
}

// Execute runs the command tree with args. Usage problems come back as
// *ExitError with code 2.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	rootCmd := NewRootCommand(outW, errW)
	rootCmd.SetArgs(args)
	return asUsageError(rootCmd.ExecuteContext(ctx))
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("%s: accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}
