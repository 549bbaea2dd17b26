package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"checkrun/internal/checks"
	"checkrun/internal/logging"
	"checkrun/internal/workdir"
)

// logLevel keeps lifecycle records out of a normal run; the user-visible
// output is the announcement lines plus the tools' own streams.
const logLevel = "error"

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checkrun",
		Short: "Run the project quality checks in order",
		Long: "checkrun relocates to the directory containing its executable and runs the\n" +
			"formatter verification, style check, and lint steps in fixed order,\n" +
			"stopping at the first failure and propagating its exit code.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workdir.Resolve()
			if err != nil {
				return err
			}
			if err := workdir.Enter(dir); err != nil {
				return err
			}
			return runSequence(cmd, checks.DefaultSteps())
		},
	}
}

func runSequence(cmd *cobra.Command, steps []checks.Step) error {
	logger, err := logging.New(logging.Options{
		Level:  logLevel,
		Format: "console",
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger = logging.NewComponentLogger(logger, "checkrun")

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	runner := checks.NewRunner(
		steps,
		checks.WithLogger(logger),
		checks.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
		checks.WithAnnounce(func(step checks.Step) {
			fmt.Fprintln(out, renderStepLine(step, colorize))
		}),
	)

	ctx := logging.WithRunID(cmd.Context(), logging.NewRunID())
	return runner.Run(ctx)
}
