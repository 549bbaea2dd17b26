package checks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"checkrun/internal/deps"
	"checkrun/internal/logging"
)

// Runner executes a fixed step sequence with abort-on-first-failure
// semantics. Tool output flows straight to the configured writers.
type Runner struct {
	steps    []Step
	exec     Executor
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
	announce func(Step)
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(r *Runner) {
		if exec != nil {
			r.exec = exec
		}
	}
}

// WithLogger sets the structured logger used for run instrumentation.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput redirects the delegated tools' stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// WithAnnounce registers the hook fired once before each step starts.
func WithAnnounce(fn func(Step)) Option {
	return func(r *Runner) {
		r.announce = fn
	}
}

// NewRunner constructs a runner over the given steps.
func NewRunner(steps []Step, opts ...Option) *Runner {
	runner := &Runner{
		steps:  steps,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// Run executes the steps strictly in order. The first non-zero exit stops
// the sequence and surfaces as a *StepError carrying the delegated code;
// steps after it never start.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.steps) == 0 {
		return errors.New("no check steps configured")
	}

	runLogger := logging.WithContext(ctx, r.logger)
	for _, status := range deps.Check(Requirements(r.steps)) {
		runLogger.Debug(
			"tool availability",
			logging.String("tool", status.Command),
			logging.Bool("available", status.Available),
			logging.String("detail", status.Detail),
		)
	}

	for _, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.announce != nil {
			r.announce(step)
		}

		stepCtx := logging.WithStep(ctx, step.ID)
		stepLogger := logging.WithContext(stepCtx, r.logger)

		args := step.Args
		if step.ArgsFunc != nil {
			var err error
			args, err = step.ArgsFunc()
			if err != nil {
				return fmt.Errorf("resolve %s check arguments: %w", step.ID, err)
			}
		}

		stepLogger.Info(
			"check started",
			logging.String(logging.FieldEventType, "check_start"),
			logging.String("binary", step.Binary),
		)
		started := time.Now()

		code, execErr := r.exec.Run(stepCtx, step.Binary, args, r.stdout, r.stderr)
		if err := ctx.Err(); err != nil {
			return err
		}
		if code != 0 {
			attrs := []logging.Attr{
				logging.String(logging.FieldEventType, "check_failure"),
				logging.Int(logging.FieldExitCode, code),
				logging.Duration("elapsed", time.Since(started)),
			}
			if execErr != nil {
				attrs = append(attrs, logging.Error(execErr))
			}
			stepLogger.Warn("check failed", logging.Args(attrs...)...)
			return &StepError{Step: step, Code: code, Err: execErr}
		}

		stepLogger.Info(
			"check completed",
			logging.String(logging.FieldEventType, "check_complete"),
			logging.Duration("elapsed", time.Since(started)),
		)
	}

	runLogger.Info("all checks passed", logging.Int("steps", len(r.steps)))
	return nil
}
