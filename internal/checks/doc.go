// Package checks defines the project quality checks and the sequential
// runner that executes them.
//
// The runner walks a fixed, ordered step list, hands each step's command to
// an executor, and stops at the first non-zero exit. Tool output passes
// through to the runner's own stdout and stderr untouched; the only output
// the runner adds is the per-step announcement hook and structured log
// records for operational visibility.
package checks
