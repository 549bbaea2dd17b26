// Package main hosts the checkrun CLI entrypoint.
//
// The command takes no arguments, relocates to the directory containing its
// own executable, and runs the project's quality checks in fixed order:
// formatter verification, style check, lint. The first failing check stops
// the run and its exit code becomes the process exit code.
//
// Keep this package lean: step definitions and execution semantics live in
// internal/checks; this package only wires the command surface and the
// terminal rendering of step announcements.
package main
