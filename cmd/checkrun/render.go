package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"checkrun/internal/checks"
)

var stepLineColors = text.Colors{text.FgCyan, text.Bold}

func renderStepLine(step checks.Step, colorize bool) string {
	line := fmt.Sprintf("==> %s (%s)", step.DisplayLabel(), step.Binary)
	if colorize {
		return stepLineColors.Sprint(line)
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
