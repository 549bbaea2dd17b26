package checks_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"checkrun/internal/checks"
	"checkrun/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeStub creates an executable shell script that records its invocation in
// journal before exiting with the given code.
func writeStub(t *testing.T, dir, name, journal string, exitCode int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := fmt.Sprintf("#!/bin/sh\necho %s >> %q\nexit %d\n", name, journal, exitCode)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func readJournal(t *testing.T, journal string) []string {
	t.Helper()
	data, err := os.ReadFile(journal)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read journal: %v", err)
	}
	return strings.Fields(string(data))
}

func stubSteps(t *testing.T, journal string, exitCodes [3]int) []checks.Step {
	t.Helper()
	dir := t.TempDir()
	return []checks.Step{
		{ID: "format", Binary: writeStub(t, dir, "formatter", journal, exitCodes[0])},
		{ID: "style", Binary: writeStub(t, dir, "styler", journal, exitCodes[1])},
		{ID: "lint", Binary: writeStub(t, dir, "linter", journal, exitCodes[2])},
	}
}

func TestRunAllStepsPass(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	steps := stubSteps(t, journal, [3]int{0, 0, 0})

	var announced []string
	runner := checks.NewRunner(steps, checks.WithAnnounce(func(step checks.Step) {
		announced = append(announced, step.ID)
	}))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantOrder := []string{"formatter", "styler", "linter"}
	if got := readJournal(t, journal); !equalStrings(got, wantOrder) {
		t.Fatalf("unexpected invocation order: %v", got)
	}
	if !equalStrings(announced, []string{"format", "style", "lint"}) {
		t.Fatalf("unexpected announcements: %v", announced)
	}
}

func TestRunFirstStepFailureStopsSequence(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	steps := stubSteps(t, journal, [3]int{3, 0, 0})

	runner := checks.NewRunner(steps)
	err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing step")
	}
	if !errors.Is(err, checks.ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
	if code := checks.ExitCode(err); code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
	if got := readJournal(t, journal); !equalStrings(got, []string{"formatter"}) {
		t.Fatalf("expected only the first step to run, got %v", got)
	}
}

func TestRunSecondStepFailureSkipsThird(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	steps := stubSteps(t, journal, [3]int{0, 5, 0})

	err := checks.NewRunner(steps).Run(context.Background())
	if code := checks.ExitCode(err); code != 5 {
		t.Fatalf("expected exit code 5, got %d (err=%v)", code, err)
	}
	if got := readJournal(t, journal); !equalStrings(got, []string{"formatter", "styler"}) {
		t.Fatalf("expected first two steps only, got %v", got)
	}

	var stepErr *checks.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if stepErr.Step.ID != "style" {
		t.Fatalf("expected style step to fail, got %s", stepErr.Step.ID)
	}
}

func TestRunThirdStepFailureAlone(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	steps := stubSteps(t, journal, [3]int{0, 0, 9})

	err := checks.NewRunner(steps).Run(context.Background())
	if code := checks.ExitCode(err); code != 9 {
		t.Fatalf("expected exit code 9, got %d (err=%v)", code, err)
	}
	if got := readJournal(t, journal); !equalStrings(got, []string{"formatter", "styler", "linter"}) {
		t.Fatalf("expected all three steps invoked, got %v", got)
	}
}

func TestRunIdempotentAcrossRuns(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	steps := stubSteps(t, journal, [3]int{0, 4, 0})

	first := checks.ExitCode(checks.NewRunner(steps).Run(context.Background()))
	second := checks.ExitCode(checks.NewRunner(steps).Run(context.Background()))
	if first != second {
		t.Fatalf("expected identical exit codes across runs, got %d then %d", first, second)
	}
}

func TestRunMissingBinaryFailsOwnStep(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	dir := t.TempDir()
	steps := []checks.Step{
		{ID: "format", Binary: writeStub(t, dir, "formatter", journal, 0)},
		{ID: "style", Binary: filepath.Join(dir, "no-such-tool")},
		{ID: "lint", Binary: writeStub(t, dir, "linter", journal, 0)},
	}

	err := checks.NewRunner(steps).Run(context.Background())
	if code := checks.ExitCode(err); code != 127 {
		t.Fatalf("expected exit code 127 for missing binary, got %d (err=%v)", code, err)
	}
	if got := readJournal(t, journal); !equalStrings(got, []string{"formatter"}) {
		t.Fatalf("expected the formatter to run before the missing tool, got %v", got)
	}
}

func TestRunArgsFuncSuppliesArguments(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	path := filepath.Join(dir, "linter")
	script := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" >> %q\nexit 0\n", argsFile)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	steps := []checks.Step{{
		ID:     "lint",
		Binary: path,
		ArgsFunc: func() ([]string, error) {
			return []string{"a.py", "b.py"}, nil
		},
	}}
	if err := checks.NewRunner(steps).Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	got := readJournal(t, argsFile)
	if !equalStrings(got, []string{"a.py", "b.py"}) {
		t.Fatalf("unexpected arguments: %v", got)
	}
}

func TestRunArgsFuncErrorAborts(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	dir := t.TempDir()
	steps := []checks.Step{{
		ID:     "lint",
		Binary: writeStub(t, dir, "linter", journal, 0),
		ArgsFunc: func() ([]string, error) {
			return nil, errors.New("boom")
		},
	}}

	err := checks.NewRunner(steps).Run(context.Background())
	if err == nil {
		t.Fatal("expected argument resolution error")
	}
	if code := checks.ExitCode(err); code != 1 {
		t.Fatalf("expected internal failure exit code 1, got %d", code)
	}
	if got := readJournal(t, journal); len(got) != 0 {
		t.Fatalf("expected no invocation after resolution failure, got %v", got)
	}
}

func TestRunCanceledContext(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal")
	steps := stubSteps(t, journal, [3]int{0, 0, 0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := checks.NewRunner(steps).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := readJournal(t, journal); len(got) != 0 {
		t.Fatalf("expected no steps after cancellation, got %v", got)
	}
}

func TestRunEmptyStepList(t *testing.T) {
	if err := checks.NewRunner(nil).Run(context.Background()); err == nil {
		t.Fatal("expected error for empty step list")
	}
}

func TestRunLogsLifecycle(t *testing.T) {
	var logBuf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &logBuf})
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}

	journal := filepath.Join(t.TempDir(), "journal")
	steps := stubSteps(t, journal, [3]int{0, 2, 0})

	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
	runErr := checks.NewRunner(steps, checks.WithLogger(logger)).Run(ctx)
	if checks.ExitCode(runErr) != 2 {
		t.Fatalf("expected exit code 2, got %v", runErr)
	}

	output := logBuf.String()
	for _, want := range []string{"tool availability", "check started", "check failed", "exit_code=2", "step=style", "run_id="} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected log output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "step=lint") {
		t.Fatalf("expected no lint step activity in logs, got:\n%s", output)
	}
}

func TestRunPassesToolOutputThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noisy")
	script := "#!/bin/sh\necho to-stdout\necho to-stderr >&2\nexit 0\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	var stdout, stderr bytes.Buffer
	steps := []checks.Step{{ID: "format", Binary: path}}
	runner := checks.NewRunner(steps, checks.WithOutput(&stdout, &stderr))
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := strings.TrimSpace(stdout.String()); got != "to-stdout" {
		t.Fatalf("unexpected stdout passthrough: %q", got)
	}
	if got := strings.TrimSpace(stderr.String()); got != "to-stderr" {
		t.Fatalf("unexpected stderr passthrough: %q", got)
	}
}

func equalStrings(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
