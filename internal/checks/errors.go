package checks

import (
	"errors"
	"fmt"
)

// ErrCheckFailed tags every delegated check failure.
var ErrCheckFailed = errors.New("check failed")

// StepError reports the first failing step and the exit code its tool
// returned. The sequence never continues past the step it describes.
type StepError struct {
	Step Step
	Code int
	Err  error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s check failed: %v", e.Step.ID, e.Err)
	}
	return fmt.Sprintf("%s check failed with exit code %d", e.Step.ID, e.Code)
}

func (e *StepError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrCheckFailed, e.Err}
	}
	return []error{ErrCheckFailed}
}

// ExitCode maps a runner error to the process exit status: nil is success,
// a step failure propagates the delegated tool's code, anything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) && stepErr.Code != 0 {
		return stepErr.Code
	}
	return 1
}
