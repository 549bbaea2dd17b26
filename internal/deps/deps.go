// Package deps reports the availability of the external check tools. A
// missing binary never aborts the sequence; its own step fails when the
// runner reaches it.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external tool a check step relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status is the availability report for one requirement.
type Status struct {
	Requirement
	Available bool
	Detail    string
}

// Check resolves every requirement against PATH and reports availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, resolve(req))
	}
	return results
}

func resolve(req Requirement) Status {
	status := Status{Requirement: req}
	status.Command = strings.TrimSpace(req.Command)
	status.Description = strings.TrimSpace(req.Description)

	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	if _, err := exec.LookPath(status.Command); err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Available = true
	return status
}
