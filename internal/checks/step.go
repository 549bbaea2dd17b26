package checks

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"checkrun/internal/deps"
)

// Step describes one external quality check.
type Step struct {
	// ID is the short stable identifier used in logs and step context.
	ID string
	// Label is the human-readable name announced before the step runs.
	// When empty it is derived from ID.
	Label string
	// Binary is the external command to invoke.
	Binary string
	// Args is the fixed argument list.
	Args []string
	// ArgsFunc, when set, computes the argument list at execution time
	// against the current working directory. It takes precedence over Args.
	ArgsFunc func() ([]string, error)
}

// DisplayLabel returns the announced label, deriving one from the ID when no
// explicit label was configured.
func (s Step) DisplayLabel() string {
	if label := strings.TrimSpace(s.Label); label != "" {
		return label
	}
	return deriveLabel(s.ID)
}

var labelCaser = cases.Title(language.English)

func deriveLabel(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(id))
	return labelCaser.String(strings.Join(words, " "))
}

// DefaultSteps returns the fixed check sequence: formatter verification over
// the whole tree, the style checker's default invocation, then the linter
// over the top-level source files.
func DefaultSteps() []Step {
	return []Step{
		{
			ID:     "format",
			Binary: "black",
			Args:   []string{"--check", "."},
		},
		{
			ID:     "style",
			Binary: "pycodestyle",
		},
		{
			ID:     "lint",
			Binary: "pylint",
			ArgsFunc: func() ([]string, error) {
				return TopLevelSources(".", "*.py")
			},
		},
	}
}

// Requirements maps steps to the external binary requirements they carry.
func Requirements(steps []Step) []deps.Requirement {
	reqs := make([]deps.Requirement, 0, len(steps))
	for _, step := range steps {
		reqs = append(reqs, deps.Requirement{
			Name:        step.DisplayLabel(),
			Command:     step.Binary,
			Description: "required by the " + step.ID + " check",
		})
	}
	return reqs
}
