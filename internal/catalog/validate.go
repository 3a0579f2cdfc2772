package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the catalog for structural problems: duplicate task
// names, level specs or stretch sets referencing undefined tasks, and stretch
// levels without stretch tasks.
func Validate() error {
	var errs []string

	seen := make(map[string]bool, len(definitions))
	for _, d := range definitions {
		if seen[d.Name] {
			errs = append(errs, fmt.Sprintf("duplicate task name: %q", d.Name))
		}
		seen[d.Name] = true
		if strings.TrimSpace(d.Instruction) == "" {
			errs = append(errs, fmt.Sprintf("task %q has no instruction", d.Name))
		}
	}

	for level, spec := range levelSpecs {
		if spec.Level != level {
			errs = append(errs, fmt.Sprintf("level spec keyed %d declares level %d", level, spec.Level))
		}
		if spec.StretchLevel <= level {
			errs = append(errs, fmt.Sprintf("level %d stretches to non-higher level %d", level, spec.StretchLevel))
		}
		if len(stretchTasks[spec.StretchLevel]) == 0 {
			errs = append(errs, fmt.Sprintf("level %d stretch level %d has no stretch tasks", level, spec.StretchLevel))
		}
		for _, name := range spec.BaseTasks {
			if !seen[name] {
				errs = append(errs, fmt.Sprintf("level %d references undefined base task %q", level, name))
			}
		}
	}

	for level, names := range stretchTasks {
		for _, name := range names {
			if !seen[name] {
				errs = append(errs, fmt.Sprintf("level %d references undefined stretch task %q", level, name))
			}
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
