// Package tasklist builds the ordered list of tasks administered in a
// round and defines the ratings the examiner assigns to them.
package tasklist

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/sppa/internal/catalog"
)

// ErrInvalidLevel is returned when a task list is requested for a level
// the catalog does not define. Callers must only request levels 1-3.
var ErrInvalidLevel = errors.New("invalid task level")

// levelOneSequence is the hand-curated level 1 ordering. It is kept
// literal so every examiner administers the same sequence; it is not the
// output of the generic interleave.
var levelOneSequence = []struct {
	name  string
	level catalog.Level
}{
	{catalog.TaskSimpleWHQuestions, catalog.Level1},
	{catalog.TaskNarrationPast, catalog.Level2},
	{catalog.TaskSimpleWHQuestions, catalog.Level1},
	{catalog.TaskDetailedDescription, catalog.Level2},
	{catalog.TaskSimpleWHQuestions, catalog.Level1},
	{catalog.TaskInstructions, catalog.Level2},
	{catalog.TaskRolePlaySimple, catalog.Level1},
	{catalog.TaskReportingEvents, catalog.Level2},
	{catalog.TaskAskingBasicQuestions, catalog.Level1},
}

// closerTask returns the name of the task held back and administered last
// by the generic interleave. "Future Narration" is not in the level 2
// catalog, so no closer is extracted at level 2.
func closerTask(level catalog.Level) string {
	if level == catalog.Level1 {
		return catalog.TaskAskingBasicQuestions
	}
	return "Future Narration"
}

// Generate returns the pending tasks for a round at the given level.
// The result is a fresh slice on every call.
func Generate(level catalog.Level) ([]AdministeredTask, error) {
	switch level {
	case catalog.Level1:
		tasks := make([]AdministeredTask, 0, len(levelOneSequence))
		for _, item := range levelOneSequence {
			tasks = append(tasks, newPending(item.name, item.level))
		}
		return tasks, nil

	case catalog.Level3:
		stretch := catalog.StretchTasks(catalog.Level3)
		tasks := make([]AdministeredTask, 0, len(stretch))
		for _, name := range stretch {
			tasks = append(tasks, newPending(name, catalog.Level3))
		}
		return tasks, nil
	}

	spec, ok := catalog.LevelSpecFor(level)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	return interleave(spec, catalog.StretchTasks(spec.StretchLevel)), nil
}

// interleave alternates base and stretch tasks, draining whichever list is
// longer once the other runs out, and appends the level's closer task
// (when present in the base list) at the end.
func interleave(spec catalog.LevelSpec, stretch []string) []AdministeredTask {
	base := slices.Clone(spec.BaseTasks)
	stretch = slices.Clone(stretch)

	closer := closerTask(spec.Level)
	hasCloser := false
	if i := slices.Index(base, closer); i >= 0 {
		base = slices.Delete(base, i, i+1)
		hasCloser = true
	}

	tasks := make([]AdministeredTask, 0, len(base)+len(stretch)+1)
	for len(base) > 0 || len(stretch) > 0 {
		if len(base) > 0 {
			tasks = append(tasks, newPending(base[0], spec.Level))
			base = base[1:]
		}
		if len(stretch) > 0 {
			tasks = append(tasks, newPending(stretch[0], spec.StretchLevel))
			stretch = stretch[1:]
		}
	}

	if hasCloser {
		tasks = append(tasks, newPending(closer, spec.Level))
	}
	return tasks
}
