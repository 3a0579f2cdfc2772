// Package catalog is the static registry of interview tasks: their
// instructions, the base tasks per level and the stretch tasks drawn from
// the next level up.
package catalog

import "slices"

var byName map[string]TaskDefinition

func init() {
	byName = make(map[string]TaskDefinition, len(definitions))
	for _, d := range definitions {
		byName[d.Name] = d
	}
}

// InstructionFor returns the examiner instruction for a task, or "" if the
// task has none.
func InstructionFor(name string) string {
	return byName[name].Instruction
}

// Definition returns the task definition for name.
func Definition(name string) (TaskDefinition, bool) {
	d, ok := byName[name]
	return d, ok
}

// Tasks returns every task definition in catalog order.
func Tasks() []TaskDefinition {
	return slices.Clone(definitions)
}

// LevelSpecFor returns the base/stretch split for a level. Level 3 has no
// base tasks and reports false.
func LevelSpecFor(level Level) (LevelSpec, bool) {
	spec, ok := levelSpecs[level]
	if !ok {
		return LevelSpec{}, false
	}
	spec.BaseTasks = slices.Clone(spec.BaseTasks)
	return spec, true
}

// StretchTasks returns the tasks of the given level that are administered
// as stretch tasks to the level below, in catalog order.
func StretchTasks(level Level) []string {
	return slices.Clone(stretchTasks[level])
}
