package tasklist

import "github.com/abhisek/sppa/internal/catalog"

// Status tracks whether an administered task has been rated.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// AdministeredTask is one task presented to the learner. Level is the
// difficulty tier the task belongs to, which for stretch tasks is higher
// than the level being tested.
type AdministeredTask struct {
	Name   string
	Level  catalog.Level
	Rating Rating
	Status Status
}

func newPending(name string, level catalog.Level) AdministeredTask {
	return AdministeredTask{
		Name:   name,
		Level:  level,
		Rating: Unset,
		Status: StatusPending,
	}
}

// Done reports whether the task has been rated.
func (t AdministeredTask) Done() bool {
	return t.Status == StatusDone
}

// Instruction returns the catalog instruction for the task.
func (t AdministeredTask) Instruction() string {
	return catalog.InstructionFor(t.Name)
}

// AllDone reports whether every task in the slice has been rated.
// An empty slice is not considered done.
func AllDone(tasks []AdministeredTask) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Done() {
			return false
		}
	}
	return true
}

// AllBreakdown reports whether every task in a non-empty slice is rated
// Breakdown.
func AllBreakdown(tasks []AdministeredTask) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if t.Rating != Breakdown {
			return false
		}
	}
	return true
}

// CountDone returns the number of rated tasks.
func CountDone(tasks []AdministeredTask) int {
	n := 0
	for _, t := range tasks {
		if t.Done() {
			n++
		}
	}
	return n
}
