package scoring

import (
	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/tasklist"
)

const (
	strongBaseThreshold  = 5 // base tasks rated Fully Sustained
	minimalBaseThreshold = 4 // base tasks rated Minimal Sustained or better
)

// Tally holds the rating counts the decision rules are written against.
// Base tasks are tasks at the level under test; stretch tasks are tasks from
// any higher level.
type Tally struct {
	Level catalog.Level

	BaseCount                 int
	BaseFully                 int
	BaseMinimalOrBetter       int
	BasePartialOrBetter       int
	StretchCount              int
	StretchMinimalOrBetter    int
	StretchPartial            int
	AllStretchBreakdown       bool
	LevelThreeMinimalOrBetter int
}

// NewTally counts ratings over the full task history for the given level.
func NewTally(level catalog.Level, tasks []tasklist.AdministeredTask) Tally {
	t := Tally{Level: level}
	stretchBreakdown := 0

	for _, task := range tasks {
		rank := task.Rating.Rank()

		if task.Level == catalog.Level3 && rank >= 2 {
			t.LevelThreeMinimalOrBetter++
		}

		switch {
		case task.Level == level:
			t.BaseCount++
			if rank == 3 {
				t.BaseFully++
			}
			if rank >= 2 {
				t.BaseMinimalOrBetter++
			}
			if rank >= 1 {
				t.BasePartialOrBetter++
			}
		case task.Level > level:
			t.StretchCount++
			if rank >= 2 {
				t.StretchMinimalOrBetter++
			}
			if rank == 1 {
				t.StretchPartial++
			}
			if rank == 0 {
				stretchBreakdown++
			}
		}
	}

	t.AllStretchBreakdown = t.StretchCount > 0 && stretchBreakdown == t.StretchCount
	return t
}

// StrongBase reports at least five Fully Sustained base tasks.
func (t Tally) StrongBase() bool {
	return t.BaseFully >= strongBaseThreshold
}

// MinimalBase reports at least four base tasks at Minimal Sustained or
// better.
func (t Tally) MinimalBase() bool {
	return t.BaseMinimalOrBetter >= minimalBaseThreshold
}
