package catalog

import "fmt"

// Level is a proficiency tier tested by the interview.
type Level int

const (
	Level1 Level = 1 // Intermediate-Low/High
	Level2 Level = 2 // Advanced-Low/High
	Level3 Level = 3 // Superior functions, stretch-only
)

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{Level1, Level2, Level3}
}

// Valid reports whether l is one of the catalog levels.
func (l Level) Valid() bool {
	return l >= Level1 && l <= Level3
}

// Selectable reports whether l may be chosen as the initial working level
// after the warm-up survey.
func (l Level) Selectable() bool {
	return l == Level1 || l == Level2
}

func (l Level) String() string {
	return fmt.Sprintf("Level %d", int(l))
}

// DisplayName returns the label shown on the level selection buttons.
func (l Level) DisplayName() string {
	switch l {
	case Level1:
		return "Level 1 (Intermediate-Low/High)"
	case Level2:
		return "Level 2 (Advanced-Low/High)"
	case Level3:
		return "Level 3 (Superior)"
	default:
		return l.String()
	}
}

// TaskDefinition is a speaking task the examiner can administer.
// Instruction is display-only and never influences scoring.
type TaskDefinition struct {
	Name        string
	Instruction string
}

// LevelSpec describes the base tasks administered at a level and the
// level whose tasks are used as stretch tasks.
type LevelSpec struct {
	Level        Level
	BaseTasks    []string
	StretchLevel Level
}
