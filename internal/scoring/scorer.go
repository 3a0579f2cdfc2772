// Package scoring maps the rating history of an interview to a
// proficiency level, a promotion to the next level, or INVALID.
package scoring

import (
	"errors"
	"fmt"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/tasklist"
)

// ErrInvalidLevel is returned when scoring is requested for a level with
// no decision table.
var ErrInvalidLevel = errors.New("invalid scoring level")

// Score evaluates the level's decision table over the full task history.
// The first matching rule wins; when none matches the result is INVALID.
func Score(level catalog.Level, tasks []tasklist.AdministeredTask) (Result, error) {
	rules, ok := rulesByLevel[level]
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	result, _ := evaluate(rules, NewTally(level, tasks))
	return result, nil
}

// Explain is Score plus the name of the rule that matched ("" for
// INVALID).
func Explain(level catalog.Level, tasks []tasklist.AdministeredTask) (Result, string, error) {
	rules, ok := rulesByLevel[level]
	if !ok {
		return Result{}, "", fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	result, rule := evaluate(rules, NewTally(level, tasks))
	return result, rule, nil
}

func evaluate(rules []Rule, t Tally) (Result, string) {
	for _, r := range rules {
		if r.When(t) {
			return Result{Outcome: r.Outcome, Reason: r.Reason}, r.Name
		}
	}
	return Result{Outcome: Invalid, Reason: InvalidReason}, ""
}
