package scoring

import (
	"slices"

	"github.com/abhisek/sppa/internal/catalog"
)

// Rule is one row of a level's decision table.
type Rule struct {
	Name    string
	When    func(Tally) bool
	Outcome Outcome
	Reason  string
}

// InvalidReason is shown when no rule matches.
const InvalidReason = "Invalid Test. The combination of ratings did not produce a valid score. Please retest the student with tasks appropriate for the current and upper levels."

var levelOneRules = []Rule{
	{
		Name:    "strong-base-stretch-breakdown",
		When:    func(t Tally) bool { return t.StrongBase() && t.AllStretchBreakdown },
		Outcome: Level1,
		Reason:  "Strong base performance but breakdown on all stretch tasks.",
	},
	{
		Name:    "partial-base-stretch-breakdown",
		When:    func(t Tally) bool { return t.AllStretchBreakdown && t.BasePartialOrBetter >= 3 },
		Outcome: Level0Plus,
		Reason:  "Sustained partial performance at base with no performance on stretch tasks.",
	},
	{
		Name:    "stretch-breakdown",
		When:    func(t Tally) bool { return t.AllStretchBreakdown },
		Outcome: Level0,
		Reason:  "Breakdown at base and on stretch tasks.",
	},
	{
		Name:    "promote",
		When:    func(t Tally) bool { return t.StrongBase() && t.StretchMinimalOrBetter >= 2 },
		Outcome: PromoteTo2,
		Reason:  "Performance indicates learner may be at Level 2.",
	},
	{
		Name:    "strong-base-partial-stretch",
		When:    func(t Tally) bool { return t.StrongBase() && t.StretchPartial >= 1 },
		Outcome: Level1Plus,
		Reason:  "Strong base with partial success on stretch tasks.",
	},
	{
		Name:    "minimal-base",
		When:    func(t Tally) bool { return t.MinimalBase() },
		Outcome: Level1,
		Reason:  "Minimal sustained performance at base.",
	},
}

// Level 2 has no floor branches; a combination that matches none of
// these rows is INVALID.
var levelTwoRules = []Rule{
	{
		Name:    "promote",
		When:    func(t Tally) bool { return t.StrongBase() && t.StretchMinimalOrBetter >= 2 },
		Outcome: PromoteTo3,
		Reason:  "Performance indicates learner may be at Level 3.",
	},
	{
		Name:    "strong-base-partial-stretch",
		When:    func(t Tally) bool { return t.StrongBase() && t.StretchPartial >= 1 },
		Outcome: Level2Plus,
		Reason:  "Strong base with partial success on stretch tasks.",
	},
	{
		Name:    "minimal-base",
		When:    func(t Tally) bool { return t.MinimalBase() },
		Outcome: Level2,
		Reason:  "Minimal sustained performance at base.",
	},
}

var levelThreeRules = []Rule{
	{
		Name:    "sustained-level-three",
		When:    func(t Tally) bool { return t.LevelThreeMinimalOrBetter >= 2 },
		Outcome: Level3,
		Reason:  "Sustained performance at Level 3.",
	},
	{
		Name:    "not-sustained",
		When:    func(Tally) bool { return true },
		Outcome: Level2Plus,
		Reason:  "Could not sustain performance at Level 3.",
	},
}

var rulesByLevel = map[catalog.Level][]Rule{
	catalog.Level1: levelOneRules,
	catalog.Level2: levelTwoRules,
	catalog.Level3: levelThreeRules,
}

// Rules returns the decision table for a level in evaluation order.
func Rules(level catalog.Level) []Rule {
	return slices.Clone(rulesByLevel[level])
}
