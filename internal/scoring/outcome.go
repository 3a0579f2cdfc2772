package scoring

import "github.com/abhisek/sppa/internal/catalog"

// Outcome is the result of scoring a round: a final proficiency level,
// a promotion signal, or INVALID.
type Outcome string

const (
	Level0     Outcome = "0"
	Level0Plus Outcome = "0+"
	Level1     Outcome = "1"
	Level1Plus Outcome = "1+"
	Level2     Outcome = "2"
	Level2Plus Outcome = "2+"
	Level3     Outcome = "3"
	Invalid    Outcome = "INVALID"

	PromoteTo2 Outcome = "PROMOTE_2"
	PromoteTo3 Outcome = "PROMOTE_3"
)

// FinalOutcomes returns the outcomes an examiner may record as a final
// level, lowest first.
func FinalOutcomes() []Outcome {
	return []Outcome{Level0, Level0Plus, Level1, Level1Plus, Level2, Level2Plus, Level3}
}

// IsPromotion reports whether the outcome asks the session to continue at
// a higher level.
func (o Outcome) IsPromotion() bool {
	_, ok := o.PromotionLevel()
	return ok
}

// PromotionLevel returns the level a promotion outcome advances to.
func (o Outcome) PromotionLevel() (catalog.Level, bool) {
	switch o {
	case PromoteTo2:
		return catalog.Level2, true
	case PromoteTo3:
		return catalog.Level3, true
	default:
		return 0, false
	}
}

// IsTerminal reports whether the outcome ends the interview. INVALID is
// terminal for scoring but leaves the session open for the examiner.
func (o Outcome) IsTerminal() bool {
	return !o.IsPromotion()
}

// IsFinalLevel reports whether the outcome is a recordable proficiency
// level (not a promotion and not INVALID).
func (o Outcome) IsFinalLevel() bool {
	for _, f := range FinalOutcomes() {
		if o == f {
			return true
		}
	}
	return false
}

// ParseOutcome returns the final-level outcome matching s.
func ParseOutcome(s string) (Outcome, bool) {
	o := Outcome(s)
	return o, o.IsFinalLevel()
}

// Result pairs an outcome with the rationale shown to the examiner.
type Result struct {
	Outcome Outcome
	Reason  string
}
