package tasklist

import (
	"fmt"
	"strconv"
	"strings"
)

// Rating is the examiner's judgement of a single task response, on a
// four-point ordinal scale. Only Rank is used in scoring.
type Rating int

const (
	Unset            Rating = -1
	Breakdown        Rating = 0 // Total Breakdown
	Partial          Rating = 1 // Partial Response
	MinimalSustained Rating = 2 // Minimal Sustained Response
	FullySustained   Rating = 3 // Fully Sustained Response
)

// Ratings returns the four ratings ordered worst to best.
func Ratings() []Rating {
	return []Rating{Breakdown, Partial, MinimalSustained, FullySustained}
}

// Rank returns the ordinal position of the rating (0-3), or -1 when unset.
func (r Rating) Rank() int {
	if !r.Valid() {
		return -1
	}
	return int(r)
}

// Valid reports whether r is one of the four ratings.
func (r Rating) Valid() bool {
	return r >= Breakdown && r <= FullySustained
}

// Label returns the display label for the rating.
func (r Rating) Label() string {
	switch r {
	case Breakdown:
		return "Total Breakdown"
	case Partial:
		return "Partial Response"
	case MinimalSustained:
		return "Minimal Sustained Response"
	case FullySustained:
		return "Fully Sustained Response"
	default:
		return "Not rated"
	}
}

// Icon returns the traffic-light marker shown next to the label.
func (r Rating) Icon() string {
	switch r {
	case Breakdown:
		return "🔴"
	case Partial:
		return "🟠"
	case MinimalSustained:
		return "🟡"
	case FullySustained:
		return "🟢"
	default:
		return "⚪"
	}
}

func (r Rating) String() string {
	return r.Icon() + " " + r.Label()
}

// ParseRating accepts a rank ("0".."3") or a label, case-insensitively,
// with or without the "Response" suffix.
func ParseRating(s string) (Rating, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		r := Rating(n)
		if !r.Valid() {
			return Unset, fmt.Errorf("rating rank %d out of range 0-3", n)
		}
		return r, nil
	}

	norm := strings.TrimSuffix(strings.ToLower(s), " response")
	for _, r := range Ratings() {
		label := strings.ToLower(strings.TrimSuffix(r.Label(), " Response"))
		if norm == label {
			return r, nil
		}
	}
	switch norm {
	case "breakdown":
		return Breakdown, nil
	case "minimal":
		return MinimalSustained, nil
	case "fully", "full":
		return FullySustained, nil
	}
	return Unset, fmt.Errorf("unknown rating %q", s)
}
