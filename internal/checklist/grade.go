package checklist

import "math"

// Grade is the letter grade with its label and follow-up description.
type Grade struct {
	Grade       string
	Level       string
	Description string
}

// GradeFor maps an overall percentage to the 4-tier grade. Boundaries are
// inclusive at the lower bound of each tier, checked from the top down.
func GradeFor(percentage float64) Grade {
	switch {
	case percentage >= 90:
		return Grade{"A", "Excellent", "Fully compliant with all standards"}
	case percentage >= 75:
		return Grade{"B", "Good", "Minor observations, no quality impact"}
	case percentage >= 60:
		return Grade{"C", "Fair", "Some non-conformance, requires follow-up"}
	default:
		return Grade{"D", "Poor", "Major non-conformance, requires correction and re-audit"}
	}
}

// Percentage computes 100*actual/max rounded to 2 decimal places, and 0 when
// max is 0 so an all-blank checklist does not divide by zero.
func Percentage(actual, max int) float64 {
	if max <= 0 {
		return 0
	}
	return math.Round(float64(actual)/float64(max)*100*100) / 100
}
