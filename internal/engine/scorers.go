package engine

import (
	"math"

	"github.com/rcliao/triage/internal/domain"
)

// UrgencyParams are the tunable constants of the urgency curve. They
// are policy, not law: strategies or deployments may override them, so
// they live on the engine rather than as package constants.
type UrgencyParams struct {
	// NoDueDate is the fixed urgency for tasks without a deadline.
	NoDueDate int
	// StepPerDay is how many points urgency drops per day of lead time.
	StepPerDay int
	// Floor is the minimum urgency while any deadline exists.
	Floor int
}

// DefaultUrgencyParams: no deadline scores a neutral-low 30, urgency
// decays 5 points per day of lead time and never drops below 10.
func DefaultUrgencyParams() UrgencyParams {
	return UrgencyParams{NoDueDate: 30, StepPerDay: 5, Floor: 10}
}

// Score maps a due date to 0-100 urgency relative to the reference
// date. Overdue and due-today tasks score the maximum; future deadlines
// decay linearly but are floored so any deadline outranks none.
func (p UrgencyParams) Score(due *domain.Date, now domain.Date) int {
	if due == nil {
		return p.NoDueDate
	}
	days := now.DaysUntil(*due)
	if days <= 0 {
		return 100
	}
	drop := days * p.StepPerDay
	if drop > 90 {
		drop = 90
	}
	score := 100 - drop
	if score < p.Floor {
		score = p.Floor
	}
	return score
}

// ImportanceScore linearly normalizes the 1-10 rating to 0-100.
func ImportanceScore(importance int) int {
	return clampScore(importance * 10)
}

// EffortScore rewards short tasks: round(100 / (1 + hours)). Hours are
// clamped to a small positive minimum so a zero-hour task approaches,
// but never exceeds, 100.
func EffortScore(hours float64) int {
	if hours < 0.1 {
		hours = 0.1
	}
	return clampScore(int(math.Round(100 / (1 + hours))))
}

// DependencyScore rewards unblocking: each direct dependent is worth 25
// points, saturating at four dependents. Tasks on a cycle score 0; their
// blocking relationships are not well-defined.
func DependencyScore(dependents int, inCycle bool) int {
	if inCycle {
		return 0
	}
	return clampScore(dependents * 25)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
