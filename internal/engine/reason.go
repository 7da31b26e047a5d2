package engine

import (
	"fmt"

	"github.com/rcliao/triage/internal/domain"
)

// Reason renders a short explanation from the dominant weighted
// contribution. Ties between equal contributions resolve by a fixed
// factor priority: urgency, then dependency, then importance, then
// effort. Tasks on a cycle always report the circularity instead.
func Reason(task domain.Task, b domain.Breakdown, w domain.Weights, dependents int, inCycle bool, now domain.Date) string {
	if inCycle {
		return "Circular dependency detected"
	}

	type factor struct {
		contribution float64
		phrase       string
	}
	factors := []factor{
		{float64(b.Urgency) * w.Urgency, urgencyPhrase(task.DueDate, now)},
		{float64(b.Dependency) * w.Dependency, dependencyPhrase(dependents)},
		{float64(b.Importance) * w.Importance, "High importance"},
		{float64(b.Effort) * w.Effort, "Quick win"},
	}

	best := factors[0]
	for _, f := range factors[1:] {
		if f.contribution > best.contribution {
			best = f
		}
	}
	return best.phrase
}

func urgencyPhrase(due *domain.Date, now domain.Date) string {
	if due == nil {
		return "No pressing deadline"
	}
	days := now.DaysUntil(*due)
	switch {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due in 1 day"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}

func dependencyPhrase(dependents int) string {
	if dependents == 1 {
		return "Blocks 1 task"
	}
	return fmt.Sprintf("Blocks %d tasks", dependents)
}
