package engine

import (
	"sort"

	"github.com/rcliao/triage/internal/domain"
)

// Rank sorts scored tasks by score descending. Ties resolve by earlier
// due date (no due date sorts after any date), then ascending id, so
// the ordering is fully deterministic.
func Rank(tasks []domain.ScoredTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate != nil && *a.DueDate != *b.DueDate:
			return a.DueDate.Before(*b.DueDate)
		}
		return a.ID < b.ID
	})
}

// TopSuggestions takes the first n tasks from an already ranked list
// and renders them as suggestions.
func TopSuggestions(ranked []domain.ScoredTask, n int) []domain.Suggestion {
	if n > len(ranked) {
		n = len(ranked)
	}
	suggestions := make([]domain.Suggestion, 0, n)
	for _, t := range ranked[:n] {
		suggestions = append(suggestions, domain.Suggestion{
			Title: t.Title,
			Score: t.Score,
			Why:   t.Reason,
		})
	}
	return suggestions
}
