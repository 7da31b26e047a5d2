package engine

import (
	"fmt"
	"sort"

	"github.com/rcliao/triage/internal/domain"
)

// Normalization defaults for absent or unusable numeric fields. Bad
// numbers are recovered locally; they never fail the batch.
const (
	defaultEstimatedHours = 1.0
	defaultImportance     = 5

	minImportance = 1
	maxImportance = 10
)

// ValidateBatch turns raw submissions into normalized task records or
// rejects the whole batch. Records without an id are assigned fresh ids
// above the highest explicit one, so generated ids never collide.
func ValidateBatch(inputs []domain.TaskInput) ([]domain.Task, error) {
	seen := make(map[int]bool, len(inputs))
	nextID := 1
	for _, in := range inputs {
		if in.ID == nil {
			continue
		}
		if seen[*in.ID] {
			return nil, &domain.DuplicateIDError{ID: *in.ID}
		}
		seen[*in.ID] = true
		if *in.ID >= nextID {
			nextID = *in.ID + 1
		}
	}

	tasks := make([]domain.Task, 0, len(inputs))
	for i, in := range inputs {
		task := domain.Task{
			Title:          in.Title,
			DueDate:        in.DueDate,
			EstimatedHours: defaultEstimatedHours,
			Importance:     defaultImportance,
		}
		if task.Title == "" {
			return nil, fmt.Errorf("%w: task at position %d has no title", domain.ErrValidation, i)
		}
		if in.ID != nil {
			task.ID = *in.ID
		} else {
			task.ID = nextID
			nextID++
		}
		if in.EstimatedHours != nil && *in.EstimatedHours > 0 {
			task.EstimatedHours = *in.EstimatedHours
		}
		if in.Importance != nil {
			task.Importance = clampImportance(*in.Importance)
		}
		task.Dependencies = normalizeDependencies(in.Dependencies)
		for _, dep := range task.Dependencies {
			if dep == task.ID {
				return nil, &domain.SelfDependencyError{ID: task.ID}
			}
		}
		tasks = append(tasks, task)
	}

	// Dependency references are resolved against the full batch,
	// including generated ids, so this runs after assignment.
	ids := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		ids[t.ID] = true
	}
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if !ids[dep] {
				return nil, &domain.UnknownDependencyError{ID: t.ID, Ref: dep}
			}
		}
	}

	return tasks, nil
}

func clampImportance(v int) int {
	if v < minImportance {
		return minImportance
	}
	if v > maxImportance {
		return maxImportance
	}
	return v
}

// normalizeDependencies deduplicates and sorts dependency ids so the
// set has one canonical form and a repeated edge cannot double-count.
func normalizeDependencies(deps []int) []int {
	if len(deps) == 0 {
		return []int{}
	}
	uniq := make(map[int]bool, len(deps))
	out := make([]int, 0, len(deps))
	for _, d := range deps {
		if !uniq[d] {
			uniq[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}
