package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/triage/internal/domain"
	"github.com/rcliao/triage/internal/storage"
)

func fixedClock() time.Time {
	return time.Date(2025, time.June, 10, 15, 30, 0, 0, time.UTC)
}

func TestAnalysisService_Analyze(t *testing.T) {
	svc := NewAnalysisService(storage.NewMemoryStorage(), fixedClock)

	due := domain.NewDate(2025, time.June, 10)
	hours := 3.0
	importance := 8
	scored, err := svc.Analyze(AnalyzeRequest{
		Tasks: []domain.TaskInput{{
			Title:          "Fix login bug",
			DueDate:        &due,
			EstimatedHours: &hours,
			Importance:     &importance,
		}},
	})
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, 69, scored[0].Score)
	assert.Equal(t, "Due today", scored[0].Reason)
}

func TestAnalysisService_IncludeSaved(t *testing.T) {
	store := storage.NewMemoryStorage()
	tasks := NewTaskService(store)
	analysis := NewAnalysisService(store, fixedClock)

	saved, err := tasks.Create(domain.TaskInput{Title: "saved chore"})
	require.NoError(t, err)

	// Without the flag only the submitted batch is scored.
	scored, err := analysis.Analyze(AnalyzeRequest{
		Tasks: []domain.TaskInput{{Title: "ad-hoc"}},
	})
	require.NoError(t, err)
	assert.Len(t, scored, 1)

	// With the flag the saved list joins the batch, and submitted tasks
	// may depend on saved ids.
	scored, err = analysis.Analyze(AnalyzeRequest{
		Tasks:        []domain.TaskInput{{Title: "ad-hoc", Dependencies: []int{saved.ID}}},
		IncludeSaved: true,
	})
	require.NoError(t, err)
	require.Len(t, scored, 2)

	byTitle := map[string]domain.ScoredTask{}
	for _, s := range scored {
		byTitle[s.Title] = s
	}
	assert.Equal(t, 25, byTitle["saved chore"].Breakdown.Dependency)
}

func TestAnalysisService_Suggest(t *testing.T) {
	svc := NewAnalysisService(storage.NewMemoryStorage(), fixedClock)

	importance := 9
	suggestions, err := svc.Suggest(AnalyzeRequest{
		Tasks: []domain.TaskInput{
			{Title: "big", Importance: &importance},
			{Title: "small"},
		},
	}, 1)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "big", suggestions[0].Title)
	assert.NotEmpty(t, suggestions[0].Why)
}

func TestAnalysisService_DefaultClock(t *testing.T) {
	svc := NewAnalysisService(storage.NewMemoryStorage(), nil)

	_, err := svc.Analyze(AnalyzeRequest{Tasks: []domain.TaskInput{{Title: "t"}}})
	assert.NoError(t, err)
}
