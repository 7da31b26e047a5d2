// Package engine scores and ranks task batches. It is a pure
// computation: the reference date is injected by the caller, no state
// survives a call, and identical input always yields identical output.
package engine

import (
	"fmt"

	"github.com/rcliao/triage/internal/domain"
)

// DefaultSuggestionCount is the number of suggestions returned when the
// caller does not ask for a specific n.
const DefaultSuggestionCount = 3

// Request is one analyze or suggest call. Strategy and Weights are
// mutually optional: an explicit weight vector overrides the strategy,
// an empty strategy selects the default.
type Request struct {
	Tasks    []domain.TaskInput
	Strategy string
	Weights  *domain.Weights
	// Now is the reference date for urgency. It must be supplied by the
	// caller; the engine never reads a clock.
	Now domain.Date
}

// Engine computes task priorities. The zero value is not usable; use New.
type Engine struct {
	urgency UrgencyParams
}

func New() *Engine {
	return &Engine{urgency: DefaultUrgencyParams()}
}

// NewWithUrgency overrides the urgency curve parameters.
func NewWithUrgency(p UrgencyParams) *Engine {
	return &Engine{urgency: p}
}

// Analyze validates the batch, resolves the dependency graph, scores
// every task and returns the batch in ranked order.
func (e *Engine) Analyze(req Request) ([]domain.ScoredTask, error) {
	tasks, err := ValidateBatch(req.Tasks)
	if err != nil {
		return nil, err
	}
	weights, err := resolveWeights(req.Strategy, req.Weights)
	if err != nil {
		return nil, err
	}

	graph := AnalyzeGraph(tasks)

	scored := make([]domain.ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		inCycle := graph.InCycle[task.ID]
		dependents := graph.Dependents[task.ID]

		breakdown := domain.Breakdown{
			Urgency:    e.urgency.Score(task.DueDate, req.Now),
			Importance: ImportanceScore(task.Importance),
			Effort:     EffortScore(task.EstimatedHours),
			Dependency: DependencyScore(dependents, inCycle),
		}

		scored = append(scored, domain.ScoredTask{
			Task:      task,
			Score:     Aggregate(breakdown, weights),
			Reason:    Reason(task, breakdown, weights, dependents, inCycle, req.Now),
			Breakdown: breakdown,
			InCycle:   inCycle,
		})
	}

	Rank(scored)
	return scored, nil
}

// Suggest analyzes the batch and returns the top n recommendations.
// n defaults to DefaultSuggestionCount when zero and must otherwise be
// positive.
func (e *Engine) Suggest(req Request, n int) ([]domain.Suggestion, error) {
	if n == 0 {
		n = DefaultSuggestionCount
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: suggestion count must be at least 1, got %d", domain.ErrValidation, n)
	}
	ranked, err := e.Analyze(req)
	if err != nil {
		return nil, err
	}
	return TopSuggestions(ranked, n), nil
}
