package domain

import (
	"fmt"
	"math"
)

// Weights is a weight vector over the four sub-scores. A valid vector
// sums to 1.0 within WeightSumTolerance.
type Weights struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Effort     float64 `json:"effort"`
	Dependency float64 `json:"dependency"`
}

// WeightSumTolerance is the allowed deviation from 1.0 for a custom
// weight vector.
const WeightSumTolerance = 0.001

func (w Weights) Sum() float64 {
	return w.Urgency + w.Importance + w.Effort + w.Dependency
}

// Validate rejects vectors that do not sum to 1.0 within tolerance.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > WeightSumTolerance {
		return &WeightVectorError{Weights: w}
	}
	return nil
}

// Recognized strategy names.
const (
	StrategyBalanced  = "balanced"
	StrategyDeadline  = "deadline-focused"
	StrategyQuickWins = "quick-wins"

	DefaultStrategy = StrategyBalanced
)

var strategies = map[string]Weights{
	StrategyBalanced:  {Urgency: 0.4, Importance: 0.3, Effort: 0.2, Dependency: 0.1},
	StrategyDeadline:  {Urgency: 0.6, Importance: 0.2, Effort: 0.1, Dependency: 0.1},
	StrategyQuickWins: {Urgency: 0.2, Importance: 0.2, Effort: 0.5, Dependency: 0.1},
}

// StrategyWeights looks up the immutable weight vector for a named
// strategy. The empty name selects the default strategy.
func StrategyWeights(name string) (Weights, error) {
	if name == "" {
		name = DefaultStrategy
	}
	w, ok := strategies[name]
	if !ok {
		return Weights{}, fmt.Errorf("%w: unknown strategy %q", ErrValidation, name)
	}
	return w, nil
}

// StrategyNames returns the recognized strategy names.
func StrategyNames() []string {
	return []string{StrategyBalanced, StrategyDeadline, StrategyQuickWins}
}
