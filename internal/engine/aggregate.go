package engine

import (
	"math"

	"github.com/rcliao/triage/internal/domain"
)

// Aggregate combines the four sub-scores under a weight vector into the
// final 0-100 score.
func Aggregate(b domain.Breakdown, w domain.Weights) int {
	sum := float64(b.Urgency)*w.Urgency +
		float64(b.Importance)*w.Importance +
		float64(b.Effort)*w.Effort +
		float64(b.Dependency)*w.Dependency
	return clampScore(int(math.Round(sum)))
}

// resolveWeights picks the effective weight vector for a call: an
// explicit custom vector wins over the strategy name, and must sum
// to 1.0 within tolerance.
func resolveWeights(strategy string, custom *domain.Weights) (domain.Weights, error) {
	if custom != nil {
		if err := custom.Validate(); err != nil {
			return domain.Weights{}, err
		}
		return *custom, nil
	}
	return domain.StrategyWeights(strategy)
}
