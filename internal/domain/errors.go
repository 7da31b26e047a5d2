package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the common kind wrapped by every batch validation
// failure. Callers that only need "reject the request" can check this
// with errors.Is; the concrete types below carry the offending ids.
var ErrValidation = errors.New("invalid task batch")

// DuplicateIDError reports two records sharing an explicit id.
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("invalid task batch: duplicate task id %d", e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrValidation }

// SelfDependencyError reports a task listing its own id as a dependency.
type SelfDependencyError struct {
	ID int
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("invalid task batch: task %d depends on itself", e.ID)
}

func (e *SelfDependencyError) Unwrap() error { return ErrValidation }

// UnknownDependencyError reports a dependency id that matches no record
// in the batch. The whole batch is rejected; a graph cannot be built on
// unknown nodes.
type UnknownDependencyError struct {
	ID  int // task declaring the dependency
	Ref int // id that was not found
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("invalid task batch: task %d depends on unknown task %d", e.ID, e.Ref)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrValidation }

// WeightVectorError reports a custom weight vector that does not sum
// to 1.0.
type WeightVectorError struct {
	Weights Weights
}

func (e *WeightVectorError) Error() string {
	return fmt.Sprintf("invalid weight vector: weights sum to %.3f, want 1.0", e.Weights.Sum())
}

func (e *WeightVectorError) Unwrap() error { return ErrValidation }
