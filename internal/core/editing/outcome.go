package editing

import "kilometers.ai/edit/internal/core/domain"

// Outcome is the result of a step that degrades instead of failing.
// When Degradation is set, Value holds the step's empty default.
type Outcome[T any] struct {
	Value       T
	Degradation *domain.Degradation
}

// Degraded reports whether the step failed and was replaced by its default
func (o Outcome[T]) Degraded() bool {
	return o.Degradation != nil
}

// Degrade runs fn and converts its failure into a degraded outcome carrying fallback
func Degrade[T any](kind domain.DegradationKind, fallback T, fn func() (T, error)) Outcome[T] {
	value, err := fn()
	if err != nil {
		return Outcome[T]{Value: fallback, Degradation: domain.NewDegradation(kind, err)}
	}
	return Outcome[T]{Value: value}
}
