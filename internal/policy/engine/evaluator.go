package engine

import (
	"context"
)

// Decision holds the result of an access policy evaluation.
type Decision struct {
	Allow bool
}

// Evaluator decides whether a username may start a portal session.
type Evaluator interface {
	// EvaluateAccess evaluates the access policy for username. A non-nil error means the
	// decision could not be made; callers treat it as a denial.
	EvaluateAccess(ctx context.Context, username string) (Decision, error)
}
