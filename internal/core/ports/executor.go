package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// StepExecutor runs a rule's build steps strictly in declared order; later
// steps assume earlier steps' filesystem side effects. The first failing
// step aborts the rule.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type StepExecutor interface {
	// RunSteps executes the rule's steps. It returns the failing step's
	// description and exit code wrapped in the error.
	RunSteps(ctx context.Context, rule domain.Rule, bctx domain.BuildContext) error
}
