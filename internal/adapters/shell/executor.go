// Package shell implements build steps as subprocess commands and the
// executor that runs a rule's steps in order.
package shell

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ domain.Step = (*CommandStep)(nil)

// CommandStep runs one argv vector as a subprocess. The working directory is
// the workspace root, so rule paths resolve without rewriting.
type CommandStep struct {
	argv []string
	env  map[string]string
}

// NewCommandStep creates a CommandStep. env entries override the inherited
// process environment.
func NewCommandStep(argv []string, env map[string]string) *CommandStep {
	return &CommandStep{argv: argv, env: env}
}

// Description implements domain.Step.
func (s *CommandStep) Description() string {
	return strings.Join(s.argv, " ")
}

// Execute implements domain.Step. A non-zero exit is reported through the
// code, not the error; the error is reserved for failures to run at all.
func (s *CommandStep) Execute(ctx context.Context, bctx domain.BuildContext) (int, error) {
	if len(s.argv) == 0 {
		return 0, nil
	}

	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...) //nolint:gosec // rule-declared command
	cmd.Dir = bctx.Root
	cmd.Env = mergedEnv(os.Environ(), s.env)
	cmd.Stdout = bctx.Stdout
	cmd.Stderr = bctx.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, zerr.With(zerr.Wrap(err, "failed to run command"), "command", s.Description())
}

func mergedEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	env := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, overridden := overrides[k]; !overridden {
			env = append(env, entry)
		}
	}
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

// MakeSteps returns the step factory handed to rule construction: each argv
// vector becomes one CommandStep sharing the given environment overrides.
func MakeSteps(env map[string]string) func(domain.BuildContext, [][]string) []domain.Step {
	return func(_ domain.BuildContext, commands [][]string) []domain.Step {
		steps := make([]domain.Step, 0, len(commands))
		for _, argv := range commands {
			steps = append(steps, NewCommandStep(argv, env))
		}
		return steps
	}
}

var _ ports.StepExecutor = (*Executor)(nil)

// Executor implements ports.StepExecutor. Steps run strictly in order; the
// first failure aborts the rule and is reported on the bus.
type Executor struct {
	bus ports.EventBus
}

// NewExecutor creates an Executor reporting on the given bus.
func NewExecutor(bus ports.EventBus) *Executor {
	return &Executor{bus: bus}
}

// RunSteps implements ports.StepExecutor.
func (e *Executor) RunSteps(ctx context.Context, rule domain.Rule, bctx domain.BuildContext) error {
	for _, step := range rule.Steps(bctx) {
		code, err := step.Execute(ctx, bctx)
		if err != nil {
			e.bus.Post(domain.StepFailedEvent{
				Target:   rule.Target(),
				Step:     step.Description(),
				ExitCode: code,
				Err:      err,
			})
			return zerr.With(zerr.Wrap(domain.ErrStepFailed, err.Error()), "step", step.Description())
		}
		if code != 0 {
			e.bus.Post(domain.StepFailedEvent{
				Target:   rule.Target(),
				Step:     step.Description(),
				ExitCode: code,
			})
			return zerr.With(zerr.With(domain.ErrStepFailed, "step", step.Description()), "exit_code", code)
		}
	}
	return nil
}
