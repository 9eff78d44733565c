package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Manager executes a fixed sequence of steps over a shared State.
// Steps run in registration order; the first failure aborts the run.
type Manager struct {
	steps  []Step
	logger *slog.Logger
}

func NewManager(logger *slog.Logger, steps ...Step) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{steps: steps, logger: logger}
}

// Steps returns the registered steps in execution order.
func (m *Manager) Steps() []Step {
	out := make([]Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// Run executes the pipeline for a single document. The returned State
// carries whatever was produced before the first failure, so callers
// can inspect partial progress.
func (m *Manager) Run(ctx context.Context, documentPath, outputDir string) (*State, error) {
	state := NewState(documentPath, outputDir)
	start := time.Now()

	m.logger.InfoContext(ctx, "operation started",
		slog.String("operation_id", state.ID),
		slog.String("document", documentPath),
		slog.Int("steps", len(m.steps)))

	for _, step := range m.steps {
		if err := ctx.Err(); err != nil {
			return state, fmt.Errorf("operation %s cancelled: %w", state.ID, err)
		}

		ss := state.StepState(step.ID(), step.Name())
		ss.Start()

		stepStart := time.Now()
		if err := step.Execute(ctx, state); err != nil {
			ss.Fail(err)
			m.logger.ErrorContext(ctx, "step failed",
				slog.String("operation_id", state.ID),
				slog.String("step", step.ID()),
				slog.Duration("duration", time.Since(stepStart)),
				slog.String("error", err.Error()))
			return state, &StepError{OperationID: state.ID, StepID: step.ID(), Err: err}
		}
		ss.Complete()

		m.logger.InfoContext(ctx, "step completed",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", time.Since(stepStart)))
	}

	m.logger.InfoContext(ctx, "operation completed",
		slog.String("operation_id", state.ID),
		slog.Duration("duration", time.Since(start)))
	return state, nil
}
