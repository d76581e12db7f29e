package ingestion

import (
	"context"
	"time"

	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/telemetry"
)

const compensationTimeout = 15 * time.Second

type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// saga records the undo action of every committed step.
type saga struct {
	steps  []compensation
	fields map[string]any
}

func newSaga(fields map[string]any) *saga {
	return &saga{fields: fields}
}

func (s *saga) push(name string, undo func(ctx context.Context) error) {
	s.steps = append(s.steps, compensation{name: name, undo: undo})
}

// compensate runs the recorded actions newest first on a context that survives
// the caller's cancellation. Failures are logged and counted, never returned.
func (s *saga) compensate(ctx context.Context) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.undo(cctx); err != nil {
			metrics.IncCompensationFailure()
			telemetry.Error("ingestion.compensation_failed", withFields(s.fields, map[string]any{"step": step.name, "error": err}))
			continue
		}
		telemetry.Info("ingestion.compensated", withFields(s.fields, map[string]any{"step": step.name}))
	}
	s.steps = nil
}
