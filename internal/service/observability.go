package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// UseCaseEvent describes one completed service call.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives an event after each service call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger zerolog.Logger
}

// NewLogUseCaseObserver writes one structured log event per use case.
// Failures log at warn level, successes at debug.
func NewLogUseCaseObserver(logger zerolog.Logger) UseCaseObserver {
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	ev := o.logger.Debug()
	if event.Err != nil {
		ev = o.logger.Warn().Err(event.Err)
	}
	ev.Str("use_case", event.Name).
		Int64("duration_ms", event.Duration.Milliseconds()).
		Bool("success", event.Success).
		Fields(event.Fields).
		Msg("service_use_case")
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
