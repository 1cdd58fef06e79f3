package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CreateQuote runs as a fixed sequence of steps:
//
//	validate → persist-initial → fan-out → persist-final → respond
//
// Only validate and the two persist steps can abort the flow. Upstream
// failures in fan-out are contained in the record and never returned.

// ExecutionStep names one step of the quote creation flow.
type ExecutionStep string

const (
	StepValidate       ExecutionStep = "validate"
	StepPersistInitial ExecutionStep = "persist-initial"
	StepFanOut         ExecutionStep = "fan-out"
	StepPersistFinal   ExecutionStep = "persist-final"
	StepRespond        ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step  ExecutionStep
	Cause error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}

// runStep executes fn, logging its outcome. A failing fn is wrapped in an
// ExecutionError carrying step.
func runStep(ctx context.Context, logger *slog.Logger, step ExecutionStep, fn func(context.Context) error) error {
	start := time.Now()

	logger.DebugContext(ctx, "starting step", slog.String("step", string(step)))

	err := fn(ctx)
	if err != nil {
		logger.WarnContext(ctx, "step failed",
			slog.String("step", string(step)),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		return &ExecutionError{Step: step, Cause: err}
	}

	logger.DebugContext(ctx, "step completed",
		slog.String("step", string(step)),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}
