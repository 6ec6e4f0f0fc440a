package service

import "errors"

// ErrInsufficientData marks an aggregate operation that cannot run yet
// because too few responses exist.
var ErrInsufficientData = errors.New("insufficient response data")

// GenerationFailedError wraps any failure of the form-generation pipeline.
// Generation has no safe default, so the failure propagates to the caller.
type GenerationFailedError struct {
	Err error
}

func (e *GenerationFailedError) Error() string {
	return "form generation failed: " + e.Err.Error()
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }

// OptimizationFailedError wraps a failure of the optimization pipeline.
type OptimizationFailedError struct {
	Err error
}

func (e *OptimizationFailedError) Error() string {
	return "form optimization failed: " + e.Err.Error()
}

func (e *OptimizationFailedError) Unwrap() error { return e.Err }
