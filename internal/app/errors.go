package service

import "errors"

// Service-level sentinel errors.
var (
	// ErrModelUnavailable means no classifier artifact is loaded; predictions
	// cannot be served until one is.
	ErrModelUnavailable = errors.New("model is not loaded")

	// ErrBatchSize means the batch payload is empty or over the limit.
	ErrBatchSize = errors.New("invalid batch size")
)
