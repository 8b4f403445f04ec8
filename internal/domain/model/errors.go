package model

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotLoaded    = errors.New("model not loaded")
	ErrArtifact     = errors.New("malformed model artifact")
	ErrFeatureCount = errors.New("feature vector length mismatch")
)
