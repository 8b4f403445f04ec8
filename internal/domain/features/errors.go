package features

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrValidation     = errors.New("request validation failed")
	ErrUnknownFeature = errors.New("unknown feature name")
)

// IsValidation reports whether err stems from request validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
