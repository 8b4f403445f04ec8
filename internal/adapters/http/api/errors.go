package api

import (
	"errors"
	"fmt"

	"github.com/nahid/floodcast/internal/adapters/openmeteo"
	service "github.com/nahid/floodcast/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// Lower-layer sentinels the status mapping keys on, re-exported so handlers
// stay decoupled from the packages that define them.
var (
	ErrModelUnavailable  = service.ErrModelUnavailable
	ErrBatchSize         = service.ErrBatchSize
	ErrSourceUnavailable = openmeteo.ErrSourceUnavailable
)

// Wrap annotates err with the failing operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// NewKind creates an error of the given sentinel kind for an operation.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind annotates err with both the operation and a sentinel kind.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
