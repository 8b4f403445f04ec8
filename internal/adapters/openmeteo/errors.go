package openmeteo

import "errors"

// ErrSourceUnavailable marks upstream failures: unreachable provider,
// timeouts, or malformed payloads. Callers match on it to fall back to
// manual entry instead of treating the failure as zero precipitation.
var ErrSourceUnavailable = errors.New("weather source unavailable")
