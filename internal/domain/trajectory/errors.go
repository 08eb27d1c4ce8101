package trajectory

import "errors"

// Sentinel kinds for trajectory generation errors.
var (
	ErrInvalidHorizon  = errors.New("horizon months must be positive")
	ErrInvalidInterval = errors.New("interval months must be positive")
)
