package app

import "errors"

// Sentinel errors for request admission.
var (
	ErrHorizonTooLarge = errors.New("requested horizon exceeds maximum")
)
