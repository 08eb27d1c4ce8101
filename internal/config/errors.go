package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrEmptyAddr    = errors.New("addr must not be empty")
	ErrInvalidValue = errors.New("invalid config value")
)
