package constraint

import "errors"

// Sentinel kinds for enforcement errors.
var (
	ErrEmptySequence = errors.New("empty score sequence")
	ErrMissingADAS   = errors.New("timepoint missing adas_cog value")
)
