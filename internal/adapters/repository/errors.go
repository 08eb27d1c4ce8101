package repository

import "errors"

// Sentinel errors returned by Store implementations.
var (
	ErrNotFound       = errors.New("document not found")
	ErrEmptyPatientID = errors.New("empty patient id")
)
