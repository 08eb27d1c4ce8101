package testpredictions

import "time"

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusAccepted = 202
	StatusNotFound = 404
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	ProcessingDelay      = 5 * time.Second
	PercentageMultiplier = 100
)
