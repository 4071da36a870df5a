package bench

import "errors"

// Sentinel errors of the batch driver.
var (
	// ErrInvalidConfig reports an unusable benchmark configuration.
	ErrInvalidConfig = errors.New("bench: invalid config")

	// ErrNoInstances is returned when no category directory held an instance.
	ErrNoInstances = errors.New("bench: no instances found")
)
