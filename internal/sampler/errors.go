package sampler

import "errors"

var (
	// ErrInvalidFeatureCount is returned when F < 1.
	ErrInvalidFeatureCount = errors.New("sampler: feature count must be >= 1")

	// ErrInvalidSampleCount is returned when n_samples < 1.
	ErrInvalidSampleCount = errors.New("sampler: n_samples must be >= 1")
)
