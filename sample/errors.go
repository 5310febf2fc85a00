package sample

import "errors"

var (
	// ErrInvalidProbes indicates a probe count below 1.
	ErrInvalidProbes = errors.New("sample: number of probes must be at least 1")
	// ErrInvalidMinDist indicates a non-positive or non-finite minimum distance.
	ErrInvalidMinDist = errors.New("sample: minimum distance must be positive and finite")
	// ErrNilRand indicates a missing random source.
	ErrNilRand = errors.New("sample: random source is nil")
)
