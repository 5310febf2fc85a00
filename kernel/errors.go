package kernel

import "errors"

var (
	// ErrInvalidDimensions indicates a width, height or depth below 1.
	ErrInvalidDimensions = errors.New("kernel: dimensions must be positive")
	// ErrOutOfRange indicates an index outside the current dimensions.
	ErrOutOfRange = errors.New("kernel: index out of range")
	// ErrEmptyVariant indicates a Variant that holds no kernel.
	ErrEmptyVariant = errors.New("kernel: variant holds no kernel")
)
