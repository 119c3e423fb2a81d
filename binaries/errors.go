package binaries

import "errors"

var (
	// ErrDistributionName indicates a preset name with no entry in the
	// static distribution tables.
	ErrDistributionName = errors.New("binaries: unknown distribution name")
	// ErrShapeMismatch indicates an array argument whose length cannot be
	// broadcast against the population size.
	ErrShapeMismatch = errors.New("binaries: array length does not match population size")
)
