package veldist

import (
	"errors"
	"fmt"
)

var (
	// ErrInputLength indicates per-star auxiliary lists whose count
	// disagrees with the velocity list.
	ErrInputLength = errors.New("veldist: per-star lists must match the velocity list in length")
	// ErrShapeMismatch indicates an array that cannot be broadcast
	// against the observed star or epoch count.
	ErrShapeMismatch = errors.New("veldist: array length does not broadcast against observations")
)

// broadcast expands a scalar-like slice of length 1 to length n, returns
// length-n slices unchanged, and rejects anything else.
func broadcast(what string, v []float64, n int) ([]float64, error) {
	switch len(v) {
	case n:
		return v, nil
	case 1:
		b := make([]float64, n)
		for i := range b {
			b[i] = v[0]
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %s has length %d, want 1 or %d",
		ErrShapeMismatch, what, len(v), n)
}
