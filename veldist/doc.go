// Package veldist builds binned probability densities of binary orbital
// velocity offsets from a synthesized population.
//
// SingleEpoch turns a one-time snapshot of projected speeds into a
// symmetric binned density.  MultiEpoch classifies observed stars as
// radial-velocity variable or single, estimates per-star detection
// probabilities by replaying each star's epoch pattern across the
// population, and builds per-star hidden-binary offset histograms on a
// shared boundary grid.  Both hand their boundary and density arrays,
// together with the observed passthrough arrays, to an external
// log-likelihood evaluator; the evaluator itself is not part of this
// package.
package veldist
