// Package kepler solves Kepler's equation M = E - e sin E for the
// eccentric anomaly E.
package kepler

import "math"

// Default iteration bounds.  Tolerance is the maximum absolute change in
// eccentric anomaly, in radians, below which iteration stops.  MaxIter
// bounds the work per call regardless of eccentricity, so termination is
// guaranteed for any e in [0, 1).
const (
	Tolerance = 1e-3
	MaxIter   = 20
)

// Solve computes eccentric anomalies for mean anomalies mean and
// eccentricities ecc, elementwise.  The slices must have the same length.
//
// Newton-Raphson iteration starts from E = M and stops when the largest
// absolute update across all elements falls below tol, or after maxIter
// rounds.  Updates are clamped to one radian: near e = 1 the derivative
// 1 - e cos E vanishes at periapsis and an unclamped step diverges, while
// the clamped iteration converges for all e strictly less than 1.
// Hitting the iteration cap is not an error: the last iterate is returned
// as an accepted approximation.
func Solve(mean, ecc []float64, tol float64, maxIter int) []float64 {
	ea := make([]float64, len(mean))
	copy(ea, mean)
	for it := 0; it < maxIter; it++ {
		var dmax float64
		for i, e := range ecc {
			s, c := math.Sincos(ea[i])
			d := (ea[i] - e*s - mean[i]) / (1 - e*c)
			if d > 1 {
				d = 1
			} else if d < -1 {
				d = -1
			}
			ea[i] -= d
			if d = math.Abs(d); d > dmax {
				dmax = d
			}
		}
		if dmax < tol {
			break
		}
	}
	return ea
}
