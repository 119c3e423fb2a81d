package binaries

import (
	"math"

	"velbin/kepler"
)

// KmsPerAUYear converts a velocity in AU per year to km/s.
const KmsPerAUYear = 4.74057581

// Velocity returns the radial velocity and proper-motion offsets, in
// km/s, due to the orbital motion of every binary at the given epoch.
// mass is the primary mass in solar masses; time is in years relative to
// the reference epoch and may be re-evaluated at arbitrary epochs for
// multi-epoch use.
//
// The eccentric anomaly comes from the bounded Newton iteration in
// package kepler with its default tolerance, so the projection shares the
// solver's documented approximation at high eccentricity.
func (p *Population) Velocity(mass, time float64) (vlos, vperp []float64) {
	n := p.N()
	mean := make([]float64, n)
	for i := range mean {
		mean[i] = 2 * math.Pi * (p.Phase[i] + time/p.Period[i])
	}
	ea := kepler.Solve(mean, p.Eccentricity, kepler.Tolerance, kepler.MaxIter)

	a := p.SemiMajor(mass)
	vlos = make([]float64, n)
	vperp = make([]float64, n)
	for i := 0; i < n; i++ {
		e := p.Eccentricity[i]

		// true anomaly and normalized conic separation
		th := 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(ea[i]/2))
		cth := math.Cos(th)
		sep := (1 - e*e) / (1 + e*cth)

		// angular and radial rates for a unit semi-major axis and period
		thdot := 2 * math.Pi * math.Sqrt(1-e*e) / (sep * sep)
		rdot := sep * e * thdot * math.Sin(th) / (1 + e*cth)

		vtotsq := (thdot*sep)*(thdot*sep) + rdot*rdot
		los := (thdot*sep*math.Sin(p.Theta[i]-th) + rdot*math.Cos(p.Theta[i]-th)) *
			math.Sin(p.Inclination[i])

		// scale to km/s: physical size over period, reduced to the
		// primary's reflex motion by the mass ratio
		scale := a[i] / (p.Period[i] * (1 + 1/p.MassRatio[i])) * KmsPerAUYear
		vlos[i] = los * scale
		// rounding can push the projection a hair past the total speed
		if perpsq := vtotsq - los*los; perpsq > 0 {
			vperp[i] = math.Sqrt(perpsq) * scale
		}
	}
	return vlos, vperp
}
