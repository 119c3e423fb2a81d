package kepler_test

import (
	"math"
	"testing"

	"velbin/kepler"
)

// recompute mean anomaly from the solved eccentric anomaly
func meanFrom(ea, e float64) float64 {
	return ea - e*math.Sin(ea)
}

func TestSolveRoundTrip(t *testing.T) {
	for _, e := range []float64{0, .1, .3, .5, .7, .9, .95, .99} {
		var mean, ecc []float64
		for m := 0.0; m < 2*math.Pi; m += .05 {
			mean = append(mean, m)
			ecc = append(ecc, e)
		}
		ea := kepler.Solve(mean, ecc, 1e-10, 100)
		for i, m := range mean {
			if err := math.Abs(meanFrom(ea[i], e) - m); err > 1e-8 {
				t.Fatalf("e=%g M=%g: round-trip error %g", e, m, err)
			}
		}
	}
}

func TestSolveDefaults(t *testing.T) {
	// the default tolerance and iteration cap must hold the round-trip
	// error within the configured tolerance across all eccentricities
	for _, e := range []float64{0, .5, .9, .99} {
		var mean, ecc []float64
		for m := 0.0; m < 2*math.Pi; m += .01 {
			mean = append(mean, m)
			ecc = append(ecc, e)
		}
		ea := kepler.Solve(mean, ecc, kepler.Tolerance, kepler.MaxIter)
		for i, m := range mean {
			if err := math.Abs(meanFrom(ea[i], e) - m); err > kepler.Tolerance {
				t.Fatalf("e=%g M=%g: round-trip error %g exceeds tolerance", e, m, err)
			}
		}
	}
}

func TestSolveCircular(t *testing.T) {
	// for e = 0 the equation is the identity E = M
	mean := []float64{0, 1, 2, 5, 20}
	ecc := make([]float64, len(mean))
	ea := kepler.Solve(mean, ecc, kepler.Tolerance, kepler.MaxIter)
	for i, m := range mean {
		if ea[i] != m {
			t.Errorf("e=0 M=%g: got E=%g", m, ea[i])
		}
	}
}

func TestSolveCapTerminates(t *testing.T) {
	// even a single iteration must return an estimate, never loop or error
	ea := kepler.Solve([]float64{.01}, []float64{.999}, 1e-15, 1)
	if math.IsNaN(ea[0]) {
		t.Fatal("capped solve returned NaN")
	}
}
