package binaries

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"
)

// DaysPerYear converts the orbital periods held in years to the days used
// by the published period distributions.
const DaysPerYear = 365.25

// Population is a fixed-length table of binary orbital elements, stored
// as parallel slices indexed 0..N-1.  The length is fixed at construction.
// Draw and Set operations overwrite fields in place; all other operations
// are read-only.  A draw must not run concurrently with any read on the
// same Population.
type Population struct {
	Period       []float64 // orbital period, years, > 0
	MassRatio    []float64 // secondary/primary mass, in (0,1]
	Eccentricity []float64 // in [0,1)
	Phase        []float64 // orbital phase at the reference epoch, in [0,1)
	Theta        []float64 // projected periastron angle, radians in [0,2π)
	Inclination  []float64 // angle to the line of sight, radians in [0,π]

	rnd *rand.Rand
}

// New constructs a population of n binaries.  Orientation fields are
// drawn once: Phase uniform, Theta uniform over the circle, Inclination
// isotropic (arccos of a uniform draw on [-1,1]).  Period and MassRatio
// start at 1, Eccentricity at 0, until overwritten by the draw operations.
//
// src seeds all random draws made by this population, including fake
// datasets.  A nil src is seeded from the wall clock; pass a fixed
// rand.NewSource for reproducible runs.
func New(n int, src rand.Source) *Population {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	p := &Population{
		Period:       make([]float64, n),
		MassRatio:    make([]float64, n),
		Eccentricity: make([]float64, n),
		Phase:        make([]float64, n),
		Theta:        make([]float64, n),
		Inclination:  make([]float64, n),
		rnd:          rand.New(src),
	}
	for i := 0; i < n; i++ {
		p.Period[i] = 1
		p.MassRatio[i] = 1
		p.Phase[i] = p.rnd.Float64()
		p.Theta[i] = p.rnd.Float64() * 2 * math.Pi
		p.Inclination[i] = math.Acos(2*p.rnd.Float64() - 1)
	}
	return p
}

// N returns the number of binaries in the population.
func (p *Population) N() int { return len(p.Period) }

// SemiMajor returns the semi-major axis of every binary in AU, from
// Kepler's third law, for a primary of the given mass in solar masses.
func (p *Population) SemiMajor(mass float64) []float64 {
	a := make([]float64, p.N())
	for i, per := range p.Period {
		a[i] = math.Cbrt(per * per * mass * (1 + p.MassRatio[i]))
	}
	return a
}

// head returns a view of the first n binaries sharing this population's
// element slices and random source.
func (p *Population) head(n int) *Population {
	return &Population{
		Period:       p.Period[:n],
		MassRatio:    p.MassRatio[:n],
		Eccentricity: p.Eccentricity[:n],
		Phase:        p.Phase[:n],
		Theta:        p.Theta[:n],
		Inclination:  p.Inclination[:n],
		rnd:          p.rnd,
	}
}

// checkLen validates a direct-array argument against the population size.
func (p *Population) checkLen(what string, v []float64) error {
	if len(v) != p.N() {
		return fmt.Errorf("%w: %s has length %d, want %d",
			ErrShapeMismatch, what, len(v), p.N())
	}
	return nil
}
