package binaries

import (
	"fmt"
	"math"
)

// FakeDataset synthesizes an observed radial-velocity catalog for Monte
// Carlo validation.
//
// nvel stars are drawn: a Bernoulli binary flag with probability fbin, a
// Gaussian systemic velocity with dispersion vdisp shared across epochs,
// and, for stars flagged binary, the projected line-of-sight offset of
// the corresponding population entry at each requested epoch.  Gaussian
// measurement noise with deviation sigvel is added independently per star
// per epoch.  sigvel and mass (solar masses) are broadcast from length 1
// or given per star.  dates are relative observation epochs in years.
//
// The first nvel population entries are reused as-is, without redrawing,
// so repeated calls on the same population see the same orbits; redraw
// the population for an independent realization.  nvel must not exceed
// the population size.
//
// The returned rv matrix has one row per epoch, one column per star.
func (p *Population) FakeDataset(nvel int, vdisp, fbin float64,
	sigvel, mass, dates []float64) (rv [][]float64, binary []bool, err error) {

	if nvel > p.N() {
		return nil, nil, fmt.Errorf("%w: %d stars requested from %d binaries",
			ErrShapeMismatch, nvel, p.N())
	}
	sigvel, err = broadcast("sigvel", sigvel, nvel)
	if err != nil {
		return nil, nil, err
	}
	mass, err = broadcast("mass", mass, nvel)
	if err != nil {
		return nil, nil, err
	}

	binary = make([]bool, nvel)
	vsys := make([]float64, nvel)
	for i := 0; i < nvel; i++ {
		binary[i] = p.rnd.Float64() < fbin
		vsys[i] = p.rnd.NormFloat64() * vdisp
	}

	sub := p.head(nvel)
	rv = make([][]float64, len(dates))
	for d, t := range dates {
		vlos, _ := sub.Velocity(1, t)
		row := make([]float64, nvel)
		for i := 0; i < nvel; i++ {
			var offset float64
			if binary[i] {
				// unit-mass projection scales exactly with mass^(1/3)
				offset = vlos[i] * math.Cbrt(mass[i])
			}
			row[i] = vsys[i] + offset + p.rnd.NormFloat64()*sigvel[i]
		}
		rv[d] = row
	}
	return rv, binary, nil
}

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
