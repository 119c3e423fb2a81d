package veldist

import (
	"math"
	"sort"

	"velbin/binaries"
)

// SingleEpochData bundles everything the external log-likelihood
// evaluator needs for a single-epoch dataset: the observed velocities,
// uncertainties and masses (km/s, km/s, solar masses), the symmetric bin
// boundary array VBound, and the aligned non-negative density Prob with
// one value per bin.
type SingleEpochData struct {
	Velocity []float64
	SigVel   []float64
	Mass     []float64
	VBound   []float64
	Prob     []float64
}

// SingleEpoch builds the binned probability density of one-time binary
// velocity offsets from the population's projected speeds at epoch 0 and
// unit mass, and attaches the observed single-epoch dataset.
//
// sigvel and mass are broadcast from length 1 or given per observed star.
// A NaN b.LogMax takes the upper end from the largest sampled speed.
//
// Each binary's total speed v spreads uniformly over offsets in [0, v],
// so a binary contributes density 1/v to every bin below v; speeds inside
// a bin contribute their partial overlap.  Bins beyond the largest
// tabulated boundary are covered by a reverse cumulative tail weight.
// The half-density is mirrored about zero and normalized by 2N.
func SingleEpoch(p *binaries.Population, velocity, sigvel, mass []float64,
	b Binning) (*SingleEpochData, error) {

	sigvel, err := broadcast("sigvel", sigvel, len(velocity))
	if err != nil {
		return nil, err
	}
	mass, err = broadcast("mass", mass, len(velocity))
	if err != nil {
		return nil, err
	}

	vlos, vperp := p.Velocity(1, 0)
	n := p.N()
	vel := make([]float64, n)
	for i := range vel {
		vel[i] = math.Hypot(vlos[i], vperp[i])
	}
	sort.Float64s(vel)

	// cum[i] holds Σ 1/vel[j] over j ≥ i, the per-unit-width density of
	// all binaries faster than a bin's upper edge.  cum[n] = 0.
	cum := make([]float64, n+1)
	for i := n - 1; i >= 0; i-- {
		cum[i] = cum[i+1] + 1/vel[i]
	}

	if math.IsNaN(b.LogMax) {
		b.LogMax = math.Log10(vel[n-1])
	}
	vbord := b.bounds()

	pdist := make([]float64, len(vbord))
	lower := 0.0
	ix := 0
	for k, upper := range vbord {
		var in float64
		for ; ix < n && vel[ix] < upper; ix++ {
			in += (vel[ix] - lower) / vel[ix]
		}
		pdist[k] = cum[ix] + in/(upper-lower)
		lower = upper
	}

	m := len(pdist)
	prob := make([]float64, 2*m)
	norm := 2 * float64(n)
	for i, pd := range pdist {
		prob[m-1-i] = pd / norm
		prob[m+i] = pd / norm
	}
	return &SingleEpochData{
		Velocity: velocity,
		SigVel:   sigvel,
		Mass:     mass,
		VBound:   mirror(vbord),
		Prob:     prob,
	}, nil
}
