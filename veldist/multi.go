package veldist

import (
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"velbin/binaries"
)

// MultiEpochData bundles everything the external log-likelihood
// evaluator needs for a multi-epoch dataset.  VMean, SigMean, Mass,
// PDetSingle and PBin have one entry per star classified as single
// (not radial-velocity variable); PDetVariable has one entry per
// variable star; IsSingle has one flag per input star, so the two
// groups sum to the input star count.  PBin rows are densities over the
// shared symmetric boundary array VBound.
type MultiEpochData struct {
	VMean   []float64 // inverse-variance weighted mean velocities, km/s
	SigMean []float64 // uncertainties of the weighted means, km/s
	Mass    []float64 // primary masses of the single stars, solar masses

	VBound []float64   // shared bin boundaries, symmetric about zero
	PBin   [][]float64 // per-single-star hidden-binary offset densities

	PDetSingle   []float64 // detection probability per single star
	PDetVariable []float64 // detection probability per variable star
	IsSingle     []bool
}

// MultiEpoch classifies observed stars by radial-velocity variability
// and builds per-star hidden-binary offset densities from the
// population.
//
// velocity, sigvel and dates hold one list per star: observed radial
// velocities (km/s), their measurement uncertainties and the observation
// epochs (years).  The outer lists must all have the same star count;
// within a star the three arrays are broadcast from length 1 where
// needed.  mass holds the primary mass per star, broadcast from length
// 1.  pfalse is the accepted probability of falsely detecting a constant
// star as variable.
//
// A star with several epochs is flagged variable when the chi-square
// statistic of its observations against their inverse-variance weighted
// mean has a p-value below pfalse.  Variable stars only contribute a
// detection probability, estimated by replaying the star's exact epoch
// pattern and uncertainties across the whole synthetic population.
// Single stars additionally contribute their weighted mean velocity and
// a density of the population offsets that the same replay failed to
// detect.  A star observed once cannot be tested: it is recorded as
// single with detection probability 0.
//
// The population template at each distinct epoch is projected once and
// reused across stars sharing that epoch.  src seeds the synthetic
// measurement noise; nil means wall-clock seeding.
func MultiEpoch(p *binaries.Population, velocity, sigvel [][]float64,
	mass []float64, dates [][]float64, pfalse float64, b Binning,
	src rand.Source) (*MultiEpochData, error) {

	nstars := len(velocity)
	if len(sigvel) != nstars {
		return nil, fmt.Errorf("%w: sigvel has %d stars, velocity %d",
			ErrInputLength, len(sigvel), nstars)
	}
	if len(dates) != nstars {
		return nil, fmt.Errorf("%w: dates has %d stars, velocity %d",
			ErrInputLength, len(dates), nstars)
	}
	if len(mass) != 1 && len(mass) != nstars {
		return nil, fmt.Errorf("%w: mass has %d stars, velocity %d",
			ErrInputLength, len(mass), nstars)
	}
	mass, _ = broadcast("mass", mass, nstars)

	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	rnd := rand.New(src)

	if math.IsNaN(b.LogMax) {
		b.LogMax = DefaultBinning.LogMax
	}
	vbord := b.bounds()

	// population line-of-sight template per distinct epoch, unit mass
	vbin := map[float64][]float64{}
	template := func(date float64) []float64 {
		t, ok := vbin[date]
		if !ok {
			t, _ = p.Velocity(1, date)
			vbin[date] = t
		}
		return t
	}

	out := &MultiEpochData{VBound: mirror(vbord)}
	for i := 0; i < nstars; i++ {
		epochs, vel, sig, err := broadcastStar(dates[i], velocity[i], sigvel[i])
		if err != nil {
			return nil, fmt.Errorf("star %d: %w", i, err)
		}

		var meanRV, meanSig, pdet float64
		var variable bool
		var offsets []float64
		if len(epochs) == 1 {
			// no variability test possible from one observation
			meanRV = vel[0]
			meanSig = sig[0]
			offsets = template(epochs[0])
		} else {
			w := make([]float64, len(sig))
			for j, s := range sig {
				w[j] = 1 / (s * s)
			}
			sumw := floats.Sum(w)
			meanRV = stat.Mean(vel, w)
			meanSig = 1 / math.Sqrt(sumw)

			var chisq float64
			for j, v := range vel {
				d := meanRV - v
				chisq += d * d * w[j]
			}
			variable = chiSquareP(chisq, len(epochs)-1) < pfalse

			tmpl := make([][]float64, len(epochs))
			for j, date := range epochs {
				tmpl[j] = template(date)
			}
			pdet, offsets = detect(tmpl, sig, w, sumw, mass[i], pfalse, rnd)
		}

		if variable {
			out.PDetVariable = append(out.PDetVariable, pdet)
		} else {
			out.VMean = append(out.VMean, meanRV)
			out.SigMean = append(out.SigMean, meanSig)
			out.Mass = append(out.Mass, mass[i])
			out.PDetSingle = append(out.PDetSingle, pdet)
			out.PBin = append(out.PBin, offsetHistogram(offsets, vbord))
		}
		out.IsSingle = append(out.IsSingle, !variable)
	}
	return out, nil
}

// detect replays one star's epoch pattern and measurement uncertainties
// across the synthetic population to estimate how often a hidden binary
// of this star would have been caught by the variability test.
//
// tmpl holds the unit-mass population offset per epoch, sig and w the
// per-epoch uncertainties and inverse-variance weights (sum sumw).  Each
// synthetic binary is observed as tmpl·pmass^(1/3) plus independent
// Gaussian noise per epoch, then chi-square tested against its weighted
// mean, exactly as the real star was.
//
// Returns the detected fraction and, for the binaries that escaped
// detection, their weighted-mean unit-mass offsets.
func detect(tmpl [][]float64, sig, w []float64, sumw, pmass, pfalse float64,
	rnd *rand.Rand) (pdet float64, offsets []float64) {

	n := len(tmpl[0])
	cbrtm := math.Cbrt(pmass)
	obs := make([]float64, len(sig))
	offsets = make([]float64, 0, n)
	var ndet int
	for i := 0; i < n; i++ {
		var wobs, wtmpl float64
		for j := range sig {
			t := tmpl[j][i]
			o := t*cbrtm + rnd.NormFloat64()*sig[j]
			obs[j] = o
			wobs += o * w[j]
			wtmpl += t * w[j]
		}
		mean := wobs / sumw
		var chisq float64
		for j, o := range obs {
			d := o - mean
			chisq += d * d * w[j]
		}
		if chiSquareP(chisq, len(sig)-1) < pfalse {
			ndet++
		} else {
			offsets = append(offsets, wtmpl/sumw)
		}
	}
	return float64(ndet) / float64(n), offsets
}

// chiSquareP returns the upper-tail p-value of a chi-square statistic
// with dof degrees of freedom.
func chiSquareP(chisq float64, dof int) float64 {
	return distuv.ChiSquared{K: float64(dof)}.Survival(chisq)
}

// offsetHistogram bins |offsets| over the positive boundaries with a
// leading zero edge, mirrors the half-histogram about zero and
// normalizes by 2 × sample count × bin width.  Offsets beyond the last
// boundary fall outside the table and are dropped; the normalization
// still counts them, so the densities integrate to the covered fraction.
func offsetHistogram(offsets, vbord []float64) []float64 {
	m := len(vbord)
	row := make([]float64, 2*m)
	if len(offsets) == 0 {
		return row
	}

	dividers := make([]float64, m+1)
	copy(dividers[1:], vbord)
	abs := make([]float64, 0, len(offsets))
	for _, o := range offsets {
		if o = math.Abs(o); o < vbord[m-1] {
			abs = append(abs, o)
		}
	}
	sort.Float64s(abs)
	counts := make([]float64, m)
	if len(abs) > 0 {
		stat.Histogram(counts, dividers, abs, nil)
	}

	norm := 2 * float64(len(offsets))
	for i, c := range counts {
		v := c / norm / (dividers[i+1] - dividers[i])
		row[m-1-i] = v
		row[m+i] = v
	}
	return row
}

// broadcastStar aligns one star's epoch, velocity and uncertainty arrays,
// expanding any of length 1 to the common length.
func broadcastStar(epochs, vel, sig []float64) (e, v, s []float64, err error) {
	n := len(epochs)
	if len(vel) > n {
		n = len(vel)
	}
	if len(sig) > n {
		n = len(sig)
	}
	if e, err = broadcast("dates", epochs, n); err != nil {
		return nil, nil, nil, err
	}
	if v, err = broadcast("velocity", vel, n); err != nil {
		return nil, nil, nil, err
	}
	if s, err = broadcast("sigvel", sig, n); err != nil {
		return nil, nil, nil, err
	}
	return e, v, s, nil
}
