package binaries

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Default, passed for a range limit, selects the limit published with the
// preset.  Tidal, passed for the eccentricity maximum, selects the
// per-binary period-derived cap mimicking tidal circularization.  Both
// are NaN sentinels; any NaN argument behaves the same way.
var (
	Default = math.NaN()
	Tidal   = math.NaN()
)

// PeriodDist names a published orbital period distribution.
type PeriodDist string

// Period presets.  Raghavan10 and DM91 are log-normal over log10(days),
// truncated to [-1, 10]; the rest are power laws in log10(days).
const (
	// Raghavan et al. (2010, ApJS, 190, 1), solar-type field binaries.
	PeriodRaghavan10 PeriodDist = "Raghavan10"
	// Duquennoy & Mayor (1991, A&A, 248, 485), solar-type field binaries.
	PeriodDM91 PeriodDist = "DM91"
	// Sana et al. (2012, Science, 337, 444), Galactic O stars.
	PeriodSana12 PeriodDist = "Sana12"
	// Sana et al. (2013, A&A, 550, 107), 30 Doradus O stars.
	PeriodSana13 PeriodDist = "Sana13"
	// Kiminki & Kobulnicky (2012, ApJ, 751, 4), Cyg OB2 stars.
	PeriodKiminki12 PeriodDist = "Kiminki12"
)

// periodLaw carries the fixed parameters of a period preset.  Log-normal
// parameters and power-law limits are both in log10(days).
type periodLaw struct {
	logNormal bool
	mu, sigma float64
	slope     float64
	min, max  float64
}

var periodLaws = map[PeriodDist]periodLaw{
	PeriodRaghavan10: {logNormal: true, mu: 5.03, sigma: 2.28},
	PeriodDM91:       {logNormal: true, mu: 4.8, sigma: 2.3},
	PeriodSana12:     {slope: -0.55, min: 0.15, max: 3.5},
	PeriodSana13:     {slope: -0.45, min: 0.15, max: 3.5},
	PeriodKiminki12:  {slope: 0.1, min: 0, max: 3},
}

// MassRatioDist names a published mass ratio distribution.  All presets
// are power laws over a fixed mass ratio range.
type MassRatioDist string

const (
	// Flat distribution between 0 and 1.
	MassRatioFlat MassRatioDist = "flat"
	// Reggiani & Meyer (2013, A&A, 553, 124).
	MassRatioReggiani13 MassRatioDist = "Reggiani13"
	// Kiminki & Kobulnicky (2012, ApJ, 751, 4).
	MassRatioKiminki12 MassRatioDist = "Kiminki12"
	// Sana et al. (2012, Science, 337, 444).
	MassRatioSana12 MassRatioDist = "Sana12"
	// Sana et al. (2013, A&A, 550, 107).
	MassRatioSana13 MassRatioDist = "Sana13"
)

type massRatioLaw struct {
	slope    float64
	min, max float64
}

var massRatioLaws = map[MassRatioDist]massRatioLaw{
	MassRatioFlat:       {slope: 0, min: 0, max: 1},
	MassRatioReggiani13: {slope: 0.25, min: 0.1, max: 1},
	MassRatioKiminki12:  {slope: 0.1, min: 0.005, max: 1},
	MassRatioSana12:     {slope: -0.1, min: 0.1, max: 1},
	MassRatioSana13:     {slope: -1, min: 0.1, max: 1},
}

// EccDist names an eccentricity distribution.
type EccDist string

const (
	// Uniform density between emin and emax.
	EccFlat EccDist = "flat"
	// Thermal distribution, density proportional to e².
	EccThermal EccDist = "thermal"
)

// powerLawInv maps a uniform draw u in [0,1) to a variate with density
// proportional to x^slope on [xmin, xmax], by the inverse CDF.
func powerLawInv(u, slope, xmin, xmax float64) float64 {
	if slope == -1 {
		return math.Pow(xmin, 1-u) * math.Pow(xmax, u)
	}
	s1 := slope + 1
	lo := math.Pow(xmin, s1)
	return math.Pow(u*(math.Pow(xmax, s1)-lo)+lo, 1/s1)
}

// DrawPeriod overwrites the periods with draws from the named preset, in
// years.  pmax, in years, overrides the preset's maximum period: for the
// power-law presets it replaces the upper limit, for the log-normal
// presets it tightens the upper truncation point.  Pass Default to keep
// the preset limit.
func (p *Population) DrawPeriod(dist PeriodDist, pmax float64) error {
	law, ok := periodLaws[dist]
	if !ok {
		return fmt.Errorf("%w: period %q", ErrDistributionName, string(dist))
	}
	if law.logNormal {
		lo, hi := -1.0, 10.0
		if !math.IsNaN(pmax) {
			hi = math.Log10(pmax * DaysPerYear)
		}
		// Truncated normal over log10(days) by inverse CDF, so a fixed
		// source reproduces draws without rejection retries.
		norm := distuv.Normal{Mu: law.mu, Sigma: law.sigma}
		clo := norm.CDF(lo)
		chi := norm.CDF(hi)
		for i := range p.Period {
			u := clo + p.rnd.Float64()*(chi-clo)
			p.Period[i] = math.Pow(10, norm.Quantile(u)) / DaysPerYear
		}
		return nil
	}
	hi := law.max
	if !math.IsNaN(pmax) {
		hi = math.Log10(pmax * DaysPerYear)
	}
	for i := range p.Period {
		lp := powerLawInv(p.rnd.Float64(), law.slope, law.min, hi)
		p.Period[i] = math.Pow(10, lp) / DaysPerYear
	}
	return nil
}

// SetPeriods assigns periods verbatim, in years.  The slice must have the
// population length.
func (p *Population) SetPeriods(period []float64) error {
	if err := p.checkLen("period", period); err != nil {
		return err
	}
	copy(p.Period, period)
	return nil
}

// DrawMassRatio overwrites the mass ratios with draws from the named
// preset.  qmin and qmax override the preset range; pass Default to keep
// the preset limits.
func (p *Population) DrawMassRatio(dist MassRatioDist, qmin, qmax float64) error {
	law, ok := massRatioLaws[dist]
	if !ok {
		return fmt.Errorf("%w: mass ratio %q", ErrDistributionName, string(dist))
	}
	if math.IsNaN(qmin) {
		qmin = law.min
	}
	if math.IsNaN(qmax) {
		qmax = law.max
	}
	for i := range p.MassRatio {
		p.MassRatio[i] = powerLawInv(p.rnd.Float64(), law.slope, qmin, qmax)
	}
	return nil
}

// SetMassRatios assigns mass ratios verbatim.  The slice must have the
// population length.
func (p *Population) SetMassRatios(q []float64) error {
	if err := p.checkLen("mass ratio", q); err != nil {
		return err
	}
	copy(p.MassRatio, q)
	return nil
}

// DrawEccentricities overwrites the eccentricities with draws from the
// named distribution on [emin, emax].  Passing Tidal (the default cap)
// for emax derives a per-binary maximum from the current period,
//
//	emax = max(emin, 0.5·(0.95 + tanh(0.6·log10(P days) − 1.7)))
//
// mimicking tidal circularization of close binaries.  The periods must
// already be drawn; redrawing the periods afterwards invalidates
// tidally-capped eccentricities.  This ordering is a caller contract, not
// checked here.
func (p *Population) DrawEccentricities(dist EccDist, emin, emax float64) error {
	if dist != EccFlat && dist != EccThermal {
		return fmt.Errorf("%w: eccentricity %q", ErrDistributionName, string(dist))
	}
	tidal := math.IsNaN(emax)
	for i := range p.Eccentricity {
		hi := emax
		if tidal {
			hi = .5 * (0.95 + math.Tanh(0.6*math.Log10(p.Period[i]*DaysPerYear)-1.7))
			if hi < emin {
				hi = emin
			}
		}
		u := p.rnd.Float64()
		if dist == EccFlat {
			p.Eccentricity[i] = u*(hi-emin) + emin
		} else {
			p.Eccentricity[i] = math.Sqrt(u*(hi*hi-emin*emin) + emin*emin)
		}
	}
	return nil
}

// SetEccentricities assigns eccentricities verbatim.  The slice must have
// the population length.
func (p *Population) SetEccentricities(ecc []float64) error {
	if err := p.checkLen("eccentricity", ecc); err != nil {
		return err
	}
	copy(p.Eccentricity, ecc)
	return nil
}
