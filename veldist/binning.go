package veldist

import "math"

// Binning sets the logarithmically spaced velocity bin layout, in log10
// of km/s.  Positive boundaries run from 10^LogMin up to, but excluding,
// 10^LogMax in steps of LogStep, and are mirrored about zero into the
// full symmetric table.
//
// LogMin should sit well below the velocity dispersion of interest.  A
// NaN LogMax is resolved by the builder: SingleEpoch uses the largest
// sampled speed, MultiEpoch uses the default of 4.
type Binning struct {
	LogMin  float64
	LogMax  float64
	LogStep float64
}

// DefaultBinning matches the published kernel layout: 1 m/s resolution
// floor, 10⁴ km/s ceiling, 0.02 dex steps.
var DefaultBinning = Binning{LogMin: -3, LogMax: 4, LogStep: 0.02}

// bounds returns the strictly increasing positive boundaries
// 10^(LogMin + i·LogStep) for i in [0, ceil((LogMax-LogMin)/LogStep)),
// excluding LogMax itself.
func (b Binning) bounds() []float64 {
	n := int(math.Ceil((b.LogMax - b.LogMin) / b.LogStep))
	if n < 1 {
		n = 1
	}
	v := make([]float64, n)
	for i := range v {
		v[i] = math.Pow(10, b.LogMin+float64(i)*b.LogStep)
	}
	return v
}

// mirror builds the full two-sided boundary array [-v_m..-v_1, 0, v_1..v_m]
// from the positive boundaries.  The result is strictly increasing and
// symmetric about zero.
func mirror(vbord []float64) []float64 {
	m := len(vbord)
	full := make([]float64, 2*m+1)
	for i, v := range vbord {
		full[m-1-i] = -v
		full[m+1+i] = v
	}
	full[m] = 0
	return full
}
