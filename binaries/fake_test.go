package binaries_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"velbin/binaries"
)

func drawnPopulation(t *testing.T, n int, seed uint64) *binaries.Population {
	t.Helper()
	p := binaries.New(n, rand.NewSource(seed))
	require.NoError(t, p.DrawPeriod(binaries.PeriodRaghavan10, binaries.Default))
	require.NoError(t, p.DrawMassRatio(binaries.MassRatioFlat, binaries.Default, binaries.Default))
	require.NoError(t, p.DrawEccentricities(binaries.EccFlat, 0, 0.9))
	return p
}

func TestFakeDatasetShape(t *testing.T) {
	p := drawnPopulation(t, 500, 1)
	dates := []float64{0, 0.5, 1.25}
	rv, flags, err := p.FakeDataset(100, 2, 0.5, []float64{0.3}, []float64{1}, dates)
	require.NoError(t, err)
	require.Len(t, rv, len(dates))
	for _, row := range rv {
		require.Len(t, row, 100)
	}
	require.Len(t, flags, 100)
}

func TestFakeDatasetNoBinaries(t *testing.T) {
	// with binary fraction 0 the orbital offset is exactly zero: with
	// dispersion and noise also zero, every observation is zero
	p := drawnPopulation(t, 200, 2)
	rv, flags, err := p.FakeDataset(50, 0, 0, []float64{0}, []float64{1}, []float64{0, 1})
	require.NoError(t, err)
	for _, f := range flags {
		assert.False(t, f)
	}
	for _, row := range rv {
		for _, v := range row {
			assert.Zero(t, v)
		}
	}
}

func TestFakeDatasetPureOrbital(t *testing.T) {
	// uncertainty 0, dispersion 0, binary fraction 1: the observed
	// velocity is exactly the projected orbital offset
	const nvel = 80
	const mass = 2.0
	p := drawnPopulation(t, 300, 3)
	dates := []float64{0, 0.75}

	// expected offsets from the first nvel entries, scaled by mass^(1/3)
	head := binaries.New(nvel, rand.NewSource(99))
	require.NoError(t, head.SetPeriods(p.Period[:nvel]))
	require.NoError(t, head.SetMassRatios(p.MassRatio[:nvel]))
	require.NoError(t, head.SetEccentricities(p.Eccentricity[:nvel]))
	copy(head.Phase, p.Phase[:nvel])
	copy(head.Theta, p.Theta[:nvel])
	copy(head.Inclination, p.Inclination[:nvel])

	rv, flags, err := p.FakeDataset(nvel, 0, 1, []float64{0}, []float64{mass}, dates)
	require.NoError(t, err)
	for _, f := range flags {
		require.True(t, f)
	}
	for d, date := range dates {
		vlos, _ := head.Velocity(1, date)
		for i := 0; i < nvel; i++ {
			assert.InDelta(t, vlos[i]*math.Cbrt(mass), rv[d][i], 1e-12, "epoch %d star %d", d, i)
		}
	}
}

func TestFakeDatasetSystemicOnly(t *testing.T) {
	// one epoch, no binaries, no noise: the column is the systemic draw,
	// identical across repeated epochs
	p := drawnPopulation(t, 100, 4)
	rv, _, err := p.FakeDataset(40, 5, 0, []float64{0}, []float64{1}, []float64{0, 2, 4})
	require.NoError(t, err)
	var spread int
	for i := 0; i < 40; i++ {
		assert.Equal(t, rv[0][i], rv[1][i], "star %d", i)
		assert.Equal(t, rv[0][i], rv[2][i], "star %d", i)
		if rv[0][i] != 0 {
			spread++
		}
	}
	assert.Greater(t, spread, 30) // dispersion 5 actually spreads the stars
}

func TestFakeDatasetErrors(t *testing.T) {
	p := drawnPopulation(t, 50, 5)
	_, _, err := p.FakeDataset(60, 1, 0.5, []float64{0.1}, []float64{1}, []float64{0})
	assert.ErrorIs(t, err, binaries.ErrShapeMismatch)
	_, _, err = p.FakeDataset(20, 1, 0.5, []float64{0.1, 0.2}, []float64{1}, []float64{0})
	assert.ErrorIs(t, err, binaries.ErrShapeMismatch)
	_, _, err = p.FakeDataset(20, 1, 0.5, []float64{0.1}, []float64{1, 2, 3}, []float64{0})
	assert.ErrorIs(t, err, binaries.ErrShapeMismatch)
}
