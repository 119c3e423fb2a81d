package veldist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounds(t *testing.T) {
	b := Binning{LogMin: -1, LogMax: 1, LogStep: 0.5}
	v := b.bounds()
	require.Len(t, v, 4)
	want := []float64{0.1, math.Pow(10, -0.5), 1, math.Pow(10, 0.5)}
	for i := range want {
		assert.InDelta(t, want[i], v[i], 1e-12)
	}
	// LogMax itself is excluded
	assert.Less(t, v[len(v)-1], math.Pow(10, b.LogMax))
}

func TestBoundsDefault(t *testing.T) {
	v := DefaultBinning.bounds()
	assert.Len(t, v, 350) // ceil((4 - -3)/0.02)
	assert.InDelta(t, 1e-3, v[0], 1e-15)
}

func TestMirror(t *testing.T) {
	full := mirror([]float64{1, 2, 4})
	require.Equal(t, []float64{-4, -2, -1, 0, 1, 2, 4}, full)
	for i := 1; i < len(full); i++ {
		assert.Greater(t, full[i], full[i-1])
	}
}

func TestOffsetHistogram(t *testing.T) {
	vbord := Binning{LogMin: -1, LogMax: 1, LogStep: 0.5}.bounds()
	offsets := []float64{0.05, 0.2, -0.2, 2.0, 5.0} // 5.0 falls off the table
	row := offsetHistogram(offsets, vbord)
	require.Len(t, row, 8)

	// counts 1,2,0,1 over the positive bins, normalized by
	// 2·len(offsets)·width and mirrored
	w0 := vbord[0]
	w1 := vbord[1] - vbord[0]
	w3 := vbord[3] - vbord[2]
	assert.InDelta(t, 1/(10*w0), row[4], 1e-12)
	assert.InDelta(t, 2/(10*w1), row[5], 1e-12)
	assert.Zero(t, row[6])
	assert.InDelta(t, 1/(10*w3), row[7], 1e-12)
	for i := 0; i < 4; i++ {
		assert.Equal(t, row[7-i], row[i], "mirror bin %d", i)
	}
}

func TestOffsetHistogramEmpty(t *testing.T) {
	vbord := DefaultBinning.bounds()
	row := offsetHistogram(nil, vbord)
	require.Len(t, row, 2*len(vbord))
	for _, v := range row {
		assert.Zero(t, v)
	}
}
