package reduce

import (
	"errors"
	"math"
	"testing"

	"github.com/colorfulnotion/dreamstats/statserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	m, err := Mean([]float64{10, 20})
	require.NoError(t, err)
	assert.Equal(t, 15.0, m)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestGeomean(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"pair", []float64{2, 8}, 4},
		{"single", []float64{7}, 7},
		{"triple", []float64{1, 10, 100}, 10},
		{"zero", []float64{0, 3, 4}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Geomean(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, g, 1e-9)
		})
	}

	_, err := Geomean([]float64{-1, 2})
	assert.True(t, errors.Is(err, statserrors.ErrRNonPositive))

	_, err = Geomean(nil)
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestGeomeanLargeSeriesStaysFinite(t *testing.T) {
	series := make([]float64, 400)
	for i := range series {
		series[i] = 1e10
	}
	g, err := Geomean(series)
	require.NoError(t, err)
	assert.InEpsilon(t, 1e10, g, 1e-9)
}

func TestRatioZeroDenominator(t *testing.T) {
	_, err := Ratio(1, 0)
	assert.ErrorIs(t, err, ErrUndefined)

	r, err := Ratio(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.75, r)
}

func TestPairwiseRatios(t *testing.T) {
	r, err := PairwiseRatios([]float64{64, 128, 5}, []float64{1, 2}, 32)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, r)

	_, err = PairwiseRatios([]float64{1, 2}, []float64{1, 0}, 1)
	assert.ErrorIs(t, err, ErrUndefined)

	_, err = PairwiseRatios(nil, []float64{1}, 1)
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestPercentagesSumToHundred(t *testing.T) {
	p, err := Percentages([]float64{1, 3, 0, 6})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, Sum(p), 1e-9)
	assert.Equal(t, 30.0, p[1])

	_, err = Percentages([]float64{0, 0})
	assert.ErrorIs(t, err, ErrUndefined)
}

func TestRoundAndFloats(t *testing.T) {
	assert.Equal(t, 0.6667, Round(2.0/3.0, 4))
	assert.Equal(t, 1.0, Round(1.0, 4))
	assert.Equal(t, []float64{1, 2}, Floats([]int{1, 2}))
	assert.False(t, math.IsNaN(Sum(nil)))
}
