package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealizedVolatilityInsufficientData(t *testing.T) {
	cases := [][]float64{
		nil,
		{},
		{1.0},
		{1.0, 1.01},
		{1.0, 1.01, 1.02, 1.03},
	}
	for _, prices := range cases {
		assert.Nil(t, RealizedVolatility(prices), "len=%d", len(prices))
	}
}

func TestRealizedVolatilityFlatSeries(t *testing.T) {
	prices := []float64{1.25, 1.25, 1.25, 1.25, 1.25, 1.25}
	vol := RealizedVolatility(prices)
	require.NotNil(t, vol)
	assert.Equal(t, 0.0, *vol)
}

func TestRealizedVolatilityKnownSeries(t *testing.T) {
	prices := []float64{1.00, 1.01, 1.02, 1.01, 1.00, 1.02}
	vol := RealizedVolatility(prices)
	require.NotNil(t, vol)
	assert.InDelta(t, 21.09, *vol, 1e-9)
}

func TestRealizedVolatilityDeterministic(t *testing.T) {
	prices := []float64{1.00, 1.01, 1.02, 1.01, 1.00, 1.02}
	a := RealizedVolatility(prices)
	b := RealizedVolatility(prices)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)
}

func TestRealizedVolatilityNonNegative(t *testing.T) {
	series := [][]float64{
		{1.00, 0.99, 0.98, 0.99, 1.00},
		{100, 101, 99, 102, 98, 103},
		{0.92, 0.921, 0.919, 0.922, 0.918, 0.923},
	}
	for _, prices := range series {
		vol := RealizedVolatility(prices)
		require.NotNil(t, vol)
		assert.GreaterOrEqual(t, *vol, 0.0)
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2349))
	assert.Equal(t, 1.24, round2(1.236))
	assert.Equal(t, -1.6, round2(-1.6))
	assert.Equal(t, 0.123, round3(0.12349))
	assert.Equal(t, 1.0875, round4(1.08751))
}
