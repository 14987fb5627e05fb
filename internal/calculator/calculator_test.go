package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCloses = []float64{
	44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08,
	45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41, 46.22, 45.64,
	46.21, 46.25, 45.71, 46.45, 45.78, 45.35, 44.03, 44.18, 44.22, 44.57,
}

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name   string
		window int
		want   float64
	}{
		{"last two", 2, 4.5},
		{"full series", 5, 3},
		{"single", 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SMA(closes, tt.window)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestSMA_FullWindowIsSeriesMean(t *testing.T) {
	sum := 0.0
	for _, c := range sampleCloses {
		sum += c
	}
	got, err := SMA(sampleCloses, len(sampleCloses))
	require.NoError(t, err)
	assert.InDelta(t, sum/float64(len(sampleCloses)), got, 1e-9)
}

func TestSMA_WindowLongerThanSeriesIsNaN(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3}, 4)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestSMA_InvalidInput(t *testing.T) {
	_, err := SMA([]float64{1, 2}, 0)
	assert.Error(t, err)
	_, err = SMA(nil, 3)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestEMA_SeededFromFirstValue(t *testing.T) {
	series, err := EMASeries([]float64{1, 2, 3}, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1.5, 2.25}, series, 1e-12)
}

func TestEMA_WindowOneIsLatestClose(t *testing.T) {
	got, err := EMA(sampleCloses, 1)
	require.NoError(t, err)
	assert.Equal(t, sampleCloses[len(sampleCloses)-1], got)
}

func TestEMA_InvalidInput(t *testing.T) {
	_, err := EMA([]float64{1}, -1)
	assert.Error(t, err)
	_, err = EMA(nil, 5)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRSI_KnownValue(t *testing.T) {
	// gains [1, 0], losses [0, 1], alpha 1/14
	got, err := RSI([]float64{1, 2, 1}, 14)
	require.NoError(t, err)
	assert.InDelta(t, 100-100.0/14, got, 1e-9)
}

func TestRSI_NoLossesIsHundred(t *testing.T) {
	got, err := RSI([]float64{1, 2, 3, 4, 5}, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	flat, err := RSI([]float64{7, 7, 7}, 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, flat)
}

func TestRSI_OnlyLossesIsZero(t *testing.T) {
	got, err := RSI([]float64{5, 4, 3}, 14)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestRSI_Bounded(t *testing.T) {
	for n := 3; n <= len(sampleCloses); n++ {
		got, err := RSI(sampleCloses[:n], 14)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestRSI_SingleCloseIsNaN(t *testing.T) {
	got, err := RSI([]float64{10}, 14)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestMACD_KnownValue(t *testing.T) {
	got, err := MACD([]float64{1, 2}, 12, 26, 9)
	require.NoError(t, err)
	assert.InDelta(t, 28.0/351, got.MACD, 1e-12)
	assert.InDelta(t, 5.6/351, got.Signal, 1e-12)
	assert.InDelta(t, 22.4/351, got.Histogram, 1e-12)
}

func TestMACD_HistogramIdentity(t *testing.T) {
	got, err := MACD(sampleCloses, 12, 26, 9)
	require.NoError(t, err)
	assert.Equal(t, got.MACD-got.Signal, got.Histogram)
}

func TestMACD_FlatSeriesIsZero(t *testing.T) {
	got, err := MACD([]float64{50, 50, 50, 50}, 12, 26, 9)
	require.NoError(t, err)
	assert.Equal(t, MACDResult{}, got)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{150, "150.0"},
		{189.83999633789062, "189.83999633789062"},
		{-2.5, "-2.5"},
		{0, "0.0"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.in))
	}
}
