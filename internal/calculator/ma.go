package calculator

import (
	"errors"
	"math"
)

// ErrNoData is returned when an indicator is asked to run on an empty series.
var ErrNoData = errors.New("no closing prices")

// SMA returns the arithmetic mean of the last window closes. A window longer
// than the series yields NaN rather than a truncated average.
func SMA(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be a positive integer")
	}
	if len(closes) == 0 {
		return 0, ErrNoData
	}
	if len(closes) < window {
		return math.NaN(), nil
	}
	sum := 0.0
	for i := len(closes) - window; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(window), nil
}
