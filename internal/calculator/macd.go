package calculator

import "errors"

// MACDResult holds the final values of the MACD line, its signal line and the histogram.
type MACDResult struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes the fast-slow EMA difference, its signal EMA and the histogram.
func MACD(closes []float64, fast, slow, signal int) (MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDResult{}, errors.New("spans must be positive")
	}
	if len(closes) == 0 {
		return MACDResult{}, ErrNoData
	}
	short := EWM(closes, SpanAlpha(fast))
	long := EWM(closes, SpanAlpha(slow))

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = short[i] - long[i]
	}
	sig := EWM(line, SpanAlpha(signal))

	last := len(closes) - 1
	return MACDResult{
		MACD:      line[last],
		Signal:    sig[last],
		Histogram: line[last] - sig[last],
	}, nil
}
