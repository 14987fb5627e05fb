package calculator

import "errors"

// EWM smooths values recursively: out[0] = values[0],
// out[i] = alpha*values[i] + (1-alpha)*out[i-1].
func EWM(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// SpanAlpha is the smoothing factor for a span of n periods, 2/(n+1).
func SpanAlpha(span int) float64 {
	return 2.0 / float64(span+1)
}

// EMASeries returns the exponential moving average at every point of closes.
func EMASeries(closes []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, errors.New("window must be a positive integer")
	}
	if len(closes) == 0 {
		return nil, ErrNoData
	}
	return EWM(closes, SpanAlpha(span)), nil
}

// EMA returns the final exponential moving average of closes.
func EMA(closes []float64, span int) (float64, error) {
	series, err := EMASeries(closes, span)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}
