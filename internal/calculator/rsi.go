package calculator

import (
	"errors"
	"math"
)

// RSI computes the relative strength index over closes. Gains and losses are
// smoothed with alpha = 1/period (centre of mass period-1), seeded from the
// first day-over-day change. A series without any loss resolves to 100;
// fewer than two closes yield NaN.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) == 0 {
		return 0, ErrNoData
	}
	if len(closes) < 2 {
		return math.NaN(), nil
	}

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	alpha := 1.0 / float64(period)
	g := EWM(gains, alpha)
	l := EWM(losses, alpha)
	avgGain, avgLoss := g[len(g)-1], l[len(l)-1]

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
