package model

import "time"

// Bar is a single daily close.
type Bar struct {
	Time  time.Time
	Close float64
}

// PriceSeries holds the chronologically ordered closes of one ticker.
type PriceSeries struct {
	Ticker    string
	Bars      []Bar
	FetchedAt time.Time
}

// Closes returns the closing prices in order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Empty reports whether the series has no bars.
func (s PriceSeries) Empty() bool { return len(s.Bars) == 0 }
