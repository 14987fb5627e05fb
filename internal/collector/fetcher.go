package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"StockChat/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyCloses returns the daily closes of ticker over lookback
	// (e.g. "1y"), oldest first.
	FetchDailyCloses(ctx context.Context, ticker, lookback string) (model.PriceSeries, error)
	Name() string
}

// lookbackDays converts a Yahoo-style range ("5d", "1mo", "1y") into calendar days.
func lookbackDays(lookback string) (int, error) {
	lb := strings.TrimSpace(strings.ToLower(lookback))
	units := []struct {
		suffix string
		days   int
	}{
		{"mo", 30},
		{"d", 1},
		{"wk", 7},
		{"y", 365},
	}
	for _, u := range units {
		if !strings.HasSuffix(lb, u.suffix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(lb, u.suffix))
		if err != nil || n <= 0 {
			break
		}
		return n * u.days, nil
	}
	return 0, fmt.Errorf("unsupported lookback %q", lookback)
}
