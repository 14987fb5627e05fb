package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockChat/internal/calculator"
	"StockChat/internal/customerrors"
	"StockChat/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	// RSIPeriod is the fixed RSI lookback.
	RSIPeriod = 14
	// MACD spans.
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9

	noDataMessage = "No data available for the given ticker symbol."
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Closes []float64
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, ticker, _ string) (model.PriceSeries, error) {
	m.Calls++
	series := model.PriceSeries{Ticker: ticker, FetchedAt: time.Now()}
	if m.Err != nil {
		return series, m.Err
	}
	start := time.Now().AddDate(0, 0, -len(m.Closes))
	for i, c := range m.Closes {
		series.Bars = append(series.Bars, model.Bar{Time: start.AddDate(0, 0, i), Close: c})
	}
	return series, nil
}

// Collector fetches one ticker's closes and computes a single indicator per
// call. Every result, including failures, is rendered as text.
type Collector struct {
	Fetcher  Fetcher
	Lookback string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookback string) *Collector {
	if lookback == "" {
		lookback = "1y"
	}
	return &Collector{Fetcher: fetcher, Lookback: lookback}
}

// GetLatestPrice returns the last close of the series.
func (c *Collector) GetLatestPrice(ctx context.Context, ticker string) string {
	closes, err := c.closes(ctx, ticker)
	if err != nil {
		return describe(err)
	}
	return calculator.FormatValue(closes[len(closes)-1])
}

// ComputeSMA returns the simple moving average over the last window closes.
func (c *Collector) ComputeSMA(ctx context.Context, ticker string, window int) string {
	closes, err := c.closes(ctx, ticker)
	if err != nil {
		return describe(err)
	}
	v, err := calculator.SMA(closes, window)
	if err != nil {
		return describe(err)
	}
	return calculator.FormatValue(v)
}

// ComputeEMA returns the exponential moving average with span window.
func (c *Collector) ComputeEMA(ctx context.Context, ticker string, window int) string {
	closes, err := c.closes(ctx, ticker)
	if err != nil {
		return describe(err)
	}
	v, err := calculator.EMA(closes, window)
	if err != nil {
		return describe(err)
	}
	return calculator.FormatValue(v)
}

// ComputeRSI returns the 14-period relative strength index.
func (c *Collector) ComputeRSI(ctx context.Context, ticker string) string {
	closes, err := c.closes(ctx, ticker)
	if err != nil {
		return describe(err)
	}
	v, err := calculator.RSI(closes, RSIPeriod)
	if err != nil {
		return describe(err)
	}
	return calculator.FormatValue(v)
}

// ComputeMACD returns "macd, signal, histogram" for spans 12/26/9.
func (c *Collector) ComputeMACD(ctx context.Context, ticker string) string {
	closes, err := c.closes(ctx, ticker)
	if err != nil {
		return describe(err)
	}
	m, err := calculator.MACD(closes, MACDFast, MACDSlow, MACDSignal)
	if err != nil {
		return describe(err)
	}
	return fmt.Sprintf("%s, %s, %s",
		calculator.FormatValue(m.MACD),
		calculator.FormatValue(m.Signal),
		calculator.FormatValue(m.Histogram))
}

func (c *Collector) closes(ctx context.Context, ticker string) ([]float64, error) {
	series, err := c.Fetcher.FetchDailyCloses(ctx, ticker, c.Lookback)
	if err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Str("source", c.Fetcher.Name()).Msg("fetch daily closes failed")
		return nil, err
	}
	if series.Empty() {
		return nil, fmt.Errorf("%w: %s", customerrors.ErrDataUnavailable, ticker)
	}
	log.Debug().Str("ticker", ticker).Int("bars", len(series.Bars)).Msg("fetched daily closes")
	return series.Closes(), nil
}

func describe(err error) string {
	if errors.Is(err, customerrors.ErrDataUnavailable) || errors.Is(err, calculator.ErrNoData) {
		return noDataMessage
	}
	return "An error occurred: " + err.Error()
}
