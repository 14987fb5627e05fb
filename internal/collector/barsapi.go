package collector

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"StockChat/internal/model"

	"github.com/go-resty/resty/v2"
)

// BarsAPIFetcher implements Fetcher against a self-hosted daily bars REST API.
type BarsAPIFetcher struct {
	Client *resty.Client
}

// NewBarsAPIFetcher creates a new fetcher with optional bearer key and proxy.
func NewBarsAPIFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *BarsAPIFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &BarsAPIFetcher{Client: client}
}

func (f *BarsAPIFetcher) Name() string { return "bars-api" }

// apiBar is the expected JSON shape from the bars API.
type apiBar struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
}

func (f *BarsAPIFetcher) FetchDailyCloses(ctx context.Context, ticker, lookback string) (model.PriceSeries, error) {
	series := model.PriceSeries{Ticker: ticker}
	days, err := lookbackDays(lookback)
	if err != nil {
		return series, err
	}

	var raw []apiBar
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": ticker,
			"limit":  strconv.Itoa(days),
		}).
		SetResult(&raw).
		Get("/api/v1/bars/daily")
	if err != nil {
		return series, fmt.Errorf("fetch bars: %w", err)
	}
	if resp.IsError() {
		return series, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	bars := make([]model.Bar, 0, len(raw))
	for _, b := range raw {
		t := time.Unix(b.Timestamp, 0)
		if t.Before(cutoff) {
			continue
		}
		bars = append(bars, model.Bar{Time: t, Close: b.Close})
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	series.Bars = bars
	series.FetchedAt = time.Now()
	return series, nil
}
