package collector

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"StockChat/internal/customerrors"
	"StockChat/internal/model"

	"github.com/go-resty/resty/v2"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public chart API.
type YahooFetcher struct {
	Client *resty.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	client := resty.New().
		SetBaseURL(yahooBaseURL).
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "Mozilla/5.0",
		})
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{Client: client}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *YahooFetcher) FetchDailyCloses(ctx context.Context, ticker, lookback string) (model.PriceSeries, error) {
	series := model.PriceSeries{Ticker: ticker}

	var chart, chartErr yahooChart
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    lookback,
		}).
		SetResult(&chart).
		SetError(&chartErr).
		Get("/v8/finance/chart/" + url.PathEscape(ticker))
	if err != nil {
		return series, fmt.Errorf("yahoo fetch: %w", err)
	}
	if resp.IsError() {
		if e := chartErr.Chart.Error; e != nil {
			return series, fmt.Errorf("%w: yahoo %s: %s", customerrors.ErrDataUnavailable, e.Code, e.Description)
		}
		return series, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if e := chart.Chart.Error; e != nil {
		return series, fmt.Errorf("%w: yahoo %s: %s", customerrors.ErrDataUnavailable, e.Code, e.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return series, fmt.Errorf("%w: yahoo returned no result for %s", customerrors.ErrDataUnavailable, ticker)
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bars (holidays, halted sessions)
		}
		bars = append(bars, model.Bar{Time: time.Unix(ts, 0), Close: *closes[i]})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	series.Bars = bars
	series.FetchedAt = time.Now()
	return series, nil
}
