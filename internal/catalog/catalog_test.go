package catalog

import (
	"context"
	"fmt"
	"testing"

	"StockChat/internal/customerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEngine struct {
	calls []string
}

func (e *recordingEngine) record(format string, args ...any) string {
	s := fmt.Sprintf(format, args...)
	e.calls = append(e.calls, s)
	return s
}

func (e *recordingEngine) GetLatestPrice(_ context.Context, ticker string) string {
	return e.record("price %s", ticker)
}
func (e *recordingEngine) ComputeSMA(_ context.Context, ticker string, window int) string {
	return e.record("sma %s %d", ticker, window)
}
func (e *recordingEngine) ComputeEMA(_ context.Context, ticker string, window int) string {
	return e.record("ema %s %d", ticker, window)
}
func (e *recordingEngine) ComputeRSI(_ context.Context, ticker string) string {
	return e.record("rsi %s", ticker)
}
func (e *recordingEngine) ComputeMACD(_ context.Context, ticker string) string {
	return e.record("macd %s", ticker)
}

func TestSpecs_CoverEveryOperation(t *testing.T) {
	specs := Specs()
	require.Len(t, specs, 5)

	names := map[string]bool{}
	for i, s := range specs {
		names[s.Name] = true
		op, ok := Lookup(s.Name)
		require.True(t, ok, s.Name)
		assert.Equal(t, Operations[i], op)
		assert.NotEmpty(t, s.Description)

		want := []string{"ticker"}
		if op.TakesWindow() {
			want = append(want, "window")
		}
		assert.Equal(t, want, s.RequiredNames(), s.Name)
	}
	for _, n := range []string{"get_stock_price", "calculate_SMA", "calculate_EMA", "calculate_RSI", "calculate_MACD"} {
		assert.True(t, names[n], n)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("calculate_VWAP")
	assert.False(t, ok)
}

func TestParseCall_Valid(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		args string
		want Call
	}{
		{"price", "get_stock_price", `{"ticker":"AAPL"}`, Call{Op: OpGetStockPrice, Ticker: "AAPL"}},
		{"sma int", "calculate_SMA", `{"ticker":"TSLA","window":20}`, Call{Op: OpCalculateSMA, Ticker: "TSLA", Window: 20}},
		{"ema float", "calculate_EMA", `{"ticker":"MSFT","window":50.0}`, Call{Op: OpCalculateEMA, Ticker: "MSFT", Window: 50}},
		{"ema string", "calculate_EMA", `{"ticker":"MSFT","window":"9"}`, Call{Op: OpCalculateEMA, Ticker: "MSFT", Window: 9}},
		{"rsi ignores window", "calculate_RSI", `{"ticker":"NVDA","window":5}`, Call{Op: OpCalculateRSI, Ticker: "NVDA"}},
		{"macd", "calculate_MACD", `{"ticker":" META "}`, Call{Op: OpCalculateMACD, Ticker: "META"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCall(tt.fn, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCall_Malformed(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		args string
	}{
		{"missing window", "calculate_SMA", `{"ticker":"TSLA"}`},
		{"missing ticker", "calculate_RSI", `{}`},
		{"empty ticker", "get_stock_price", `{"ticker":""}`},
		{"ticker not string", "get_stock_price", `{"ticker":42}`},
		{"fractional window", "calculate_EMA", `{"ticker":"TSLA","window":2.5}`},
		{"zero window", "calculate_SMA", `{"ticker":"TSLA","window":0}`},
		{"null window", "calculate_SMA", `{"ticker":"TSLA","window":null}`},
		{"bad json", "calculate_SMA", `{"ticker":`},
		{"unknown function", "calculate_VWAP", `{"ticker":"TSLA"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCall(tt.fn, tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, customerrors.ErrMalformedFunctionArguments)
		})
	}
}

func TestInvoke_RoutesEveryOperation(t *testing.T) {
	e := &recordingEngine{}
	ctx := context.Background()

	assert.Equal(t, "price AAPL", Invoke(ctx, e, Call{Op: OpGetStockPrice, Ticker: "AAPL"}))
	assert.Equal(t, "sma AAPL 20", Invoke(ctx, e, Call{Op: OpCalculateSMA, Ticker: "AAPL", Window: 20}))
	assert.Equal(t, "ema AAPL 12", Invoke(ctx, e, Call{Op: OpCalculateEMA, Ticker: "AAPL", Window: 12}))
	assert.Equal(t, "rsi AAPL", Invoke(ctx, e, Call{Op: OpCalculateRSI, Ticker: "AAPL"}))
	assert.Equal(t, "macd AAPL", Invoke(ctx, e, Call{Op: OpCalculateMACD, Ticker: "AAPL"}))
	assert.Len(t, e.calls, 5)
}
