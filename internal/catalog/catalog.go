// Package catalog describes the indicator functions the oracle may call and
// maps an oracle function call onto exactly one of them.
package catalog

import "context"

// Operation enumerates the callable indicator functions.
type Operation int

const (
	OpGetStockPrice Operation = iota + 1
	OpCalculateSMA
	OpCalculateEMA
	OpCalculateRSI
	OpCalculateMACD
)

// Operations lists every operation in catalog order.
var Operations = []Operation{
	OpGetStockPrice,
	OpCalculateSMA,
	OpCalculateEMA,
	OpCalculateRSI,
	OpCalculateMACD,
}

// Name is the function name exposed to the oracle.
func (o Operation) Name() string {
	switch o {
	case OpGetStockPrice:
		return "get_stock_price"
	case OpCalculateSMA:
		return "calculate_SMA"
	case OpCalculateEMA:
		return "calculate_EMA"
	case OpCalculateRSI:
		return "calculate_RSI"
	case OpCalculateMACD:
		return "calculate_MACD"
	}
	return ""
}

func (o Operation) String() string { return o.Name() }

// TakesWindow reports whether the operation requires a window argument.
func (o Operation) TakesWindow() bool {
	return o == OpCalculateSMA || o == OpCalculateEMA
}

// Lookup resolves a function name. The catalog is closed: unknown names are rejected.
func Lookup(name string) (Operation, bool) {
	for _, op := range Operations {
		if op.Name() == name {
			return op, true
		}
	}
	return 0, false
}

// Engine is the indicator surface the catalog dispatches to.
type Engine interface {
	GetLatestPrice(ctx context.Context, ticker string) string
	ComputeSMA(ctx context.Context, ticker string, window int) string
	ComputeEMA(ctx context.Context, ticker string, window int) string
	ComputeRSI(ctx context.Context, ticker string) string
	ComputeMACD(ctx context.Context, ticker string) string
}

// Call is a parsed, validated function call.
type Call struct {
	Op     Operation
	Ticker string
	Window int // set only when Op.TakesWindow()
}

// Invoke runs the call against e and returns its textual result.
func Invoke(ctx context.Context, e Engine, c Call) string {
	switch c.Op {
	case OpGetStockPrice:
		return e.GetLatestPrice(ctx, c.Ticker)
	case OpCalculateSMA:
		return e.ComputeSMA(ctx, c.Ticker, c.Window)
	case OpCalculateEMA:
		return e.ComputeEMA(ctx, c.Ticker, c.Window)
	case OpCalculateRSI:
		return e.ComputeRSI(ctx, c.Ticker)
	case OpCalculateMACD:
		return e.ComputeMACD(ctx, c.Ticker)
	}
	panic("catalog: invoke of unknown operation")
}
