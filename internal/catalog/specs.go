package catalog

// Parameter describes one argument of a catalog function.
type Parameter struct {
	Name        string
	Type        string // JSON schema type: "string" or "integer"
	Description string
	Required    bool
}

// FunctionSpec is the declarative description of one catalog function.
type FunctionSpec struct {
	Name        string
	Description string
	Parameters  []Parameter
}

// RequiredNames returns the names of the required parameters.
func (s FunctionSpec) RequiredNames() []string {
	var names []string
	for _, p := range s.Parameters {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

const tickerDescription = "The stock ticker symbol for a company (e.g., AAPL for Apple)"

// Spec returns the catalog entry of the operation.
func (o Operation) Spec() FunctionSpec {
	ticker := Parameter{Name: "ticker", Type: "string", Description: tickerDescription, Required: true}
	window := func(indicator string) Parameter {
		return Parameter{
			Name:        "window",
			Type:        "integer",
			Description: "The timeframe to consider when calculating the " + indicator,
			Required:    true,
		}
	}

	switch o {
	case OpGetStockPrice:
		ticker.Description = "The stock ticker symbol for a company (for example AAPL for Apple). Note: FB is renamed to META"
		return FunctionSpec{
			Name:        o.Name(),
			Description: "Gets the latest stock price given the ticker symbol of a company.",
			Parameters:  []Parameter{ticker},
		}
	case OpCalculateSMA:
		return FunctionSpec{
			Name:        o.Name(),
			Description: "Calculate the simple moving average for a given stock ticker and a window.",
			Parameters:  []Parameter{ticker, window("SMA")},
		}
	case OpCalculateEMA:
		return FunctionSpec{
			Name:        o.Name(),
			Description: "Calculate the exponential moving average for a given stock ticker and a window.",
			Parameters:  []Parameter{ticker, window("EMA")},
		}
	case OpCalculateRSI:
		return FunctionSpec{
			Name:        o.Name(),
			Description: "Calculate the RSI for a given stock ticker.",
			Parameters:  []Parameter{ticker},
		}
	case OpCalculateMACD:
		return FunctionSpec{
			Name:        o.Name(),
			Description: "Calculate the MACD for a given stock ticker.",
			Parameters:  []Parameter{ticker},
		}
	}
	return FunctionSpec{}
}

// Specs returns the full static catalog.
func Specs() []FunctionSpec {
	specs := make([]FunctionSpec, len(Operations))
	for i, op := range Operations {
		specs[i] = op.Spec()
	}
	return specs
}

// Topics lists what the assistant can answer questions about.
var Topics = []string{
	"Stock Prices",
	"Simple Moving Averages (SMA)",
	"Exponential Moving Averages (EMA)",
	"Relative Strength Index (RSI)",
	"Moving Average Convergence Divergence (MACD)",
}
