package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"StockChat/internal/customerrors"
)

// ParseCall maps an oracle function call onto a Call. Only the arguments the
// operation's signature needs are read; anything else is ignored.
func ParseCall(name, argumentsJSON string) (Call, error) {
	op, ok := Lookup(name)
	if !ok {
		return Call{}, fmt.Errorf("%w: unknown function %q", customerrors.ErrMalformedFunctionArguments, name)
	}

	var args map[string]json.RawMessage
	if err := json.Unmarshal([]byte(argumentsJSON), &args); err != nil {
		return Call{}, fmt.Errorf("%w: %s: %v", customerrors.ErrMalformedFunctionArguments, name, err)
	}

	call := Call{Op: op}

	ticker, err := stringArg(args, "ticker")
	if err != nil {
		return Call{}, fmt.Errorf("%w: %s: %v", customerrors.ErrMalformedFunctionArguments, name, err)
	}
	call.Ticker = ticker

	if op.TakesWindow() {
		window, err := intArg(args, "window")
		if err != nil {
			return Call{}, fmt.Errorf("%w: %s: %v", customerrors.ErrMalformedFunctionArguments, name, err)
		}
		if window <= 0 {
			return Call{}, fmt.Errorf("%w: %s: window must be positive, got %d",
				customerrors.ErrMalformedFunctionArguments, name, window)
		}
		call.Window = window
	}
	return call, nil
}

func stringArg(args map[string]json.RawMessage, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%q must be a string", key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%q is empty", key)
	}
	return s, nil
}

// intArg accepts a JSON integer, an integral float (20.0) or a numeric string ("20").
func intArg(args map[string]json.RawMessage, key string) (int, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, fmt.Errorf("%q must be an integer", key)
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%q must be an integer", key)
		}
		return n, nil
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q must be an integer", key)
	}
	return int(f), nil
}
