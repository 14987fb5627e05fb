package customerrors

import "errors"

var (
	ErrCredentialMissing          = errors.New("oracle credential is missing")
	ErrDataUnavailable            = errors.New("no data available for the given ticker symbol")
	ErrOracleRequestFailed        = errors.New("oracle request failed")
	ErrMalformedFunctionArguments = errors.New("malformed function arguments")
)

// Kind returns a short label for the error kind wrapped by err, or "" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCredentialMissing):
		return "credential_missing"
	case errors.Is(err, ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, ErrOracleRequestFailed):
		return "oracle_request_failed"
	case errors.Is(err, ErrMalformedFunctionArguments):
		return "malformed_function_arguments"
	default:
		return "internal"
	}
}
