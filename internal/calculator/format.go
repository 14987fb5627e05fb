package calculator

import (
	"math"
	"strconv"
	"strings"
)

// FormatValue renders v as the shortest decimal that round-trips, always
// with a fractional part ("150.0"), switching to exponent form outside
// [1e-4, 1e16). NaN and infinities render as "nan", "inf" and "-inf".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
