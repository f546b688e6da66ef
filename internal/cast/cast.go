// Package cast provides conversion helpers for loosely typed template values.
package cast

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ToFloat64 converts a numeric value to float64. Supports int/uint/float types.
func ToFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case int16:
		return float64(x), true
	case int8:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// ToInteger converts a number, numeric string or bool to a whole number of
// type float64, truncating toward zero. NaN and non-numeric strings become 0;
// infinities are kept. The empty string is 0.
func ToInteger(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		var err error
		f, err = strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, true
		}
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		var ok bool
		f, ok = ToFloat64(v)
		if !ok {
			return 0, false
		}
	}
	if math.IsNaN(f) {
		return 0, true
	}
	return math.Trunc(f), true
}

var floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseFloatPrefix parses the longest leading decimal number of s after
// skipping leading white space, so "3.5px" yields 3.5. Returns NaN when s has
// no numeric prefix.
func ParseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	switch m {
	case "":
		return math.NaN()
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	// On a range error ParseFloat still returns the signed infinity or zero.
	f, _ := strconv.ParseFloat(m, 64)
	return f
}
