package dustfs

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/thejhh/dustfs/internal/cast"
)

// Helper is a block helper stored in a Context. It receives the value of the
// block and alternating key/value params, and returns the value the block is
// rendered against:
//
//	{{ with call .replace .status "from" "draft" "to" "pending" }}{{ . }}{{ end }}
//
// with skips its block when the result is empty ("", 0, nil). To render the
// block against every result, bind it to a variable instead:
//
//	{{ $s := call .replace .status "from" "draft" "to" "pending" }}<b>{{ $s }}</b>
type Helper func(value any, params ...any) (any, error)

// Helper names added by CreateContext.
const (
	HelperReplace = "replace"
	HelperToFixed = "toFixed"
)

const maxFixedDigits = 100

// Params holds the key/value params passed to a Helper.
type Params map[string]any

// ParseParams turns alternating key/value arguments into Params.
func ParseParams(kv ...any) (Params, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("%w: helper params must be key/value pairs, got %d values", ErrInvalidArgument, len(kv))
	}
	p := make(Params, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: helper param key %d is %T, want string", ErrInvalidArgument, i/2, kv[i])
		}
		p[key] = kv[i+1]
	}
	return p, nil
}

// present reports whether key holds a value that is set and not empty.
func (p Params) present(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Bool:
		return !rv.IsZero()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return !rv.IsZero()
	default:
		return true
	}
}

// replaceHelper substitutes "to" when both "from" and "to" are set and the value strictly equals "from".
func replaceHelper(value any, kv ...any) (any, error) {
	p, err := ParseParams(kv...)
	if err != nil {
		return nil, err
	}
	if p.present("from") && p.present("to") && strictEqual(value, p["from"]) {
		return p["to"], nil
	}
	return value, nil
}

// strictEqual compares values of the same dynamic comparable type.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// toFixedHelper formats the value as a float with "x" digits after the decimal point (default 0).
func toFixedHelper(value any, kv ...any) (any, error) {
	p, err := ParseParams(kv...)
	if err != nil {
		return nil, err
	}
	digits := 0.0
	if p.present("x") {
		var ok bool
		digits, ok = cast.ToInteger(p["x"])
		if !ok {
			return nil, fmt.Errorf("%w: toFixed: x must be a number, got %T", ErrInvalidArgument, p["x"])
		}
	}
	if digits < 0 || digits > maxFixedDigits {
		return nil, fmt.Errorf("%w: toFixed: x must be between 0 and %d, got %v", ErrInvalidArgument, maxFixedDigits, digits)
	}
	return formatFixed(toFloat(value), int(digits)), nil
}

func toFloat(v any) float64 {
	if f, ok := cast.ToFloat64(v); ok {
		return f
	}
	switch x := v.(type) {
	case nil:
		return math.NaN()
	case string:
		return cast.ParseFloatPrefix(x)
	case fmt.Stringer:
		return cast.ParseFloatPrefix(x.String())
	default:
		return cast.ParseFloatPrefix(fmt.Sprint(x))
	}
}

func formatFixed(f float64, digits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	out := roundHalfUp(math.Abs(f), digits)
	if f < 0 {
		return "-" + out
	}
	return out
}

// exactDigits covers every fractional digit of a float64 (the smallest
// subnormal has 1074), so FormatFloat prints the exact binary value.
const exactDigits = 1074

// roundHalfUp formats a non-negative f with digits fractional digits, rounding
// the exact value with ties going up.
func roundHalfUp(f float64, digits int) string {
	exact := strconv.FormatFloat(f, 'f', exactDigits, 64)
	dot := strings.IndexByte(exact, '.')
	buf := []byte(exact[:dot] + exact[dot+1:dot+1+digits])
	if exact[dot+1+digits] >= '5' {
		i := len(buf) - 1
		for ; i >= 0 && buf[i] == '9'; i-- {
			buf[i] = '0'
		}
		if i < 0 {
			buf = append([]byte{'1'}, buf...)
		} else {
			buf[i]++
		}
	}
	whole := len(buf) - digits
	if digits == 0 {
		return string(buf)
	}
	return string(buf[:whole]) + "." + string(buf[whole:])
}
