package cast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat64(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    any
		want float64
		ok   bool
	}{
		{"float64", float64(1.5), 1.5, true},
		{"float32", float32(2.5), 2.5, true},
		{"int", 3, 3, true},
		{"int64", int64(4), 4, true},
		{"int32", int32(5), 5, true},
		{"int16", int16(6), 6, true},
		{"int8", int8(7), 7, true},
		{"uint", uint(8), 8, true},
		{"uint8", uint8(9), 9, true},
		{"uint16", uint16(10), 10, true},
		{"uint32", uint32(11), 11, true},
		{"uint64", uint64(12), 12, true},
		{"string", "1.0", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ToFloat64(tt.v)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestToInteger(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		v    any
		want float64
		ok   bool
	}{
		{"int", 2, 2, true},
		{"uint64", uint64(7), 7, true},
		{"float truncates", 2.7, 2, true},
		{"negative float truncates toward zero", -2.7, -2, true},
		{"NaN", math.NaN(), 0, true},
		{"infinity", math.Inf(1), math.Inf(1), true},
		{"decimal string", "12", 12, true},
		{"fractional string", "2.7", 2, true},
		{"padded string", " 3 ", 3, true},
		{"empty string", "", 0, true},
		{"non-numeric string", "two", 0, true},
		{"partly numeric string", "2px", 0, true},
		{"true", true, 1, true},
		{"false", false, 0, true},
		{"nil", nil, 0, false},
		{"slice", []int{1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ToInteger(tt.v)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseFloatPrefix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"integer", "3", 3},
		{"decimal", "3.14159", 3.14159},
		{"leading dot", ".5", 0.5},
		{"trailing dot", "2.", 2},
		{"negative", "-1.25", -1.25},
		{"exponent", "1e3", 1000},
		{"suffix ignored", "3.5px", 3.5},
		{"leading space", "  42", 42},
		{"infinity", "Infinity", math.Inf(1)},
		{"negative infinity", "-Infinity", math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseFloatPrefix(tt.in))
		})
	}
}

func TestParseFloatPrefix_NaN(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "abc", "px3", "-", "."} {
		assert.True(t, math.IsNaN(ParseFloatPrefix(in)), "input %q", in)
	}
}
