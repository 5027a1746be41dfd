package nicenum

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		want      string
		num       float64
		precision float64
	}{
		{"2", 2, 3},
		{"0", 0, 3},
		{"23,456,789", 23456789, 3},
		{"-23,456,789", -23456789, 3},
		{"124,000", 123567.0, 1000},
		{"120,000", 123567.0, 10000},
		{"123,567.0", 123567.0, 0.1},
		{"0.000 000 539 2", 5.3918e-07, 1e-10},
		{"123", 123, 1},
		{"0.5", 0.5, 0.1},
		{"-0.5", -0.5, 0.1},
		{"0", 0.0001, 1},
		{"1,000", 999.6, 1},
		{"7", 7, 0},
		{"100,000,000,000,000,000,000", 1e20, 1},
		{"-100,000,000,000,000,000,000", -1e20, 1},
		{"10,000,000,000,000,000,000", 1e19, 1},
		{"10,000,000,000,000,000,000,000", 1e22, 1},
		{"100,000,000,000,000,000,000", 1e20, 1000},
		{"NaN", math.NaN(), 1},
		{"+Inf", math.Inf(1), 1},
		{"-Inf", math.Inf(-1), 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Format(tc.num, tc.precision), "Format(%v, %v)", tc.num, tc.precision)
	}
}

func TestFormat_IntegerPartBeyondInt64(t *testing.T) {
	got := Format(123456789012, 1e-10)
	assert.True(t, strings.HasPrefix(got, "123,456,789,012."), "Format = %q", got)
	assert.Len(t, got, len("123,456,789,012.")+len("000 000 000 0"))
}

func TestDecimalExponent(t *testing.T) {
	tests := map[float64]int{
		1:      0,
		3:      0,
		10:     1,
		1000:   3,
		9999:   3,
		0.1:    -1,
		0.01:   -2,
		1e-10:  -10,
		2.5e-7: -7,
	}
	for p, want := range tests {
		assert.Equal(t, want, decimalExponent(p), "decimalExponent(%v)", p)
	}
}

func TestFormatMemory(t *testing.T) {
	tests := []struct {
		want string
		val  float64
	}{
		{"2.0B", 2},
		{"1023.0B", 1023},
		{"1.0KB", 1024},
		{"1.95KB", 2000},
		{"1.0MB", MB},
		{"1.91MB", 2000000},
		{"1.0GB", GB},
		{"1.86GB", 2000000000},
		{"1862.65GB", 2000000000000},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatMemory(tc.val), "FormatMemory(%v)", tc.val)
	}
}
