// Package nicenum formats numbers for tables read by people: rounded to a
// precision with digit grouping, and byte counts with binary units.
package nicenum

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Format rounds num to the decimal power of precision and groups digits
// in threes: commas above the decimal point, spaces below it.
//
//	Format(123567, 1000)     // "124,000"
//	Format(123567, 0.1)      // "123,567.0"
//	Format(5.3918e-07, 1e-10) // "0.000 000 539 2"
//
// Only the power of ten of precision matters. Non-positive precision is
// treated as 1. NaN and infinite values are rendered as by strconv.
func Format(num, precision float64) string {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return strconv.FormatFloat(num, 'g', -1, 64)
	}
	if precision <= 0 || math.IsNaN(precision) || math.IsInf(precision, 0) {
		precision = 1
	}
	accpow := decimalExponent(precision)

	scaled := num / math.Pow10(accpow)
	if math.IsInf(scaled, 0) {
		return strconv.FormatFloat(num, 'g', -1, 64)
	}
	rounded, _ := big.NewFloat(math.Abs(scaled) + 0.5).Int(nil)
	if rounded.Sign() == 0 {
		return "0"
	}
	digits := rounded.Text(10)

	// Built right to left, so each piece is prepended.
	var parts []string
	push := func(s string) { parts = append(parts, s) }
	size := 0
	for i := range accpow {
		if i%3 == 0 && i > 0 {
			push("0,")
		} else {
			push("0")
		}
		size++
	}

	curpow := accpow
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i : i+1]
		switch {
		case curpow%3 == 0 && curpow != 0 && size > 0:
			if curpow < 0 {
				push(d + " ")
			} else {
				push(d + ",")
			}
		case curpow == 0 && size > 0:
			push(d + ".")
		default:
			push(d)
		}
		size++
		curpow++
	}
	for i := curpow; i < 0; i++ {
		if i%3 == 0 {
			push("0 ")
		} else {
			push("0")
		}
	}
	if curpow <= 0 {
		push("0.")
	}
	if num < 0 {
		push("-")
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}

// decimalExponent returns floor(log10(p)) corrected for rounding in Log10.
func decimalExponent(p float64) int {
	e := int(math.Floor(math.Log10(p)))
	for math.Pow10(e) > p {
		e--
	}
	for math.Pow10(e+1) <= p {
		e++
	}
	return e
}

// Binary memory units.
const (
	KB = 1024
	MB = KB * 1024
	GB = MB * 1024
)

// FormatMemory renders a byte count in B, KB, MB, or GB rounded to two
// decimal places, always keeping at least one decimal: 2 is "2.0B" and
// 2000 is "1.95KB". Each unit starts at its own size, so 1024 is "1.0KB".
// Values of a terabyte and above stay in GB.
func FormatMemory(bytes float64) string {
	val, label := bytes, "B"
	switch abs := math.Abs(bytes); {
	case abs < KB:
	case abs < MB:
		val, label = bytes/KB, "KB"
	case abs < GB:
		val, label = bytes/MB, "MB"
	default:
		val, label = bytes/GB, "GB"
	}

	s := strconv.FormatFloat(math.Round(val*100)/100, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s + label
}
