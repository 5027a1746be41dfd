package testhelp

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/jonwraymond/utilkit/compare"
)

type tHelper interface {
	Helper()
}

func helper(t assert.TestingT) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
}

// Number is the set of types AssertNumbersEqual accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// AssertBetween asserts lo < v < hi, or lo <= v <= hi when inclusive.
func AssertBetween[T cmp.Ordered](t assert.TestingT, lo, v, hi T, inclusive bool, msgAndArgs ...any) bool {
	helper(t)
	ok := lo < v && v < hi
	op := "<"
	if inclusive {
		ok = lo <= v && v <= hi
		op = "<="
	}
	if ok {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("expected %v %s %v %s %v", lo, op, v, op, hi), msgAndArgs...)
}

func absDiff[T Number](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}

// AssertNumbersEqual asserts |a - b| <= tolerance.
func AssertNumbersEqual[T Number](t assert.TestingT, a, b, tolerance T, msgAndArgs ...any) bool {
	helper(t)
	if absDiff(a, b) <= tolerance {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("%v != %v (tolerance %v)", a, b, tolerance), msgAndArgs...)
}

// AssertNumberSequencesEqual asserts a and b have the same length and
// pairwise equal elements within tolerance.
func AssertNumberSequencesEqual[T Number](t assert.TestingT, a, b []T, tolerance T, msgAndArgs ...any) bool {
	helper(t)
	if len(a) != len(b) {
		return assert.Fail(t, fmt.Sprintf("sequence length mismatch, a: %v, b: %v", a, b), msgAndArgs...)
	}
	for i := range a {
		if absDiff(a[i], b[i]) > tolerance {
			return assert.Fail(t, fmt.Sprintf("%v != %v (element %d)", a, b, i), msgAndArgs...)
		}
	}
	return true
}

// AssertStartsWith asserts s has the given prefix.
func AssertStartsWith(t assert.TestingT, s, prefix string, msgAndArgs ...any) bool {
	helper(t)
	if strings.HasPrefix(s, prefix) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("%q must start with %q", s, prefix), msgAndArgs...)
}

// AssertEndsWith asserts s has the given suffix.
func AssertEndsWith(t assert.TestingT, s, suffix string, msgAndArgs ...any) bool {
	helper(t)
	if strings.HasSuffix(s, suffix) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("%q must end with %q", s, suffix), msgAndArgs...)
}

// AssertCompare asserts calc and ideal are structurally equal. The failure
// message carries the path to the first difference.
func AssertCompare(t assert.TestingT, calc, ideal any, opts ...compare.Option) bool {
	helper(t)
	if err := compare.New(opts...).AssertCompare(calc, ideal); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}
