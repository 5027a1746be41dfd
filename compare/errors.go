package compare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Sentinel errors.
var (
	// ErrMismatch matches every error returned by AssertCompare.
	ErrMismatch = errors.New("compare: values do not match")

	// ErrTooDeep indicates the depth bound was hit, usually because of a cycle.
	ErrTooDeep = errors.New("compare: structure too deep or possibly cyclic")
)

var printer = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// MismatchError describes the first divergence between two values.
type MismatchError struct {
	// Path is the compound diff of A and B.
	Path []any
	A, B any

	// PrintObjects includes pretty-printed A and B in the message.
	PrintObjects bool

	// Cause is ErrTooDeep when the depth bound was hit, nil otherwise.
	Cause error
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "compare: value at compound %s does not match", FormatPath(e.Path))
	if e.Cause != nil {
		fmt.Fprintf(&b, " (%v)", e.Cause)
	}
	if e.PrintObjects {
		b.WriteString(":\na: ")
		b.WriteString(strings.TrimRight(printer.Sdump(e.A), "\n"))
		b.WriteString("\nb: ")
		b.WriteString(strings.TrimRight(printer.Sdump(e.B), "\n"))
	}
	return b.String()
}

// Unwrap exposes ErrMismatch and the cause, if any.
func (e *MismatchError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMismatch, e.Cause}
	}
	return []error{ErrMismatch}
}

// FormatPath renders a diff path with quoted string segments,
// for example [0, "first", 0, "second"].
func FormatPath(path []any) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, seg := range path {
		if i > 0 {
			b.WriteString(", ")
		}
		if s, ok := seg.(string); ok {
			fmt.Fprintf(&b, "%q", s)
		} else {
			fmt.Fprintf(&b, "%v", seg)
		}
	}
	b.WriteByte(']')
	return b.String()
}
