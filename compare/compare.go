package compare

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
)

// Tolerance is the default absolute tolerance for numeric equality.
const Tolerance = 0.0001

// DefaultMaxDepth bounds recursion into nested containers.
const DefaultMaxDepth = 1000

// diffPrec is the mantissa precision used for numeric differences.
const diffPrec = 512

// Equaler is implemented by values with their own notion of equality.
// It is consulted only for values that fall back to native equality.
type Equaler interface {
	Equal(other any) bool
}

// Comparer holds comparison settings. The zero value is not usable; use New.
// A Comparer is safe for concurrent use.
type Comparer struct {
	tolerance *big.Float
	maxDepth  int
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithTolerance sets the absolute tolerance for numeric equality.
func WithTolerance(tol float64) Option {
	return func(c *Comparer) {
		if tol >= 0 && !math.IsInf(tol, 0) && !math.IsNaN(tol) {
			c.tolerance = big.NewFloat(tol)
		}
	}
}

// WithMaxDepth sets the recursion bound. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(c *Comparer) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// New creates a Comparer using Tolerance and DefaultMaxDepth unless overridden.
func New(opts ...Option) *Comparer {
	c := &Comparer{
		tolerance: big.NewFloat(Tolerance),
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var std = New()

// Compare reports whether a and b are structurally equal.
func Compare(a, b any) bool { return std.Compare(a, b) }

// CompoundDiff returns the path to the first divergence between a and b,
// an empty slice when they are equal, or [a, b] when they differ with no
// container in common.
func CompoundDiff(a, b any) []any { return std.CompoundDiff(a, b) }

// AssertCompare returns a *MismatchError when a and b differ.
func AssertCompare(a, b any, opts ...AssertOption) error { return std.AssertCompare(a, b, opts...) }

// Compare reports whether a and b are structurally equal.
func (c *Comparer) Compare(a, b any) bool {
	w := walker{c: c}
	return w.compare(a, b)
}

// CompoundDiff returns the outer-to-inner path to the first divergence.
func (c *Comparer) CompoundDiff(a, b any) []any {
	path, _ := c.diff(a, b)
	return path
}

func (c *Comparer) diff(a, b any) ([]any, bool) {
	w := walker{c: c}
	if w.compare(a, b) {
		return []any{}, false
	}
	if len(w.crumbs) == 0 {
		return []any{a, b}, w.tooDeep
	}
	slices.Reverse(w.crumbs)
	return w.crumbs, w.tooDeep
}

// AssertOption configures AssertCompare.
type AssertOption func(*MismatchError)

// WithoutObjects omits the pretty-printed operands from the error message.
func WithoutObjects() AssertOption {
	return func(e *MismatchError) { e.PrintObjects = false }
}

// AssertCompare returns nil when a and b are equal and a *MismatchError
// carrying the diff path otherwise.
func (c *Comparer) AssertCompare(a, b any, opts ...AssertOption) error {
	path, tooDeep := c.diff(a, b)
	if len(path) == 0 {
		return nil
	}
	err := &MismatchError{Path: path, A: a, B: b, PrintObjects: true}
	if tooDeep {
		err.Cause = ErrTooDeep
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

type variant int

const (
	variantGeneric variant = iota
	variantNumber
	variantText
	variantList
	variantTuple
	variantSet
	variantMapping
)

// classify picks the comparison rule from the runtime shape of v.
func classify(v any) variant {
	switch n := v.(type) {
	case *big.Int:
		if n != nil {
			return variantNumber
		}
		return variantGeneric
	case *big.Float:
		if n != nil {
			return variantNumber
		}
		return variantGeneric
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return variantGeneric
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return variantNumber
	case reflect.String:
		return variantText
	case reflect.Slice:
		return variantList
	case reflect.Array:
		return variantTuple
	case reflect.Map:
		if isSetType(rv.Type()) {
			return variantSet
		}
		return variantMapping
	}
	return variantGeneric
}

func isSetType(t reflect.Type) bool {
	e := t.Elem()
	return e.Kind() == reflect.Struct && e.NumField() == 0
}

type walker struct {
	c       *Comparer
	crumbs  []any
	depth   int
	tooDeep bool
}

// compare dispatches on a's variant. Breadcrumbs are appended while the
// recursion unwinds, so they read innermost first.
func (w *walker) compare(a, b any) bool {
	if w.depth >= w.c.maxDepth {
		w.tooDeep = true
		return false
	}
	w.depth++
	defer func() { w.depth-- }()

	switch classify(a) {
	case variantNumber:
		return w.compareNumber(a, b)
	case variantText:
		rb := reflect.ValueOf(b)
		return rb.IsValid() && rb.Kind() == reflect.String && reflect.ValueOf(a).String() == rb.String()
	case variantList:
		rb := reflect.ValueOf(b)
		if !rb.IsValid() || rb.Kind() != reflect.Slice {
			return false
		}
		return w.compareSequence(elements(reflect.ValueOf(a)), elements(rb))
	case variantTuple:
		rb := reflect.ValueOf(b)
		if !rb.IsValid() || rb.Kind() != reflect.Array {
			return false
		}
		return w.compareSequence(elements(reflect.ValueOf(a)), elements(rb))
	case variantSet:
		if classify(b) != variantSet {
			return false
		}
		return w.compareSequence(sortedKeys(reflect.ValueOf(a)), sortedKeys(reflect.ValueOf(b)))
	case variantMapping:
		if classify(b) != variantMapping {
			return false
		}
		return w.compareMapping(reflect.ValueOf(a), reflect.ValueOf(b))
	}
	if _, ok := a.(Equaler); !ok && isBool(a) && classify(b) == variantNumber {
		return numbersWithin(boolAsNumber(a), b, nil)
	}
	return genericEqual(a, b)
}

func (w *walker) compareSequence(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !w.compare(a[i], b[i]) {
			w.crumbs = append(w.crumbs, i)
			return false
		}
	}
	return true
}

func (w *walker) compareMapping(a, b reflect.Value) bool {
	akeys := sortedKeys(a)
	bkeys := sortedKeys(b)
	n := len(w.crumbs)
	if !w.compareSequence(akeys, bkeys) {
		if w.tooDeep {
			// The bound tripped on the key lists, which are not part of a.
			w.crumbs = w.crumbs[:n]
		}
		return false
	}
	for i, akey := range akeys {
		av := a.MapIndex(keyValue(a.Type().Key(), akey))
		bv := b.MapIndex(keyValue(b.Type().Key(), bkeys[i]))
		if !w.compare(av.Interface(), bv.Interface()) {
			w.crumbs = append(w.crumbs, akey)
			return false
		}
	}
	return true
}

// compareNumber accepts a bool b as 0 or 1.
func (w *walker) compareNumber(a, b any) bool {
	return numbersWithin(a, boolAsNumber(b), w.c.tolerance)
}

// numbersWithin reports whether |a-b| < tol. A nil tol demands equality.
func numbersWithin(a, b any, tol *big.Float) bool {
	x, ok := toNumber(a)
	if !ok {
		return false
	}
	y, ok := toNumber(b)
	if !ok {
		return false
	}
	if x.nan || y.nan {
		return false
	}
	if x.inf != 0 || y.inf != 0 {
		return x.inf == y.inf
	}
	d := new(big.Float).SetPrec(diffPrec).Sub(x.f, y.f)
	if tol == nil {
		return d.Sign() == 0
	}
	return d.Abs(d).Cmp(tol) < 0
}

func isBool(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Bool
}

func boolAsNumber(v any) any {
	if !isBool(v) {
		return v
	}
	if reflect.ValueOf(v).Bool() {
		return 1
	}
	return 0
}

func genericEqual(a, b any) bool {
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.ValueOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// number is a numeric operand widened to a big.Float. NaN and infinities
// are kept aside since big.Float arithmetic cannot represent them.
type number struct {
	f   *big.Float
	nan bool
	inf int
}

func toNumber(v any) (number, bool) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return number{}, false
		}
		return number{f: new(big.Float).SetPrec(diffPrec).SetInt(n)}, true
	case *big.Float:
		if n == nil {
			return number{}, false
		}
		if n.IsInf() {
			return number{inf: n.Sign()}, true
		}
		return number{f: n}, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return number{}, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{f: new(big.Float).SetInt64(rv.Int())}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{f: new(big.Float).SetUint64(rv.Uint())}, true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		switch {
		case math.IsNaN(f):
			return number{nan: true}, true
		case math.IsInf(f, 1):
			return number{inf: 1}, true
		case math.IsInf(f, -1):
			return number{inf: -1}, true
		}
		return number{f: new(big.Float).SetFloat64(f)}, true
	}
	return number{}, false
}

func keyValue(t reflect.Type, k any) reflect.Value {
	if k == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(k)
}

func elements(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func sortedKeys(rv reflect.Value) []any {
	keys := make([]any, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.Interface())
	}
	slices.SortStableFunc(keys, orderValues)
	return keys
}

// rank groups values of unrelated kinds so mixed keys still sort totally.
func rank(v any) int {
	switch classify(v) {
	case variantNumber:
		return 2
	case variantText:
		return 3
	}
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	}
	return 4
}

func orderValues(x, y any) int {
	rx, ry := rank(x), rank(y)
	if rx != ry {
		return cmp.Compare(rx, ry)
	}
	switch rx {
	case 1:
		bx, by := x.(bool), y.(bool)
		switch {
		case bx == by:
			return 0
		case !bx:
			return -1
		}
		return 1
	case 2:
		if c := compareNumbers(x, y); c != 0 {
			return c
		}
	case 3:
		if c := cmp.Compare(reflect.ValueOf(x).String(), reflect.ValueOf(y).String()); c != 0 {
			return c
		}
	case 4:
		if c := cmp.Compare(fmt.Sprintf("%v", x), fmt.Sprintf("%v", y)); c != 0 {
			return c
		}
	}
	return cmp.Compare(fmt.Sprintf("%T", x), fmt.Sprintf("%T", y))
}

func compareNumbers(x, y any) int {
	nx, _ := toNumber(x)
	ny, _ := toNumber(y)
	switch {
	case nx.nan || ny.nan:
		return cmp.Compare(boolRank(!nx.nan), boolRank(!ny.nan))
	case nx.inf != 0 || ny.inf != 0:
		return cmp.Compare(infRank(nx), infRank(ny))
	}
	return nx.f.Cmp(ny.f)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func infRank(n number) int {
	if n.inf != 0 {
		return n.inf * 2
	}
	if n.f.Sign() < 0 {
		return -1
	}
	return 1
}
