package cache

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Args carries the positional and keyword arguments of a Func call.
type Args struct {
	Pos []any
	Kw  map[string]any
}

// Hashable lets a value choose its own cache identity. CacheKey may run
// arbitrary code, including calls back into the Func being keyed. The
// returned value must not be of the same Hashable type.
type Hashable interface {
	CacheKey() any
}

// Keyer derives cache keys from call arguments.
//
// Contract:
//   - Determinism: equal arguments produce the same key regardless of keyword order.
//   - Errors: unhashable arguments return an error wrapping ErrUnhashable.
//   - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	Key(args Args) (string, error)
}

// DefaultKeyer builds collision-free canonical string keys.
//
// Layout: positional values, then a keyword marker followed by the keyword
// items sorted by name, then the argument types when Typed is set.
// Untyped keys encode integral floats like integers so 3 and 3.0 share
// an entry.
type DefaultKeyer struct {
	Typed bool
}

// NewDefaultKeyer creates a keyer.
func NewDefaultKeyer(typed bool) *DefaultKeyer {
	return &DefaultKeyer{Typed: typed}
}

const (
	kwMark   = "|kw|"
	typeMark = "|types|"
)

// Key returns the canonical key for args.
func (k *DefaultKeyer) Key(args Args) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range args.Pos {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := encodeValue(&b, v); err != nil {
			return "", fmt.Errorf("positional argument %d: %w", i, err)
		}
	}
	b.WriteByte(')')

	names := sortedNames(args.Kw)
	if len(names) > 0 {
		b.WriteString(kwMark)
		for i, name := range names {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(name))
			b.WriteByte('=')
			if err := encodeValue(&b, args.Kw[name]); err != nil {
				return "", fmt.Errorf("keyword argument %q: %w", name, err)
			}
		}
	}

	if k.Typed {
		b.WriteString(typeMark)
		for _, v := range args.Pos {
			b.WriteString(typeName(v))
			b.WriteByte(',')
		}
		for _, name := range names {
			b.WriteString(typeName(args.Kw[name]))
			b.WriteByte(',')
		}
	}
	return b.String(), nil
}

func sortedNames(kw map[string]any) []string {
	if len(kw) == 0 {
		return nil
	}
	names := make([]string, 0, len(kw))
	for name := range kw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

func encodeValue(b *strings.Builder, v any) error {
	return encodeReflect(b, reflect.ValueOf(v))
}

func encodeReflect(b *strings.Builder, rv reflect.Value) error {
	if !rv.IsValid() {
		b.WriteString("nil")
		return nil
	}
	if rv.CanInterface() && rv.Kind() != reflect.Interface {
		if h, ok := rv.Interface().(Hashable); ok {
			b.WriteString("h:")
			return encodeReflect(b, reflect.ValueOf(h.CacheKey()))
		}
	}

	switch rv.Kind() {
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(formatFloat(rv.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		if imag(c) == 0 {
			b.WriteString(formatFloat(real(c)))
		} else {
			fmt.Fprintf(b, "(%s%+gi)", formatFloat(real(c)), imag(c))
		}
	case reflect.String:
		b.WriteString(strconv.Quote(rv.String()))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		fmt.Fprintf(b, "%s@%x", rv.Type(), rv.Pointer())
	case reflect.Interface:
		return encodeReflect(b, rv.Elem())
	case reflect.Array:
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeReflect(b, rv.Index(i)); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case reflect.Struct:
		b.WriteString(rv.Type().String())
		b.WriteByte('{')
		for i := 0; i < rv.NumField(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeReflect(b, rv.Field(i)); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s", ErrUnhashable, rv.Type())
	}
	return nil
}

// formatFloat renders integral values in integer form so that untyped keys
// for 3 and 3.0 coincide.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		switch {
		case f >= math.MinInt64 && f < math.MaxInt64:
			return strconv.FormatInt(int64(f), 10)
		case f >= 0 && f < math.MaxUint64:
			return strconv.FormatUint(uint64(f), 10)
		}
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

var _ Keyer = (*DefaultKeyer)(nil)
