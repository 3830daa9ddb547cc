// Package convert coerces arbitrary input into a property's declared type and
// renders values as editable text.
//
// Conversion is deliberately permissive about the input shape (text typed by
// a user, an untyped YAML default, a float from a slider) and strict about the
// result: integers must not overflow or lose a fraction, enumeration values
// must be declared, and ranged numbers must fall inside their range.
package convert

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// To converts v to type t.
func To(v any, t reflect.Type) (any, error) {
	if t == nil {
		return v, nil
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			return reflect.Zero(t).Interface(), nil
		}
		return nil, fail(v, t, nil)
	}

	rv := reflect.ValueOf(v)
	if rv.Type() == t {
		return v, nil
	}
	if t.Kind() == reflect.Interface && rv.Type().Implements(t) {
		return v, nil
	}

	if s, ok := v.(string); ok {
		if out, ok, err := fromText(s, t); ok {
			return out, err
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Convert(t).Interface(), nil
		}
		if rv.Kind() == reflect.String {
			b, err := strconv.ParseBool(strings.TrimSpace(rv.String()))
			if err != nil {
				return nil, fail(v, t, err)
			}
			return reflect.ValueOf(b).Convert(t).Interface(), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return toInt(v, rv, t)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return toUint(v, rv, t)
	case reflect.Float32, reflect.Float64:
		return toFloat(v, rv, t)
	case reflect.String:
		return toString(v, rv, t), nil
	}

	if rv.Type().ConvertibleTo(t) && rv.Kind() == t.Kind() {
		return rv.Convert(t).Interface(), nil
	}
	return nil, fail(v, t, nil)
}

// fromText handles string input for types with their own text form.
func fromText(s string, t reflect.Type) (any, bool, error) {
	if t == durationType {
		d, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return nil, true, fail(s, t, err)
		}
		return d, true, nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		ptr := reflect.New(t)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, true, fail(s, t, err)
		}
		return ptr.Elem().Interface(), true, nil
	}
	return nil, false, nil
}

func toInt(v any, rv reflect.Value, t reflect.Type) (any, error) {
	var n int64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fail(v, t, griderrors.ErrOutOfRange)
		}
		n = int64(u)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fail(v, t, nil)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fail(v, t, griderrors.ErrOutOfRange)
		}
		n = int64(f)
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		parsed, err := strconv.ParseInt(s, 0, t.Bits())
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				return nil, fail(v, t, err)
			}
			return toInt(v, reflect.ValueOf(f), t)
		}
		n = parsed
	default:
		return nil, fail(v, t, nil)
	}
	out := reflect.New(t).Elem()
	if out.OverflowInt(n) {
		return nil, fail(v, t, griderrors.ErrOutOfRange)
	}
	out.SetInt(n)
	return out.Interface(), nil
}

func toUint(v any, rv reflect.Value, t reflect.Type) (any, error) {
	var n uint64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < 0 {
			return nil, fail(v, t, griderrors.ErrOutOfRange)
		}
		n = uint64(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n = rv.Uint()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fail(v, t, nil)
		}
		if f < 0 || f >= math.MaxUint64 {
			return nil, fail(v, t, griderrors.ErrOutOfRange)
		}
		n = uint64(f)
	case reflect.String:
		parsed, err := strconv.ParseUint(strings.TrimSpace(rv.String()), 0, t.Bits())
		if err != nil {
			return nil, fail(v, t, err)
		}
		n = parsed
	default:
		return nil, fail(v, t, nil)
	}
	out := reflect.New(t).Elem()
	if out.OverflowUint(n) {
		return nil, fail(v, t, griderrors.ErrOutOfRange)
	}
	out.SetUint(n)
	return out.Interface(), nil
}

func toFloat(v any, rv reflect.Value, t reflect.Type) (any, error) {
	var f float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), t.Bits())
		if err != nil {
			return nil, fail(v, t, err)
		}
		f = parsed
	default:
		return nil, fail(v, t, nil)
	}
	out := reflect.New(t).Elem()
	if out.OverflowFloat(f) {
		return nil, fail(v, t, griderrors.ErrOutOfRange)
	}
	out.SetFloat(f)
	return out.Interface(), nil
}

func toString(v any, rv reflect.Value, t reflect.Type) any {
	var s string
	switch x := v.(type) {
	case encoding.TextMarshaler:
		if b, err := x.MarshalText(); err == nil {
			s = string(b)
		} else {
			s = fmt.Sprint(v)
		}
	case fmt.Stringer:
		s = x.String()
	default:
		if rv.Kind() == reflect.String {
			s = rv.String()
		} else {
			s = fmt.Sprint(v)
		}
	}
	return reflect.ValueOf(s).Convert(t).Interface()
}

func fail(v any, t reflect.Type, cause error) error {
	if cause != nil && !griderrors.Is(cause, griderrors.ErrOutOfRange) {
		cause = fmt.Errorf("%w: %v", griderrors.ErrNotConvertible, cause)
	}
	return &griderrors.ConversionError{Input: v, Type: t.String(), Err: cause}
}
