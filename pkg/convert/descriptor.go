package convert

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/meta"
)

// Value converts v to the declared type of d, honoring d's enumeration and
// range metadata.
func Value(v any, d *meta.Descriptor) (any, error) {
	if d == nil {
		return v, nil
	}
	if d.Enum != nil {
		return enumValue(v, d)
	}
	out, err := To(v, d.Type)
	if err != nil {
		return nil, err
	}
	if d.Range != nil && d.IsNumeric() {
		f, _ := Float(out)
		if !d.Range.Contains(f) {
			return nil, &griderrors.ConversionError{Input: v, Type: d.Type.String(), Err: griderrors.ErrOutOfRange}
		}
	}
	return out, nil
}

func enumValue(v any, d *meta.Descriptor) (any, error) {
	e := d.Enum
	if d.Type != nil && d.Type.Kind() == reflect.String {
		name := fmt.Sprint(v)
		for _, ev := range e.Values {
			if strings.EqualFold(ev.Name, strings.TrimSpace(name)) {
				return To(ev.Name, d.Type)
			}
		}
		return nil, &griderrors.ConversionError{Input: v, Type: d.Type.String()}
	}

	var n int64
	switch x := v.(type) {
	case string:
		parsed, err := e.Parse(x)
		if err != nil {
			return nil, &griderrors.ConversionError{Input: v, Type: e.Name, Err: err}
		}
		n = parsed
	case []string:
		combined, err := e.Combine(x)
		if err != nil {
			return nil, &griderrors.ConversionError{Input: v, Type: e.Name, Err: err}
		}
		n = combined
	default:
		i, err := To(v, reflect.TypeFor[int64]())
		if err != nil {
			return nil, err
		}
		n = i.(int64)
	}
	if !e.Valid(n) {
		return nil, &griderrors.ConversionError{Input: v, Type: e.Name, Err: griderrors.ErrOutOfRange}
	}
	return To(n, d.Type)
}

// Float reads any numeric value as a float64.
func Float(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Int64 reads any integer value as an int64.
func Int64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), true
	}
	return 0, false
}

// Format renders v as text suitable for a text editor. Format and [Value]
// round-trip for strings, booleans, numbers, durations, enumerations and
// types implementing both encoding.TextMarshaler and TextUnmarshaler.
// Numeric and string kinds are rendered from their underlying value, never
// through a String method.
func Format(v any, d *meta.Descriptor) string {
	if v == nil {
		return ""
	}
	if d != nil && d.Enum != nil {
		if n, ok := Int64(v); ok {
			return d.Enum.Format(n)
		}
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Duration:
		return x.String()
	case encoding.TextMarshaler:
		if b, err := x.MarshalText(); err == nil {
			return string(b)
		}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
