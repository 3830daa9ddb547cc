package editors

import (
	"math"
	"reflect"
	"slices"

	"github.com/go-drift/propgrid/pkg/convert"
	"github.com/go-drift/propgrid/pkg/meta"
)

// defaultSteps is the number of steps across an unstepped range.
const defaultSteps = 100

// Slider edits a number within a range, or one of a list of discrete values.
type Slider struct {
	base
	rng meta.Range
	typ reflect.Type
	pos float64
}

// NewSlider creates a slider at the lower end of rng. typ is the declared
// numeric type values are reported in.
func NewSlider(rng meta.Range, typ reflect.Type) *Slider {
	s := &Slider{rng: rng, typ: typ}
	s.pos = s.Min()
	return s
}

// Value returns the position in the declared type.
func (s *Slider) Value() any {
	if s.typ == nil {
		return s.pos
	}
	pos := s.pos
	if isInteger(s.typ) {
		pos = math.Round(pos)
	}
	if v, err := convert.To(pos, s.typ); err == nil {
		return v
	}
	return s.pos
}

// SetValue moves the slider to v without snapping. Non-numeric values are
// ignored.
func (s *Slider) SetValue(v any) {
	if f, ok := convert.Float(v); ok {
		s.pos = f
	}
}

// Position returns the raw position.
func (s *Slider) Position() float64 { return s.pos }

// Min returns the lowest position.
func (s *Slider) Min() float64 {
	if len(s.rng.Values) > 0 {
		return slices.Min(s.rng.Values)
	}
	return s.rng.Min
}

// Max returns the highest position.
func (s *Slider) Max() float64 {
	if len(s.rng.Values) > 0 {
		return slices.Max(s.rng.Values)
	}
	return s.rng.Max
}

// Fraction returns the position as a fraction of the range, in [0, 1].
func (s *Slider) Fraction() float64 {
	lo, hi := s.Min(), s.Max()
	if hi <= lo {
		return 0
	}
	return math.Max(0, math.Min(1, (s.pos-lo)/(hi-lo)))
}

// SetPosition moves the slider as dragging would. The position snaps to the
// range and the change is reported.
func (s *Slider) SetPosition(f float64) {
	if s.readOnly || math.IsNaN(f) {
		return
	}
	f = s.rng.Snap(f)
	if isInteger(s.typ) {
		f = math.Round(f)
	}
	if f == s.pos {
		return
	}
	s.pos = f
	s.emit(s.Value())
}

// Step moves the slider n steps. Discrete ranges step through their values
// in ascending order.
func (s *Slider) Step(n int) {
	if len(s.rng.Values) > 0 {
		values := slices.Clone(s.rng.Values)
		slices.Sort(values)
		i := 0
		for j, v := range values {
			if math.Abs(v-s.pos) < math.Abs(values[i]-s.pos) {
				i = j
			}
		}
		i = max(0, min(len(values)-1, i+n))
		s.SetPosition(values[i])
		return
	}
	step := s.rng.Step
	if step <= 0 {
		step = (s.rng.Max - s.rng.Min) / defaultSteps
	}
	if isInteger(s.typ) {
		step = math.Max(1, step)
	}
	s.SetPosition(s.pos + float64(n)*step)
}

func isInteger(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}
