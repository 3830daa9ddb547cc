package meta

import "math"

const rangeEpsilon = 1e-9

// Range constrains a numeric property. A non-empty Values list restricts the
// property to those discrete values and takes precedence over Min/Max.
type Range struct {
	Min    float64   `yaml:"min"`
	Max    float64   `yaml:"max"`
	Step   float64   `yaml:"step"`
	Values []float64 `yaml:"values"`
}

// Bounded reports whether Min and Max describe an interval.
func (r Range) Bounded() bool {
	return r.Max > r.Min
}

// Contains reports whether v satisfies the range.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if len(r.Values) > 0 {
		for _, allowed := range r.Values {
			if math.Abs(allowed-v) <= rangeEpsilon {
				return true
			}
		}
		return false
	}
	if !r.Bounded() {
		return true
	}
	return v >= r.Min-rangeEpsilon && v <= r.Max+rangeEpsilon
}

// Snap moves v onto the range: the nearest allowed value, or the nearest
// step from Min clamped to [Min, Max].
func (r Range) Snap(v float64) float64 {
	if len(r.Values) > 0 {
		best := r.Values[0]
		for _, allowed := range r.Values[1:] {
			if math.Abs(allowed-v) < math.Abs(best-v) {
				best = allowed
			}
		}
		return best
	}
	if !r.Bounded() {
		return v
	}
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}
