package editors

import (
	"reflect"

	"github.com/go-drift/propgrid/pkg/convert"
)

var boolType = reflect.TypeFor[bool]()

// Toggle edits a boolean.
type Toggle struct {
	base
	on bool
}

// NewToggle creates a toggle in the off state.
func NewToggle() *Toggle { return &Toggle{} }

// Value returns the toggle state as a bool.
func (t *Toggle) Value() any { return t.on }

// SetValue sets the state. Values that are not booleans are ignored.
func (t *Toggle) SetValue(v any) {
	if b, err := convert.To(v, boolType); err == nil {
		t.on = b.(bool)
	}
}

// On reports the toggle state.
func (t *Toggle) On() bool { return t.on }

// Flip switches the state as a click would.
func (t *Toggle) Flip() {
	if t.readOnly {
		return
	}
	t.on = !t.on
	t.emit(t.on)
}
