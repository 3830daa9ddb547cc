package editors

import (
	"reflect"
	"slices"
	"strings"

	"github.com/go-drift/propgrid/pkg/convert"
	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/overlay"
)

// Choice is one selectable item of a Picker.
type Choice struct {
	// Name is the label shown for the item.
	Name string
	// Value is the typed value selecting the item produces.
	Value any
}

// Picker selects one value from a fixed list. The list is shown in a popup
// hosted by the picker's dialog host.
type Picker struct {
	base
	choices  []Choice
	selected int
	host     *overlay.DialogHost
}

// NewPicker creates a picker over choices with nothing selected. The popup
// is anchored to anchor in o; o may be nil.
func NewPicker(choices []Choice, o overlay.Overlay, anchor string) *Picker {
	p := &Picker{choices: slices.Clone(choices), selected: -1}
	p.host = overlay.NewDialogHost(o, anchor, func() any { return p.Choices() })
	return p
}

// Value returns the value of the selected choice, or nil.
func (p *Picker) Value() any {
	if p.selected < 0 {
		return nil
	}
	return p.choices[p.selected].Value
}

// SetValue selects the choice whose value equals v. Unknown values clear
// the selection.
func (p *Picker) SetValue(v any) {
	p.selected = slices.IndexFunc(p.choices, func(c Choice) bool {
		return reflect.DeepEqual(c.Value, v)
	})
}

// Choices returns the selectable items.
func (p *Picker) Choices() []Choice { return slices.Clone(p.choices) }

// Selected returns the name of the selected choice, or "".
func (p *Picker) Selected() string {
	if p.selected < 0 {
		return ""
	}
	return p.choices[p.selected].Name
}

// Select picks the choice called name, closes the popup and reports the
// change. Names match case-insensitively.
func (p *Picker) Select(name string) error {
	i := slices.IndexFunc(p.choices, func(c Choice) bool { return c.Name == name })
	if i < 0 {
		i = slices.IndexFunc(p.choices, func(c Choice) bool { return strings.EqualFold(c.Name, name) })
	}
	if i < 0 {
		return &griderrors.ConversionError{Input: name, Type: "choice"}
	}
	return p.SelectIndex(i)
}

// SelectIndex picks choice i.
func (p *Picker) SelectIndex(i int) error {
	if p.readOnly {
		return griderrors.ErrReadOnly
	}
	if i < 0 || i >= len(p.choices) {
		return &griderrors.ConversionError{Input: i, Type: "choice", Err: griderrors.ErrOutOfRange}
	}
	p.host.Close()
	if i == p.selected {
		return nil
	}
	p.selected = i
	p.emit(p.choices[i].Value)
	return nil
}

// Open shows the popup. Read-only pickers stay closed.
func (p *Picker) Open() {
	if !p.readOnly {
		p.host.SetSelected(true)
	}
}

// Close hides the popup.
func (p *Picker) Close() { p.host.SetSelected(false) }

// IsOpen reports whether the popup is showing.
func (p *Picker) IsOpen() bool { return p.host.IsOpen() }

// Dispose closes the popup.
func (p *Picker) Dispose() { p.host.Close() }

func convertChoices(values []Choice, t reflect.Type) []Choice {
	out := make([]Choice, 0, len(values))
	for _, c := range values {
		v, err := convert.To(c.Value, t)
		if err != nil {
			continue
		}
		out = append(out, Choice{Name: c.Name, Value: v})
	}
	return out
}
