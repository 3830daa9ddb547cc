package editors

import (
	"reflect"

	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/model"
	"github.com/go-drift/propgrid/pkg/overlay"
)

// Env carries the collaborators available to strategies.
type Env struct {
	// Overlay hosts popups. May be nil.
	Overlay overlay.Overlay
}

// Strategy creates and refreshes one kind of editor.
type Strategy interface {
	// Name identifies the strategy. Built-in names double as editor
	// override identifiers.
	Name() string
	// CanHandle reports whether the strategy applies to p.
	CanHandle(p *model.Property) bool
	// Create returns a new editor seeded from p, or nil to decline.
	Create(p *model.Property, env Env) Editor
	// Update refreshes ed from p in place. It returns true when ed cannot
	// represent p any more and must be replaced.
	Update(p *model.Property, ed Editor) (replace bool)
}

// Built-in strategy names.
const (
	NameToggle   = "toggle"
	NamePicker   = "picker"
	NameSlider   = "slider"
	NameText     = "text"
	NamePassword = "password"
)

// seed pushes the model state into a fresh editor.
func seed(p *model.Property, ed Editor) Editor {
	ed.SetValue(p.Value())
	if ro, ok := ed.(ReadOnlySetter); ok {
		ro.SetReadOnly(p.IsReadOnly())
	}
	return ed
}

// ToggleStrategy edits booleans with a Toggle.
type ToggleStrategy struct{}

func (ToggleStrategy) Name() string { return NameToggle }

func (ToggleStrategy) CanHandle(p *model.Property) bool { return p.Descriptor().IsBool() }

func (ToggleStrategy) Create(p *model.Property, _ Env) Editor { return seed(p, NewToggle()) }

func (ToggleStrategy) Update(p *model.Property, ed Editor) bool {
	if _, ok := ed.(*Toggle); !ok {
		return true
	}
	seed(p, ed)
	return false
}

// PickerStrategy edits writable enumerations with a Picker, or with a Flags
// editor when the enumeration is a bit set of an integer type.
type PickerStrategy struct{}

func (PickerStrategy) Name() string { return NamePicker }

func (PickerStrategy) CanHandle(p *model.Property) bool {
	return p.Descriptor().Enum != nil && !p.IsReadOnly()
}

func (PickerStrategy) Create(p *model.Property, env Env) Editor {
	d := p.Descriptor()
	if d.Enum == nil {
		return nil
	}
	if d.Enum.Flags && isInteger(d.Type) {
		return seed(p, NewFlags(d.Enum, d.Type, env.Overlay, d.Name))
	}
	return seed(p, NewPicker(enumChoices(d), env.Overlay, d.Name))
}

func (PickerStrategy) Update(p *model.Property, ed Editor) bool {
	switch ed.(type) {
	case *Picker, *Flags:
		seed(p, ed)
		return false
	}
	return true
}

func enumChoices(d *meta.Descriptor) []Choice {
	choices := make([]Choice, 0, len(d.Enum.Values))
	for _, ev := range d.Enum.Values {
		var v any = ev.Value
		if d.Type != nil && d.Type.Kind() == reflect.String {
			v = ev.Name
		}
		choices = append(choices, Choice{Name: ev.Name, Value: v})
	}
	if d.Type == nil {
		return choices
	}
	return convertChoices(choices, d.Type)
}

// SliderStrategy edits numbers with a declared range using a Slider.
type SliderStrategy struct{}

func (SliderStrategy) Name() string { return NameSlider }

func (SliderStrategy) CanHandle(p *model.Property) bool {
	d := p.Descriptor()
	return d.IsNumeric() && d.Range != nil && (d.Range.Bounded() || len(d.Range.Values) > 0)
}

func (SliderStrategy) Create(p *model.Property, _ Env) Editor {
	d := p.Descriptor()
	if d.Range == nil || !d.IsNumeric() {
		return nil
	}
	return seed(p, NewSlider(*d.Range, d.Type))
}

func (SliderStrategy) Update(p *model.Property, ed Editor) bool {
	if _, ok := ed.(*Slider); !ok {
		return true
	}
	seed(p, ed)
	return false
}

// TextStrategy edits anything through text. It never declines.
type TextStrategy struct{}

func (TextStrategy) Name() string { return NameText }

func (TextStrategy) CanHandle(*model.Property) bool { return true }

func (TextStrategy) Create(p *model.Property, _ Env) Editor {
	return seed(p, NewText(p.Descriptor()))
}

func (TextStrategy) Update(p *model.Property, ed Editor) bool {
	if _, ok := ed.(*Text); !ok {
		return true
	}
	seed(p, ed)
	return false
}

// PasswordStrategy decorates another strategy. Editors it creates are asked
// to mask their content, using the property's mask character if declared.
// Editors without the Masker capability pass through unchanged.
type PasswordStrategy struct {
	Inner Strategy
}

func (s PasswordStrategy) Name() string { return NamePassword }

func (s PasswordStrategy) CanHandle(p *model.Property) bool { return s.inner().CanHandle(p) }

func (s PasswordStrategy) Create(p *model.Property, env Env) Editor {
	ed := s.inner().Create(p, env)
	if ed == nil {
		return nil
	}
	if m, ok := ed.(Masker); ok {
		m.SetMasked(true)
		if r := p.Descriptor().MaskChar; r != 0 {
			m.SetMaskChar(r)
		}
	}
	return ed
}

func (s PasswordStrategy) Update(p *model.Property, ed Editor) bool {
	return s.inner().Update(p, ed)
}

func (s PasswordStrategy) inner() Strategy {
	if s.Inner == nil {
		return TextStrategy{}
	}
	return s.Inner
}
