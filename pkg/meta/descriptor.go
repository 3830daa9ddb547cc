package meta

import (
	"reflect"
	"unicode/utf8"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
)

// Descriptor is an immutable snapshot of one inspectable property.
// Descriptors are built by [Describe] and never modified afterwards.
type Descriptor struct {
	// Name is the property name, unique within one object.
	Name string
	// Type is the declared type values are converted to before writing.
	Type reflect.Type
	// CanWrite reports whether the property accepts writes.
	CanWrite bool
	// Category is the declared category key, possibly empty.
	Category string
	// DisplayName is the label shown in the name cell.
	DisplayName string
	// Description is advisory help text.
	Description string
	// Default is the fallback value; meaningful only when HasDefault is set.
	Default    any
	HasDefault bool
	// SortWeight orders properties; higher weights come first.
	SortWeight int
	// Editor is the editor override identifier, if any.
	Editor string
	// Range bounds numeric values.
	Range *Range
	// Enum maps the value to named constants.
	Enum *EnumType
	// Password requests a masked editor.
	Password bool
	// MaskChar is the masking character override, or 0.
	MaskChar rune
	// Browsable is false for hidden properties.
	Browsable bool

	get func() (any, error)
	set func(any) error
}

// Value reads the live value. A panicking accessor is reported and returned
// as an error.
func (d *Descriptor) Value() (v any, err error) {
	if d.get == nil {
		return nil, &griderrors.GridError{Op: "meta.Descriptor.Value", Kind: griderrors.KindEnumeration, Property: d.Name, Err: errNoAccessor}
	}
	err = griderrors.Guard("meta.Descriptor.Value", func() error {
		var gerr error
		v, gerr = d.get()
		return gerr
	})
	return v, err
}

// SetValue writes v, which must already have the declared type.
func (d *Descriptor) SetValue(v any) error {
	if !d.CanWrite || d.set == nil {
		return &griderrors.GridError{Op: "meta.Descriptor.SetValue", Kind: griderrors.KindConversion, Property: d.Name, Err: griderrors.ErrReadOnly}
	}
	return griderrors.Guard("meta.Descriptor.SetValue", func() error {
		return d.set(v)
	})
}

// IsNumeric reports whether the declared type is an integer or float kind.
func (d *Descriptor) IsNumeric() bool {
	if d.Type == nil {
		return false
	}
	switch d.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// IsBool reports whether the declared type is a bool kind.
func (d *Descriptor) IsBool() bool {
	return d.Type != nil && d.Type.Kind() == reflect.Bool
}

func newDescriptor(name string, t reflect.Type, get func() (any, error), set func(any) error, opts PropertyOptions) *Descriptor {
	d := &Descriptor{
		Name:        name,
		Type:        t,
		CanWrite:    set != nil && !opts.ReadOnly,
		Category:    opts.Category,
		DisplayName: opts.DisplayName,
		Description: opts.Description,
		Default:     opts.Default,
		HasDefault:  opts.Default != nil,
		SortWeight:  opts.SortWeight,
		Editor:      opts.Editor,
		Range:       opts.Range,
		Enum:        opts.Enum,
		Password:    opts.Password,
		Browsable:   !opts.Hidden,
		get:         get,
		set:         set,
	}
	if d.DisplayName == "" {
		d.DisplayName = name
	}
	if opts.MaskChar != "" {
		d.MaskChar, _ = utf8.DecodeRuneInString(opts.MaskChar)
	}
	return d
}
