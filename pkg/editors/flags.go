package editors

import (
	"reflect"

	"github.com/go-drift/propgrid/pkg/convert"
	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/overlay"
)

// Flags edits a bit-flag enumeration as a set of named constants.
type Flags struct {
	base
	enum *meta.EnumType
	typ  reflect.Type
	bits int64
	host *overlay.DialogHost
}

// NewFlags creates a flags editor with no bits set. typ is the declared
// integer type values are reported in.
func NewFlags(enum *meta.EnumType, typ reflect.Type, o overlay.Overlay, anchor string) *Flags {
	f := &Flags{enum: enum, typ: typ}
	f.host = overlay.NewDialogHost(o, anchor, func() any { return f.enum.Names() })
	return f
}

// Value returns the bit set in the declared type.
func (f *Flags) Value() any {
	if f.typ != nil {
		if v, err := convert.To(f.bits, f.typ); err == nil {
			return v
		}
	}
	return f.bits
}

// SetValue replaces the bit set. Integers, flag expressions such as
// "Left|Right" and name lists are accepted; anything else is ignored.
func (f *Flags) SetValue(v any) {
	switch x := v.(type) {
	case string:
		if n, err := f.enum.Parse(x); err == nil {
			f.bits = n
		}
	case []string:
		if n, err := f.enum.Combine(x); err == nil {
			f.bits = n
		}
	default:
		if n, ok := convert.Int64(v); ok {
			f.bits = n
		}
	}
}

// Names returns every constant of the enumeration.
func (f *Flags) Names() []string { return f.enum.Names() }

// Selected returns the names of the set bits in declaration order.
func (f *Flags) Selected() []string { return f.enum.Split(f.bits) }

// IsSet reports whether the constant called name is fully set.
func (f *Flags) IsSet(name string) bool {
	v, ok := f.enum.Lookup(name)
	if !ok {
		return false
	}
	if v == 0 {
		return f.bits == 0
	}
	return f.bits&v == v
}

// Set sets or clears the constant called name and reports the change.
func (f *Flags) Set(name string, on bool) error {
	if f.readOnly {
		return griderrors.ErrReadOnly
	}
	v, ok := f.enum.Lookup(name)
	if !ok {
		return &griderrors.ConversionError{Input: name, Type: f.enum.Name}
	}
	next := f.bits
	switch {
	case v == 0 && on:
		next = 0
	case on:
		next |= v
	default:
		next &^= v
	}
	if next == f.bits {
		return nil
	}
	f.bits = next
	f.emit(f.Value())
	return nil
}

// Toggle flips the constant called name.
func (f *Flags) Toggle(name string) error {
	return f.Set(name, !f.IsSet(name))
}

// Open shows the popup. Read-only editors stay closed.
func (f *Flags) Open() {
	if !f.readOnly {
		f.host.SetSelected(true)
	}
}

// Close hides the popup.
func (f *Flags) Close() { f.host.SetSelected(false) }

// IsOpen reports whether the popup is showing.
func (f *Flags) IsOpen() bool { return f.host.IsOpen() }

// Dispose closes the popup.
func (f *Flags) Dispose() { f.host.Close() }
