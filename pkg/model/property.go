package model

import (
	"reflect"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/go-drift/propgrid/pkg/convert"
	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/notify"
)

// Field names passed to property listeners.
const (
	FieldValue         = "Value"
	FieldOriginalValue = "OriginalValue"
	FieldErrors        = "Errors"
	FieldReadOnly      = "IsReadOnly"
	FieldSortWeight    = "SortWeight"
)

// Validator is implemented by bound objects that validate their own
// properties. Returned errors are advisory and never block an edit.
type Validator interface {
	ValidateProperty(name string) []error
}

// Property is the editable state of one property of a bound object.
//
// Value is what the editor shows and may hold anything, including input
// that does not convert to the declared type. OriginalValue is the last
// value known to be stored on the object; it changes only on a successful
// commit or a read from the object.
type Property struct {
	desc  *meta.Descriptor
	owner any

	value    any
	original any
	convErr  error

	readOnly   bool
	liveSync   bool
	sortWeight int

	// writing is set while a value is written through to the owner, so the
	// owner's own change notification does not re-read the property.
	writing bool

	listeners notify.Notifier
}

func newProperty(owner any, d *meta.Descriptor, liveSync bool) *Property {
	return &Property{
		desc:       d,
		owner:      owner,
		readOnly:   !d.CanWrite,
		liveSync:   liveSync,
		sortWeight: d.SortWeight,
	}
}

// Descriptor returns the immutable metadata of the property.
func (p *Property) Descriptor() *meta.Descriptor { return p.desc }

// Name returns the property name.
func (p *Property) Name() string { return p.desc.Name }

// DisplayName returns the label shown next to the editor.
func (p *Property) DisplayName() string { return p.desc.DisplayName }

// Category returns the declared category key, which may be empty.
func (p *Property) Category() string { return p.desc.Category }

// Description returns the help text of the property.
func (p *Property) Description() string { return p.desc.Description }

// Owner returns the object the property belongs to.
func (p *Property) Owner() any { return p.owner }

// Value returns the current, possibly uncommitted, value.
func (p *Property) Value() any { return p.value }

// OriginalValue returns the last committed value.
func (p *Property) OriginalValue() any { return p.original }

// IsDirty reports whether Value differs from OriginalValue.
func (p *Property) IsDirty() bool { return !equal(p.value, p.original) }

// IsReadOnly reports whether edits are rejected at commit.
func (p *Property) IsReadOnly() bool { return p.readOnly }

// SetReadOnly marks the property read-only. A property whose descriptor
// cannot write stays read-only regardless of ro.
func (p *Property) SetReadOnly(ro bool) {
	ro = ro || !p.desc.CanWrite
	if ro == p.readOnly {
		return
	}
	p.readOnly = ro
	p.listeners.NotifyPropertyChanged(FieldReadOnly)
}

// LiveSync reports whether every SetValue commits immediately.
func (p *Property) LiveSync() bool { return p.liveSync }

// SetLiveSync toggles immediate commits.
func (p *Property) SetLiveSync(on bool) { p.liveSync = on }

// SortWeight returns the effective sort weight. Higher weights sort first.
func (p *Property) SortWeight() int { return p.sortWeight }

// SetSortWeight overrides the effective sort weight.
func (p *Property) SetSortWeight(w int) {
	if w == p.sortWeight {
		return
	}
	p.sortWeight = w
	p.listeners.NotifyPropertyChanged(FieldSortWeight)
}

// AddPropertyListener registers fn to receive the name of each changed field
// (FieldValue, FieldOriginalValue, FieldErrors, FieldReadOnly, FieldSortWeight).
func (p *Property) AddPropertyListener(fn func(field string)) func() {
	return p.listeners.AddPropertyListener(fn)
}

// ReadFromSource reads the live value and makes it both the current and the
// committed value.
func (p *Property) ReadFromSource() error {
	v, err := p.desc.Value()
	if err != nil {
		return err
	}
	p.setOriginal(v)
	p.assign(v)
	p.setConvErr(nil)
	return nil
}

// RefreshFromSource re-reads the live value after an external change. Reads
// that return the cached value raise no notifications. Refreshes arriving
// while the property writes through to its owner are ignored.
func (p *Property) RefreshFromSource() {
	if p.writing {
		return
	}
	if err := p.ReadFromSource(); err != nil {
		Logger().Warn("refresh failed", zap.String("property", p.Name()), zap.Error(err))
	}
}

// TryConvert coerces v to the declared type. When that fails and a default
// is declared, the default is coerced instead.
func (p *Property) TryConvert(v any) (any, bool) {
	out, err := p.convert(v)
	return out, err == nil
}

func (p *Property) convert(v any) (any, error) {
	out, err := convert.Value(v, p.desc)
	if err == nil {
		return out, nil
	}
	if p.desc.HasDefault {
		if def, derr := convert.Value(p.desc.Default, p.desc); derr == nil {
			return def, nil
		}
	}
	return nil, err
}

// SetValue stores v as the current value. With live sync on, v is
// converted and committed first, so observers see a single Value change
// carrying either the converted value or the restored original.
func (p *Property) SetValue(v any) {
	if p.liveSync {
		p.commit(v)
		return
	}
	p.assign(v)
}

// Reset discards an uncommitted value.
func (p *Property) Reset() {
	p.assign(p.original)
	p.setConvErr(nil)
}

// CommitOrRollback converts the current value and writes it to the owner.
// On success Value and OriginalValue both hold the converted value. On
// failure Value is restored from OriginalValue, OriginalValue is written back
// to the owner, and the failure is kept as a structural error until the next
// successful commit or read.
func (p *Property) CommitOrRollback() bool {
	return p.commit(p.value)
}

func (p *Property) commit(input any) bool {
	const op = "model.Property.CommitOrRollback"

	converted, err := p.convert(input)
	if err == nil && p.readOnly {
		err = griderrors.ErrReadOnly
	}
	if err == nil {
		err = p.writeThrough(converted)
		if err == nil {
			p.assign(converted)
			p.setOriginal(converted)
			// Validation results may change with any committed value.
			p.convErr = nil
			p.listeners.NotifyPropertyChanged(FieldErrors)
			return true
		}
	}

	Logger().Debug("rolling back",
		zap.String("property", p.Name()),
		zap.Any("input", input),
		zap.Error(err))

	// Rejected input is announced as a Value change even when Value already
	// equals the original, so editors showing the input are reset.
	rejected := !equal(p.value, p.original) || !equal(input, p.original)
	p.value = p.original
	if rejected {
		p.listeners.NotifyPropertyChanged(FieldValue)
	}
	if !p.readOnly {
		if werr := p.writeThrough(p.original); werr != nil {
			Logger().Warn("rollback write failed", zap.String("property", p.Name()), zap.Error(werr))
		}
	}
	p.setConvErr(&griderrors.GridError{
		Op:       op,
		Kind:     griderrors.KindConversion,
		Property: p.Name(),
		Err:      err,
	})
	return false
}

func (p *Property) writeThrough(v any) error {
	p.writing = true
	defer func() { p.writing = false }()
	return p.desc.SetValue(v)
}

// Errors returns the owner's validation errors for this property followed
// by the structural error of the last failed commit, if any.
func (p *Property) Errors() []error {
	var errs []error
	if v, ok := p.owner.(Validator); ok {
		for _, err := range v.ValidateProperty(p.Name()) {
			if err != nil {
				errs = append(errs, err)
			}
		}
	}
	if p.convErr != nil {
		errs = append(errs, p.convErr)
	}
	return errs
}

// IsValid reports whether Errors is empty.
func (p *Property) IsValid() bool { return len(p.Errors()) == 0 }

// Compare orders properties by sort weight descending, then by display name
// ignoring case, then by name.
func (p *Property) Compare(other *Property) int {
	if p.sortWeight != other.sortWeight {
		if p.sortWeight > other.sortWeight {
			return -1
		}
		return 1
	}
	if c := compareFolded(p.DisplayName(), other.DisplayName()); c != 0 {
		return c
	}
	return strings.Compare(p.Name(), other.Name())
}

func (p *Property) assign(v any) {
	if equal(p.value, v) {
		return
	}
	p.value = v
	p.listeners.NotifyPropertyChanged(FieldValue)
}

func (p *Property) setOriginal(v any) {
	if equal(p.original, v) {
		return
	}
	p.original = v
	p.listeners.NotifyPropertyChanged(FieldOriginalValue)
}

func (p *Property) setConvErr(err error) {
	if p.convErr == nil && err == nil {
		return
	}
	p.convErr = err
	p.listeners.NotifyPropertyChanged(FieldErrors)
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// compareFolded compares a and b after Unicode case folding.
func compareFolded(a, b string) int {
	c := cases.Fold()
	return strings.Compare(c.String(a), c.String(b))
}
