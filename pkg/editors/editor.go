// Package editors resolves and implements the editors bound to grid rows.
//
// Editors are headless: each holds the state a widget would display and
// exposes the interactions a user can perform on it. A host renders them
// however it likes. Every user interaction that changes the value is
// reported through [ValueChangeNotifier]; SetValue, which the grid uses to
// push model state into an editor, never reports.
//
// A [Resolver] picks an editor for a property by walking an ordered chain
// of [Strategy] values that ends in the text strategy. Properties may name
// an editor explicitly, in which case a registered [Factory] builds it.
package editors

import (
	"github.com/go-drift/propgrid/pkg/notify"
)

// Editor is the minimal contract of every editor.
type Editor interface {
	// Value returns the value the editor currently shows.
	Value() any
	// SetValue replaces the shown value without raising a change.
	SetValue(v any)
}

// ValueChangeNotifier is implemented by editors that report user edits.
type ValueChangeNotifier interface {
	OnValueChanged(fn func(v any)) (remove func())
}

// ReadOnlySetter is implemented by editors with a reduced read-only state.
type ReadOnlySetter interface {
	SetReadOnly(ro bool)
}

// Masker is implemented by editors that can hide their content.
type Masker interface {
	SetMasked(on bool)
	SetMaskChar(r rune)
}

// Disposer is implemented by editors holding resources, such as an open
// popup, that must be released when the editor is replaced.
type Disposer interface {
	Dispose()
}

// base carries the change events and read-only flag shared by the
// built-in editors.
type base struct {
	changes  notify.Broadcaster[any]
	readOnly bool
}

// OnValueChanged registers fn for user edits.
func (b *base) OnValueChanged(fn func(v any)) func() {
	return b.changes.Add(fn)
}

// SetReadOnly enables or disables user edits.
func (b *base) SetReadOnly(ro bool) { b.readOnly = ro }

// IsReadOnly reports whether user edits are ignored.
func (b *base) IsReadOnly() bool { return b.readOnly }

func (b *base) emit(v any) { b.changes.Emit(v) }
