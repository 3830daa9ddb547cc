// Package overlay hosts transient popups above the grid rows.
//
// An [Overlay] is the collaborator that shows entries on top of the grid; a
// [Stack] is an in-memory implementation. [Show] inserts a popup with a
// dismissible barrier beneath it, and [DialogHost] drives a popup from a
// single selected/unselected signal.
package overlay

import "github.com/google/uuid"

// NewEntry creates an Entry with a unique ID.
// Always use this constructor rather than literal struct creation
// to ensure proper keying.
func NewEntry(anchor string, content any) *Entry {
	return &Entry{
		Anchor:  anchor,
		Content: content,
		id:      uuid.New(),
	}
}

// Entry is a single item in an overlay.
type Entry struct {
	// Anchor names the row the entry is positioned against. Empty means the
	// entry is not anchored.
	Anchor string

	// Content is the popup visual. It is opaque to this package.
	Content any

	// Opaque indicates this entry blocks input from reaching the rows.
	// Entries below it still receive input.
	Opaque bool

	// Barrier marks a dismiss barrier. Dismissing a barrier calls OnDismiss.
	Barrier bool

	// OnDismiss is called when a barrier entry is dismissed.
	OnDismiss func()

	id uuid.UUID
}

// ID returns the stable identifier of the entry.
func (e *Entry) ID() uuid.UUID {
	if e.id == uuid.Nil {
		e.id = uuid.New()
	}
	return e.id
}
