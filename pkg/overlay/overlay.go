package overlay

import (
	"slices"

	"github.com/go-drift/propgrid/pkg/notify"
)

// Overlay shows entries above the grid.
type Overlay interface {
	// Insert adds entry at the top. Inserting an entry that is already
	// present panics.
	Insert(entry *Entry)
	// Remove takes entry out. Removing an absent entry is a no-op.
	Remove(entry *Entry)
}

// Stack is an in-memory Overlay. Entries are ordered bottom to top.
// The zero value is ready to use.
type Stack struct {
	entries []*Entry
	changes notify.Broadcaster[struct{}]
}

// Insert adds entry at the top.
func (s *Stack) Insert(entry *Entry) {
	s.InsertRelative(entry, nil, nil)
}

// InsertRelative adds entry relative to another entry.
// Positioning: exactly one of below/above may be non-nil.
//   - below non-nil: inserts just below that entry
//   - above non-nil: inserts just above that entry
//   - both nil: inserts at top
//
// Panics if both below AND above are non-nil, or if entry is already present.
func (s *Stack) InsertRelative(entry, below, above *Entry) {
	if below != nil && above != nil {
		panic("overlay: both below and above specified")
	}
	if s.Contains(entry) {
		panic("overlay: entry already inserted")
	}
	entry.ID()

	switch {
	case below != nil:
		if i := s.index(below); i >= 0 {
			s.entries = slices.Insert(s.entries, i, entry)
		} else {
			// below not found, insert at bottom
			s.entries = slices.Insert(s.entries, 0, entry)
		}
	case above != nil:
		if i := s.index(above); i >= 0 {
			s.entries = slices.Insert(s.entries, i+1, entry)
		} else {
			s.entries = append(s.entries, entry)
		}
	default:
		s.entries = append(s.entries, entry)
	}
	s.changes.Emit(struct{}{})
}

// InsertAll adds entries at the top, each above the previous one.
func (s *Stack) InsertAll(entries ...*Entry) {
	for _, e := range entries {
		s.Insert(e)
	}
}

// Remove takes entry out of the stack.
func (s *Stack) Remove(entry *Entry) {
	i := s.index(entry)
	if i < 0 {
		return
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	s.changes.Emit(struct{}{})
}

// Rearrange replaces the entry order. Entries not in entries are removed.
func (s *Stack) Rearrange(entries []*Entry) {
	s.entries = slices.Clone(entries)
	s.changes.Emit(struct{}{})
}

// DismissTop dismisses the topmost barrier, as a tap outside a popup
// would. It reports whether a barrier was found.
func (s *Stack) DismissTop() bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if !e.Barrier {
			continue
		}
		if e.OnDismiss != nil {
			e.OnDismiss()
		} else {
			s.Remove(e)
		}
		return true
	}
	return false
}

// Entries returns the entries bottom to top.
func (s *Stack) Entries() []*Entry { return slices.Clone(s.entries) }

// Len returns the number of entries.
func (s *Stack) Len() int { return len(s.entries) }

// Top returns the topmost entry, or nil.
func (s *Stack) Top() *Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// Anchored returns the entries anchored to the named row.
func (s *Stack) Anchored(anchor string) []*Entry {
	var out []*Entry
	for _, e := range s.entries {
		if e.Anchor == anchor {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether entry is in the stack.
func (s *Stack) Contains(entry *Entry) bool { return s.index(entry) >= 0 }

// AddListener registers fn to be called after every change.
func (s *Stack) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return s.changes.Add(func(struct{}) { fn() })
}

func (s *Stack) index(entry *Entry) int {
	return slices.Index(s.entries, entry)
}
