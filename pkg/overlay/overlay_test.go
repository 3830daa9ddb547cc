package overlay

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntryUniqueIDs(t *testing.T) {
	a := NewEntry("Volume", nil)
	b := NewEntry("Volume", nil)
	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, a.ID(), a.ID())

	literal := &Entry{}
	assert.NotEqual(t, uuid.Nil, literal.ID())
}

func TestStackInsertRelative(t *testing.T) {
	var s Stack
	a, b, c, d := NewEntry("a", nil), NewEntry("b", nil), NewEntry("c", nil), NewEntry("d", nil)

	s.Insert(a)
	s.Insert(b)
	s.InsertRelative(c, b, nil)
	s.InsertRelative(d, nil, a)

	assert.Equal(t, []*Entry{a, d, c, b}, s.Entries())
	assert.Same(t, b, s.Top())
}

func TestStackInsertPanics(t *testing.T) {
	var s Stack
	a := NewEntry("a", nil)
	s.Insert(a)

	assert.PanicsWithValue(t, "overlay: entry already inserted", func() { s.Insert(a) })
	assert.PanicsWithValue(t, "overlay: both below and above specified", func() {
		s.InsertRelative(NewEntry("b", nil), a, a)
	})
}

func TestStackRemoveAndRearrange(t *testing.T) {
	var s Stack
	changes := 0
	remove := s.AddListener(func() { changes++ })

	a, b := NewEntry("a", nil), NewEntry("b", nil)
	s.InsertAll(a, b)
	s.Remove(a)
	s.Remove(a)
	assert.Equal(t, []*Entry{b}, s.Entries())
	assert.Equal(t, 3, changes)

	s.Rearrange([]*Entry{a, b})
	assert.Equal(t, 2, s.Len())

	remove()
	s.Remove(b)
	assert.Equal(t, 4, changes)
	assert.False(t, s.Contains(b))
	assert.Nil(t, (&Stack{}).Top())
}

func TestShowAndDismiss(t *testing.T) {
	var s Stack
	dismissed := 0
	dismiss := Show(&s, PopupOptions{Anchor: "Mode", Content: "choices", OnDismiss: func() { dismissed++ }})

	require.Equal(t, 2, s.Len())
	assert.True(t, s.Entries()[0].Barrier)
	assert.Equal(t, "choices", s.Top().Content)
	assert.True(t, s.Top().Opaque)
	assert.Len(t, s.Anchored("Mode"), 2)

	dismiss()
	dismiss()
	assert.Zero(t, s.Len())
	assert.Equal(t, 1, dismissed)
}

func TestShowBarrierDismiss(t *testing.T) {
	var s Stack
	Show(&s, PopupOptions{Anchor: "Mode"})
	require.True(t, s.DismissTop())
	assert.Zero(t, s.Len())
	assert.False(t, s.DismissTop())

	Show(&s, PopupOptions{Anchor: "Mode", Persistent: true})
	require.True(t, s.DismissTop())
	assert.Equal(t, 2, s.Len())
}

func TestShowWithoutOverlay(t *testing.T) {
	called := false
	dismiss := Show(nil, PopupOptions{OnDismiss: func() { called = true }})
	dismiss()
	assert.True(t, called)
}

func TestDialogHostStateMachine(t *testing.T) {
	var s Stack
	builds := 0
	h := NewDialogHost(&s, "Channels", func() any { builds++; return builds })

	h.SetSelected(true)
	h.SetSelected(true)
	h.Toggle()
	h.Toggle()
	assert.True(t, h.IsOpen())
	assert.Equal(t, 2, s.Len(), "open-while-open must not add entries")
	assert.Equal(t, 2, builds)

	h.SetSelected(false)
	h.SetSelected(false)
	h.Close()
	assert.False(t, h.IsOpen())
	assert.Zero(t, s.Len())
}

func TestDialogHostBarrierClose(t *testing.T) {
	var s Stack
	h := NewDialogHost(&s, "Channels", nil)
	closed := 0
	h.OnClosed = func() { closed++ }

	h.SetSelected(true)
	s.DismissTop()

	assert.False(t, h.IsOpen())
	assert.Equal(t, 1, closed)

	h.SetSelected(true)
	assert.Equal(t, 2, s.Len())
}

func TestDialogHostWithoutOverlay(t *testing.T) {
	h := NewDialogHost(nil, "Channels", nil)
	h.Toggle()
	assert.True(t, h.IsOpen())
	h.Toggle()
	assert.False(t, h.IsOpen())
}
