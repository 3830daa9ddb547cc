package cmd

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/propgrid/cmd/propgrid/internal/demo"
)

func newTestEditor(t *testing.T) *editModel {
	t.Helper()
	setup(t)
	s, err := newSession()
	require.NoError(t, err)
	t.Cleanup(s.close)
	return newEditModel(s)
}

func (m *editModel) press(keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

// focus moves the cursor to the row labelled name.
func (m *editModel) focus(t *testing.T, name string) {
	t.Helper()
	for i, l := range m.lines {
		if l.name == name {
			m.cursor = i
			return
		}
	}
	t.Fatalf("no row %q", name)
}

func TestEditToggleAndCommit(t *testing.T) {
	m := newTestEditor(t)
	obj := m.s.object

	m.focus(t, "Enabled")
	m.press("enter")
	assert.True(t, obj.Enabled, "edits wait for commit")
	assert.True(t, m.current().dirty)

	m.press("c")
	assert.False(t, obj.Enabled)
	assert.Equal(t, "committed", m.status)
	assert.False(t, m.current().dirty)
}

func TestEditText(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Name")
	m.press("enter")
	require.Equal(t, stateText, m.state)
	assert.Equal(t, "Living room", m.input.Value())

	m.input.SetValue("Kitchen")
	m.press("enter")
	assert.Equal(t, stateBrowse, m.state)
	assert.Equal(t, "Kitchen", m.s.grid.Property("Name").Value())

	m.press("c")
	assert.Equal(t, "Kitchen", m.s.object.Name)
}

func TestEditTextCancel(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Name")
	m.press("enter")
	m.input.SetValue("Attic")
	m.press("esc")
	assert.Equal(t, stateBrowse, m.state)
	assert.Equal(t, "Living room", m.s.grid.Property("Name").Value())
}

func TestEditPasswordMasksInput(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Network")
	m.press("enter")
	m.focus(t, "Password")
	m.press("enter")
	require.Equal(t, stateText, m.state)
	assert.Equal(t, textinput.EchoPassword, m.input.EchoMode)

	m.input.SetValue("hunter2")
	m.press("enter")
	assert.NotContains(t, m.View(), "hunter2")
}

func TestEditCollapseCategory(t *testing.T) {
	m := newTestEditor(t)
	before := len(m.lines)

	m.focus(t, "Audio output")
	m.press("enter")
	assert.Less(t, len(m.lines), before)

	m.press("enter")
	assert.Len(t, m.lines, before)
}

func TestEditPickerPopup(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Mode")
	m.press("enter")
	require.Equal(t, statePopup, m.state)
	assert.Equal(t, 2, m.s.overlay.Len())
	assert.Contains(t, m.View(), "Broadcast")

	m.press("down", "enter")
	assert.Equal(t, stateBrowse, m.state)
	assert.Zero(t, m.s.overlay.Len())
	assert.Equal(t, "Live", m.current().value)

	m.press("c")
	assert.Equal(t, demo.PresetLive, m.s.object.Mode)
}

func TestEditPopupDismiss(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Mode")
	m.press("enter", "esc")
	assert.Equal(t, stateBrowse, m.state)
	assert.Zero(t, m.s.overlay.Len())
	assert.Equal(t, "Studio", m.current().value)
}

func TestEditPickerCycles(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Mode")
	m.press("left")
	assert.Equal(t, "Broadcast", m.current().value)
	m.press("right", "right")
	assert.Equal(t, "Live", m.current().value)
}

func TestEditFlagsPopup(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Channels")
	m.press("enter", "down", "down", " ")
	require.Equal(t, statePopup, m.state, "flags stay open while toggling")
	m.press("esc")

	m.press("c")
	assert.Equal(t, demo.ChannelLeft|demo.ChannelRight|demo.ChannelCenter, m.s.object.Channels)
}

func TestEditSliderLiveSync(t *testing.T) {
	m := newTestEditor(t)

	m.press("s")
	m.focus(t, "Master volume")
	m.press("right")
	assert.Equal(t, 45, m.s.object.Volume())

	m.press("left", "left")
	assert.Equal(t, 35, m.s.object.Volume())
}

func TestEditReadOnlyRow(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Serial")
	m.press("enter")
	assert.Equal(t, stateBrowse, m.state)
	assert.Contains(t, m.status, "read-only")
}

func TestEditResetAndRollback(t *testing.T) {
	m := newTestEditor(t)

	m.focus(t, "Latency")
	m.press("enter")
	m.input.SetValue("soon")
	m.press("enter")
	m.press("c")
	assert.Contains(t, m.status, "Latency")
	assert.Equal(t, 20*time.Millisecond, m.s.object.Latency)
	assert.NotEmpty(t, m.current().errors)

	m.focus(t, "Name")
	m.press("enter")
	m.input.SetValue("Den")
	m.press("enter", "x")
	assert.Equal(t, "Living room", m.s.grid.Property("Name").Value())
}

func TestEditExternalChange(t *testing.T) {
	m := newTestEditor(t)

	m.s.object.SetVolume(90)
	assert.Contains(t, m.status, "Volume")
	m.press("r")
	m.focus(t, "Master volume")
	assert.Contains(t, m.current().value, "90")
}

func TestEditGroupingAndQuit(t *testing.T) {
	m := newTestEditor(t)

	m.press("g")
	assert.False(t, m.s.grid.Grouping())
	for _, l := range m.lines {
		assert.False(t, l.header)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
