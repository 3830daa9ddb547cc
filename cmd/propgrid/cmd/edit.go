package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/propgrid/pkg/editors"
	"github.com/go-drift/propgrid/pkg/model"
	"github.com/go-drift/propgrid/pkg/overlay"
)

func init() {
	RegisterCommand(&Command{
		Name:  "edit",
		Short: "Edit the demo object interactively",
		Long: `Edit the properties of the demo object in the terminal.

Keys:
  up/down, k/j     Move between rows
  enter, space     Edit the row, flip a toggle, open a picker or
                   expand/collapse a category
  left/right, h/l  Move a slider or cycle a picker
  esc              Cancel text input or close a popup
  c                Commit every edited property
  x                Reset the row to its stored value
  g                Switch category headers on or off
  s                Switch live sync on or off
  r                Re-read every property from the object
  q, ctrl+c        Quit`,
		Usage: "propgrid edit",
		Run:   runEdit,
	})
}

func runEdit(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("edit takes no arguments")
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	p := tea.NewProgram(newEditModel(s), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type editState int

const (
	stateBrowse editState = iota
	stateText
	statePopup
)

type editModel struct {
	s *session

	lines  []rowLine
	cursor int
	state  editState

	input       textinput.Model
	text        *editors.Text
	popupCursor int

	status  string
	unwatch []func()
}

func newEditModel(s *session) *editModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256

	m := &editModel{s: s, input: ti}
	m.unwatch = append(m.unwatch,
		s.rows.AddListener(m.refresh),
		s.overlay.AddListener(m.overlayChanged),
		s.grid.AddListener(func(e model.Event) {
			if e.Kind == model.EventPropertyChanged && e.Field == "" {
				m.status = fmt.Sprintf("%s changed on the object", e.Property)
			}
		}),
	)
	m.refresh()
	m.cursor = m.next(-1, 1)
	return m
}

func (m *editModel) refresh() {
	m.lines = lines(m.s.rows)
	if m.cursor >= len(m.lines) {
		m.cursor = max(0, len(m.lines)-1)
	}
}

func (m *editModel) overlayChanged() {
	switch {
	case m.popup() != nil && m.state != statePopup:
		m.state = statePopup
		m.popupCursor = 0
	case m.popup() == nil && m.state == statePopup:
		m.state = stateBrowse
	}
}

// popup returns the opaque entry at the top of the overlay, or nil.
func (m *editModel) popup() *overlay.Entry {
	if top := m.s.overlay.Top(); top != nil && top.Opaque {
		return top
	}
	return nil
}

func (m *editModel) current() *rowLine {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return nil
	}
	return &m.lines[m.cursor]
}

// next returns the index of the row next to i in direction dir. At either
// end it stays on i.
func (m *editModel) next(i, dir int) int {
	if j := i + dir; j >= 0 && j < len(m.lines) {
		return j
	}
	return max(i, 0)
}

func (m *editModel) Init() tea.Cmd {
	return nil
}

func (m *editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == stateText {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if key.String() == "ctrl+c" {
		return m, m.quit()
	}

	switch m.state {
	case stateText:
		return m.updateText(key)
	case statePopup:
		m.updatePopup(key)
		return m, nil
	}

	m.status = ""
	switch key.String() {
	case "q":
		return m, m.quit()
	case "up", "k":
		m.cursor = m.next(m.cursor, -1)
	case "down", "j":
		m.cursor = m.next(m.cursor, 1)
	case "enter", " ":
		return m, m.activate()
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "c":
		failed := m.s.grid.Commit()
		if len(failed) > 0 {
			m.status = "rolled back: " + strings.Join(failed, ", ")
		} else {
			m.status = "committed"
		}
	case "x":
		if l := m.current(); l != nil && l.surface != nil {
			l.surface.Property().Reset()
		}
	case "g":
		m.s.grid.SetGrouping(!m.s.grid.Grouping())
	case "s":
		live := !m.s.grid.Source().LiveSync()
		m.s.grid.SetLiveSync(live)
		m.status = fmt.Sprintf("live sync %v", live)
	case "r":
		m.s.grid.RefreshAll()
	}
	m.refresh()
	return m, nil
}

func (m *editModel) quit() tea.Cmd {
	for _, remove := range m.unwatch {
		remove()
	}
	m.unwatch = nil
	return tea.Quit
}

func (m *editModel) activate() tea.Cmd {
	l := m.current()
	if l == nil {
		return nil
	}
	if l.header {
		for _, c := range m.s.grid.Categories() {
			if c.DisplayName() == l.name {
				c.SetExpanded(!c.IsExpanded())
				break
			}
		}
		return nil
	}
	if l.surface == nil {
		return nil
	}
	if l.readOnly {
		m.status = l.name + " is read-only"
		return nil
	}

	switch ed := l.surface.Editor().(type) {
	case *editors.Toggle:
		ed.Flip()
	case *editors.Picker:
		ed.Open()
	case *editors.Flags:
		ed.Open()
	case *editors.Text:
		m.text = ed
		m.input.SetValue(ed.Text())
		m.input.EchoMode = textinput.EchoNormal
		if ed.IsMasked() {
			m.input.EchoMode = textinput.EchoPassword
			m.input.EchoCharacter = ed.MaskChar()
		}
		m.input.CursorEnd()
		m.state = stateText
		return m.input.Focus()
	}
	m.refresh()
	return nil
}

func (m *editModel) adjust(dir int) {
	l := m.current()
	if l == nil || l.surface == nil || l.readOnly {
		return
	}
	switch ed := l.surface.Editor().(type) {
	case *editors.Slider:
		ed.Step(dir)
	case *editors.Picker:
		n := len(ed.Choices())
		if n == 0 {
			return
		}
		i := indexOf(ed.Choices(), ed.Selected())
		_ = ed.SelectIndex(((i+dir)%n + n) % n)
	case *editors.Toggle:
		ed.Flip()
	}
}

func indexOf(choices []editors.Choice, name string) int {
	for i, c := range choices {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (m *editModel) updateText(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.text.SetText(m.input.Value())
		m.text.Commit()
		m.endText()
		return m, nil
	case "esc":
		m.endText()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *editModel) endText() {
	m.input.Blur()
	m.input.Reset()
	m.text = nil
	m.state = stateBrowse
	m.refresh()
}

func (m *editModel) updatePopup(key tea.KeyMsg) {
	items := popupItems(m.popup())
	switch key.String() {
	case "esc", "q":
		m.s.overlay.DismissTop()
	case "up", "k":
		m.popupCursor = max(0, m.popupCursor-1)
	case "down", "j":
		m.popupCursor = min(len(items)-1, m.popupCursor+1)
	case "enter", " ":
		l := m.current()
		if l == nil || l.surface == nil || m.popupCursor >= len(items) {
			return
		}
		switch ed := l.surface.Editor().(type) {
		case *editors.Picker:
			_ = ed.SelectIndex(m.popupCursor)
		case *editors.Flags:
			_ = ed.Toggle(items[m.popupCursor])
		}
	}
	m.refresh()
}

// popupItems returns the labels of a picker or flags popup.
func popupItems(e *overlay.Entry) []string {
	if e == nil {
		return nil
	}
	switch c := e.Content.(type) {
	case []editors.Choice:
		out := make([]string, len(c))
		for i, ch := range c {
			out[i] = ch.Name
		}
		return out
	case []string:
		return c
	}
	return nil
}

func (m *editModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("propgrid"))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(fmt.Sprintf("live sync: %v", m.s.grid.Source().LiveSync())))
	b.WriteString("\n\n")
	b.WriteString(renderRows(m.lines, m.cursor))

	switch m.state {
	case stateText:
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case statePopup:
		b.WriteString("\n")
		b.WriteString(m.popupView())
	}

	if l := m.current(); l != nil && len(l.errors) > 0 {
		for _, err := range l.errors {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render("! " + err.Error()))
		}
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: edit  ←/→: adjust  c: commit  x: reset  g: group  s: live sync  q: quit"))
	return b.String()
}

func (m *editModel) popupView() string {
	items := popupItems(m.popup())
	var flags *editors.Flags
	if l := m.current(); l != nil && l.surface != nil {
		flags, _ = l.surface.Editor().(*editors.Flags)
	}
	rows := make([]string, len(items))
	for i, item := range items {
		label := item
		if flags != nil {
			mark := "[ ]"
			if flags.IsSet(item) {
				mark = "[x]"
			}
			label = mark + " " + item
		}
		if i == m.popupCursor {
			label = selectedStyle.Render(label)
		}
		rows[i] = label
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}
