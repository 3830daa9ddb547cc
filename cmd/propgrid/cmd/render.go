package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/propgrid/pkg/binding"
	"github.com/go-drift/propgrid/pkg/convert"
	"github.com/go-drift/propgrid/pkg/editors"
	"github.com/go-drift/propgrid/pkg/layout"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	readOnlyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const sliderWidth = 10

// rowLine is the plain text of one laid out row.
type rowLine struct {
	header   bool
	name     string
	value    string
	editor   string
	readOnly bool
	dirty    bool
	errors   []error
	surface  *binding.Surface
}

func lines(rows *layout.Rows) []rowLine {
	out := make([]rowLine, 0, rows.Len())
	for _, r := range rows.Rows() {
		cell, _ := r.Name.(*layout.NameCell)
		line := rowLine{}
		if cell != nil {
			line.name = cell.Text
			line.header = cell.Header
		}
		if s, ok := r.Value.(*binding.Surface); ok && s.Property() != nil {
			p := s.Property()
			line.surface = s
			line.value = display(s.Editor())
			if h := s.Handle(); h != nil {
				line.editor = h.Strategy()
			}
			line.readOnly = p.IsReadOnly()
			line.dirty = p.IsDirty()
			line.errors = p.Errors()
		}
		out = append(out, line)
	}
	return out
}

// display renders the state of an editor as text.
func display(ed editors.Editor) string {
	switch e := ed.(type) {
	case nil:
		return ""
	case *editors.Toggle:
		if e.On() {
			return "[x]"
		}
		return "[ ]"
	case *editors.Picker:
		return e.Selected()
	case *editors.Flags:
		sel := e.Selected()
		if len(sel) == 0 {
			return "(none)"
		}
		return strings.Join(sel, "|")
	case *editors.Slider:
		filled := min(max(int(e.Fraction()*sliderWidth+0.5), 0), sliderWidth)
		return fmt.Sprintf("%s%s %v", strings.Repeat("■", filled), strings.Repeat("·", sliderWidth-filled), e.Value())
	case *editors.Text:
		return e.Display()
	default:
		return convert.Format(ed.Value(), nil)
	}
}

func nameWidth(ls []rowLine) int {
	w := 0
	for _, l := range ls {
		if !l.header {
			w = max(w, lipgloss.Width(l.name))
		}
	}
	return w + 2
}

// renderRows renders the rows as a table. selected highlights one row; pass
// -1 for none.
func renderRows(ls []rowLine, selected int) string {
	width := nameWidth(ls)
	var b strings.Builder
	for i, l := range ls {
		if l.header {
			b.WriteString(headerStyle.Render(l.name))
			b.WriteString("\n")
			continue
		}
		name := fmt.Sprintf("  %-*s", width, l.name)
		value := l.value
		marker := " "
		if l.dirty {
			marker = "*"
		}
		switch {
		case i == selected:
			name = selectedStyle.Render(name)
		default:
			name = nameStyle.Render(name)
		}
		if l.readOnly {
			value = readOnlyStyle.Render(value + " (read-only)")
		} else {
			value = valueStyle.Render(value)
		}
		fmt.Fprintf(&b, "%s%s %s", name, marker, value)
		if l.editor != "" {
			b.WriteString(" ")
			b.WriteString(helpStyle.Render("<" + l.editor + ">"))
		}
		if len(l.errors) > 0 {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render("! " + l.errors[0].Error()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
