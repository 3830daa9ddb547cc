package layout

import (
	"slices"

	"github.com/go-drift/propgrid/pkg/notify"
)

// NameCell is the label visual of a row.
type NameCell struct {
	VisualBase

	// Text is the label.
	Text string
	// Header marks a category header row.
	Header bool
	// Tooltip is advisory help text.
	Tooltip string
}

// SizeHint returns one line as wide as the label.
func (c *NameCell) SizeHint() Size {
	return Size{Width: float64(len([]rune(c.Text))), Height: 1}
}

// Margin indents property rows under their header.
func (c *NameCell) Margin() EdgeInsets {
	if c.Header {
		return EdgeInsets{}
	}
	return EdgeInsets{Left: 2}
}

// Row is one name/value pair.
type Row struct {
	Name  Visual
	Value Visual
}

// Rows is an in-memory RowContainer. The zero value is ready to use.
type Rows struct {
	rows    []Row
	changes notify.Broadcaster[struct{}]
}

// AddRow mounts name and value and appends them as a row.
func (r *Rows) AddRow(name, value Visual) {
	if name != nil {
		name.Mount()
	}
	if value != nil {
		value.Mount()
	}
	r.rows = append(r.rows, Row{Name: name, Value: value})
	r.changes.Emit(struct{}{})
}

// ClearRows unmounts every visual and removes every row.
func (r *Rows) ClearRows() {
	if len(r.rows) == 0 {
		return
	}
	for _, row := range r.rows {
		if row.Name != nil {
			row.Name.Unmount()
		}
		if row.Value != nil {
			row.Value.Unmount()
		}
	}
	r.rows = nil
	r.changes.Emit(struct{}{})
}

// Rows returns the rows in order.
func (r *Rows) Rows() []Row { return slices.Clone(r.rows) }

// Len returns the number of rows.
func (r *Rows) Len() int { return len(r.rows) }

// Row returns row i.
func (r *Rows) Row(i int) Row { return r.rows[i] }

// AddListener registers fn to be called after the rows change.
func (r *Rows) AddListener(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return r.changes.Add(func(struct{}) { fn() })
}
