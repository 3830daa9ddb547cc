// Package layout defines the contracts between the grid and the layout
// engine that arranges its rows.
//
// The grid never measures or draws anything. It hands name cells and editor
// visuals to a [RowContainer], which mounts them. [Rows] is an in-memory
// container that records what it was given.
package layout

// Visual is a value the layout engine can place in a row.
type Visual interface {
	// Mount is called when the visual enters a container.
	Mount()
	// Unmount is called when the visual leaves a container.
	Unmount()
}

// Size represents width and height dimensions in cells or pixels, as the
// layout engine defines them.
type Size struct {
	Width  float64
	Height float64
}

// EdgeInsets represents margins on each side of a visual.
type EdgeInsets struct {
	Top, Bottom, Left, Right float64
}

// EdgeInsetsAll returns insets with all sides set to v.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Top: v, Bottom: v, Left: v, Right: v}
}

// EdgeInsetsSymmetric returns insets with the given horizontal and vertical values.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Top: vertical, Bottom: vertical, Left: horizontal, Right: horizontal}
}

// Horizontal returns the sum of the left and right insets.
func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns the sum of the top and bottom insets.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }

// SizeHinter is implemented by visuals that suggest their own size.
type SizeHinter interface {
	SizeHint() Size
	Margin() EdgeInsets
}

// RowContainer arranges name/value pairs into rows.
type RowContainer interface {
	// AddRow appends a row. value may be nil for header rows.
	AddRow(name, value Visual)
	// ClearRows removes every row.
	ClearRows()
}

// VisualBase is an embeddable Visual that tracks whether it is mounted.
type VisualBase struct {
	mounted bool
}

// Mount marks the visual mounted.
func (v *VisualBase) Mount() { v.mounted = true }

// Unmount marks the visual unmounted.
func (v *VisualBase) Unmount() { v.mounted = false }

// IsMounted reports whether the visual is in a container.
func (v *VisualBase) IsMounted() bool { return v.mounted }
