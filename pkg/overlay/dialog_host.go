package overlay

// DialogHost shows a popup for one row while its selected signal is on.
//
// The host is a two-state machine: closed and open. Selecting an open host
// or deselecting a closed one does nothing, so a row never owns more than
// one popup.
type DialogHost struct {
	overlay Overlay
	anchor  string
	content func() any

	open    bool
	dismiss func()

	// OnClosed is called after the popup closes, including when the
	// barrier dismissed it.
	OnClosed func()
}

// NewDialogHost creates a closed host. content builds the popup visual each
// time the host opens. A nil overlay still tracks the open state.
func NewDialogHost(o Overlay, anchor string, content func() any) *DialogHost {
	return &DialogHost{overlay: o, anchor: anchor, content: content}
}

// IsOpen reports whether the popup is showing.
func (h *DialogHost) IsOpen() bool { return h.open }

// SetSelected opens the popup when selected is true and closes it when false.
func (h *DialogHost) SetSelected(selected bool) {
	if selected == h.open {
		return
	}
	if selected {
		h.openPopup()
		return
	}
	h.Close()
}

// Toggle flips the selected signal.
func (h *DialogHost) Toggle() { h.SetSelected(!h.open) }

// Close closes the popup if open.
func (h *DialogHost) Close() {
	if !h.open {
		return
	}
	h.dismiss()
}

func (h *DialogHost) openPopup() {
	var content any
	if h.content != nil {
		content = h.content()
	}
	h.open = true
	h.dismiss = Show(h.overlay, PopupOptions{
		Anchor:  h.anchor,
		Content: content,
		OnDismiss: func() {
			h.open = false
			h.dismiss = nil
			if h.OnClosed != nil {
				h.OnClosed()
			}
		},
	})
}
