package overlay

import "sync"

// PopupOptions configures Show.
type PopupOptions struct {
	// Anchor names the row the popup belongs to.
	Anchor string
	// Content is the popup visual.
	Content any
	// Persistent prevents the barrier from dismissing the popup.
	Persistent bool
	// OnDismiss is called once when the popup is dismissed, by any means.
	OnDismiss func()
}

// Show inserts a popup into o with a barrier entry beneath it.
//
// The returned dismiss function removes both entries. It is idempotent.
// A nil overlay shows nothing and returns a dismiss function that only
// runs OnDismiss.
func Show(o Overlay, opts PopupOptions) (dismiss func()) {
	var once sync.Once
	var barrier, popup *Entry

	dismiss = func() {
		once.Do(func() {
			if o != nil {
				o.Remove(popup)
				o.Remove(barrier)
			}
			if opts.OnDismiss != nil {
				opts.OnDismiss()
			}
		})
	}
	if o == nil {
		return dismiss
	}

	barrier = NewEntry(opts.Anchor, nil)
	barrier.Barrier = true
	if !opts.Persistent {
		barrier.OnDismiss = dismiss
	} else {
		barrier.OnDismiss = func() {}
	}

	popup = NewEntry(opts.Anchor, opts.Content)
	popup.Opaque = true

	o.Insert(barrier)
	o.Insert(popup)
	return dismiss
}
