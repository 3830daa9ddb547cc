// Package notify provides the property change-notification capability shared by
// inspected objects and the grid's own models.
//
// An inspected object opts into live refresh by implementing [PropertyNotifier],
// usually by embedding a [Notifier] and calling NotifyPropertyChanged from its
// setters:
//
//	type Settings struct {
//	    notify.Notifier
//	    volume int
//	}
//
//	func (s *Settings) SetVolume(v int) {
//	    if s.volume == v {
//	        return
//	    }
//	    s.volume = v
//	    s.NotifyPropertyChanged("Volume")
//	}
package notify

// PropertyNotifier is implemented by values that announce property changes.
type PropertyNotifier interface {
	// AddPropertyListener registers fn to receive the name of each changed
	// property. It returns a function that removes the listener.
	AddPropertyListener(fn func(name string)) (remove func())
}

// Notifier is an embeddable [PropertyNotifier]. The zero value is ready to use.
//
// Listeners run synchronously on the goroutine that calls NotifyPropertyChanged,
// in registration order. A listener may remove itself or others while being
// dispatched; removals take effect for the next notification.
type Notifier struct {
	listeners Broadcaster[string]
}

// AddPropertyListener adds a callback that is called when a property changes.
// Returns an unsubscribe function. Calling it more than once is a no-op.
func (n *Notifier) AddPropertyListener(fn func(name string)) func() {
	return n.listeners.Add(fn)
}

// NotifyPropertyChanged calls all registered listeners with name.
func (n *Notifier) NotifyPropertyChanged(name string) {
	n.listeners.Emit(name)
}

// ListenerCount reports the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	return n.listeners.Len()
}
