package binding

import (
	"go.uber.org/zap"

	"github.com/go-drift/propgrid/pkg/editors"
	"github.com/go-drift/propgrid/pkg/layout"
	"github.com/go-drift/propgrid/pkg/model"
)

// Surface is the value cell of one row. It owns at most one editor,
// forwards the editor's changes to its property and refreshes the editor
// when the property changes.
type Surface struct {
	resolver *editors.Resolver
	logger   *zap.Logger

	prop    *model.Property
	handle  *editors.Handle
	mounted bool

	unwatchEditor   func()
	unwatchProperty func()
}

// NewSurface creates a detached surface resolving editors with r.
func NewSurface(r *editors.Resolver) *Surface {
	if r == nil {
		r = editors.NewResolver()
	}
	return &Surface{resolver: r}
}

func (s *Surface) log() *zap.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

// Property returns the attached property, or nil.
func (s *Surface) Property() *model.Property { return s.prop }

// Handle returns the handle of the current editor, or nil.
func (s *Surface) Handle() *editors.Handle { return s.handle }

// Editor returns the current editor, or nil.
func (s *Surface) Editor() editors.Editor {
	if s.handle == nil {
		return nil
	}
	return s.handle.Editor()
}

// Attach binds the surface to p and creates its editor. A previous
// property is detached first. Editor resolution errors leave the surface
// detached.
func (s *Surface) Attach(p *model.Property) error {
	s.Detach()
	h, err := s.resolver.CreateEditor(p)
	if err != nil {
		return err
	}
	s.prop = p
	s.SetEditor(h)
	s.unwatchProperty = p.AddPropertyListener(s.propertyChanged)
	return nil
}

func (s *Surface) propertyChanged(field string) {
	switch field {
	case model.FieldValue, model.FieldReadOnly:
		if err := s.Refresh(); err != nil {
			s.log().Error("editor refresh failed", zap.String("property", s.prop.Name()), zap.Error(err))
		}
	}
}

// Refresh brings the editor up to date with the property, replacing it
// only when the resolver says it must.
func (s *Surface) Refresh() error {
	if s.prop == nil {
		return nil
	}
	h, err := s.resolver.UpdateEditor(s.prop, s.handle)
	if err != nil {
		return err
	}
	s.SetEditor(h)
	s.applyReadOnly()
	return nil
}

// SetEditor installs h as the current editor. Installing the current
// handle again does nothing. The previous editor is unsubscribed and
// disposed before h is wired.
func (s *Surface) SetEditor(h *editors.Handle) {
	if h == s.handle {
		return
	}
	s.releaseEditor()
	s.handle = h
	if h == nil || h.Editor() == nil {
		return
	}
	ed := h.Editor()
	s.applyReadOnly()
	if n, ok := ed.(editors.ValueChangeNotifier); ok {
		s.unwatchEditor = n.OnValueChanged(s.forward)
	}
	if v, ok := ed.(layout.Visual); ok && s.mounted {
		v.Mount()
	}
}

func (s *Surface) forward(v any) {
	if s.prop != nil {
		s.prop.SetValue(v)
	}
}

func (s *Surface) applyReadOnly() {
	if s.prop == nil || s.handle == nil {
		return
	}
	if ro, ok := s.handle.Editor().(editors.ReadOnlySetter); ok {
		ro.SetReadOnly(s.prop.IsReadOnly())
	}
}

func (s *Surface) releaseEditor() {
	if s.unwatchEditor != nil {
		s.unwatchEditor()
		s.unwatchEditor = nil
	}
	if s.handle == nil {
		return
	}
	ed := s.handle.Editor()
	if v, ok := ed.(layout.Visual); ok && s.mounted {
		v.Unmount()
	}
	if d, ok := ed.(editors.Disposer); ok {
		d.Dispose()
	}
	s.handle = nil
}

// Detach unsubscribes from the property and releases the editor.
func (s *Surface) Detach() {
	if s.unwatchProperty != nil {
		s.unwatchProperty()
		s.unwatchProperty = nil
	}
	s.releaseEditor()
	s.prop = nil
}

// Mount is called when the surface enters a row container.
func (s *Surface) Mount() {
	s.mounted = true
	if v, ok := s.Editor().(layout.Visual); ok {
		v.Mount()
	}
}

// Unmount is called when the surface leaves a row container.
func (s *Surface) Unmount() {
	s.mounted = false
	if v, ok := s.Editor().(layout.Visual); ok {
		v.Unmount()
	}
}

// IsMounted reports whether the surface is in a row container.
func (s *Surface) IsMounted() bool { return s.mounted }
