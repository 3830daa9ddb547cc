package model

import (
	"reflect"
	"slices"

	"go.uber.org/zap"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/notify"
)

// EventKind identifies a source event.
type EventKind int

const (
	// EventRebound is emitted after Bind replaced the property set.
	EventRebound EventKind = iota
	// EventPropertyChanged is emitted for each change of a property, whether
	// raised by the Property itself or by the bound object.
	EventPropertyChanged
)

func (k EventKind) String() string {
	switch k {
	case EventRebound:
		return "rebound"
	case EventPropertyChanged:
		return "property-changed"
	default:
		return "unknown"
	}
}

// Event describes a change in a Source.
type Event struct {
	Kind EventKind
	// Property is the property name. Empty for EventRebound.
	Property string
	// Field is the changed Property field (see FieldValue and friends), or
	// empty when the bound object raised the notification.
	Field string
}

// Option configures a Source.
type Option func(*Source)

// WithRegistry sets the metadata registry consulted by Bind.
// Defaults to meta.DefaultRegistry.
func WithRegistry(r *meta.Registry) Option {
	return func(s *Source) { s.registry = r }
}

// WithLiveSync makes every property commit on each SetValue.
func WithLiveSync(on bool) Option {
	return func(s *Source) { s.liveSync = on }
}

// WithLogger overrides the package logger for one Source.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) { s.logger = l }
}

// Source owns the properties of one bound object.
type Source struct {
	registry *meta.Registry
	liveSync bool
	logger   *zap.Logger

	obj    any
	md     meta.TypeMetadata
	props  []*Property
	byName map[string]*Property

	subs   []func()
	events notify.Broadcaster[Event]
}

// NewSource creates an empty Source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		registry: meta.DefaultRegistry,
		byName:   map[string]*Property{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) log() *zap.Logger {
	if s.logger != nil {
		return s.logger
	}
	return Logger()
}

// Bind replaces the property set with the properties of obj. Properties that
// cannot be read are reported and left out. Binding nil yields an empty
// source.
func (s *Source) Bind(obj any) {
	const op = "model.Source.Bind"

	s.release()
	s.obj = obj

	descs, md := meta.Describe(obj, s.registry)
	s.md = md

	props := make([]*Property, 0, len(descs))
	byName := make(map[string]*Property, len(descs))
	for _, d := range descs {
		if !d.Browsable {
			continue
		}
		p := newProperty(obj, d, s.liveSync)
		if err := p.ReadFromSource(); err != nil {
			griderrors.Report(&griderrors.GridError{
				Op:       op,
				Kind:     griderrors.KindEnumeration,
				Property: d.Name,
				Err:      err,
			})
			s.log().Warn("property excluded", zap.String("property", d.Name), zap.Error(err))
			continue
		}
		props = append(props, p)
		byName[d.Name] = p
	}
	slices.SortStableFunc(props, (*Property).Compare)

	s.props = props
	s.byName = byName
	for _, p := range props {
		name := p.Name()
		s.subs = append(s.subs, p.AddPropertyListener(func(field string) {
			s.events.Emit(Event{Kind: EventPropertyChanged, Property: name, Field: field})
		}))
	}
	if n, ok := obj.(notify.PropertyNotifier); ok && !isNil(obj) {
		s.subs = append(s.subs, n.AddPropertyListener(s.objectChanged))
	}

	s.log().Debug("bound", zap.String("type", typeName(obj)), zap.Int("properties", len(props)))
	s.events.Emit(Event{Kind: EventRebound})
}

func (s *Source) objectChanged(name string) {
	if p := s.byName[name]; p != nil {
		p.RefreshFromSource()
	}
	s.events.Emit(Event{Kind: EventPropertyChanged, Property: name})
}

func (s *Source) release() {
	for _, remove := range s.subs {
		remove()
	}
	s.subs = nil
}

// Object returns the bound object.
func (s *Source) Object() any { return s.obj }

// Metadata returns the type metadata resolved for the bound object.
func (s *Source) Metadata() meta.TypeMetadata { return s.md }

// LiveSync reports whether new properties are created with live sync on.
func (s *Source) LiveSync() bool { return s.liveSync }

// SetLiveSync toggles live sync on the source and on every property.
func (s *Source) SetLiveSync(on bool) {
	s.liveSync = on
	for _, p := range s.props {
		p.SetLiveSync(on)
	}
}

// Properties returns the properties in display order.
func (s *Source) Properties() []*Property {
	return slices.Clone(s.props)
}

// Property returns the property called name, or nil.
func (s *Source) Property(name string) *Property {
	return s.byName[name]
}

// Len returns the number of properties.
func (s *Source) Len() int { return len(s.props) }

// RefreshAll re-reads every property from the bound object.
func (s *Source) RefreshAll() {
	for _, p := range s.props {
		p.RefreshFromSource()
	}
}

// Errors returns the non-empty error lists keyed by property name.
func (s *Source) Errors() map[string][]error {
	out := map[string][]error{}
	for _, p := range s.props {
		if errs := p.Errors(); len(errs) > 0 {
			out[p.Name()] = errs
		}
	}
	return out
}

// IsValid reports whether no property has errors.
func (s *Source) IsValid() bool {
	for _, p := range s.props {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// IsReadOnly reports whether no property accepts writes.
func (s *Source) IsReadOnly() bool {
	for _, p := range s.props {
		if !p.IsReadOnly() {
			return false
		}
	}
	return true
}

// Commit commits every dirty property and returns the names of those that
// rolled back.
func (s *Source) Commit() []string {
	var failed []string
	for _, p := range s.props {
		if !p.IsDirty() {
			continue
		}
		if !p.CommitOrRollback() {
			failed = append(failed, p.Name())
		}
	}
	return failed
}

// AddListener registers fn for source events and returns a function that
// removes it.
func (s *Source) AddListener(fn func(Event)) func() {
	return s.events.Add(fn)
}

// Close unsubscribes from the bound object and drops every property.
// Listeners added with AddListener are kept.
func (s *Source) Close() {
	s.release()
	s.obj = nil
	s.md = meta.TypeMetadata{}
	s.props = nil
	s.byName = map[string]*Property{}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
