// Package binding connects a bound object to rows of editors.
//
// A [Grid] binds an object through a model.Source, groups its properties
// with model.Categories and lays out one name cell and one [Surface] per
// property in a layout.RowContainer. Each Surface owns the editor of its
// row and keeps it in step with the property.
package binding

import (
	"go.uber.org/zap"

	"github.com/go-drift/propgrid/pkg/editors"
	"github.com/go-drift/propgrid/pkg/layout"
	"github.com/go-drift/propgrid/pkg/meta"
	"github.com/go-drift/propgrid/pkg/model"
)

type config struct {
	resolver *editors.Resolver
	grouping bool
	liveSync bool
	registry *meta.Registry
	logger   *zap.Logger
}

// Option configures a Grid.
type Option func(*config)

// WithResolver sets the editor resolver. Defaults to editors.NewResolver().
func WithResolver(r *editors.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithGrouping groups rows under category headers.
func WithGrouping(on bool) Option {
	return func(c *config) { c.grouping = on }
}

// WithLiveSync commits every edit immediately.
func WithLiveSync(on bool) Option {
	return func(c *config) { c.liveSync = on }
}

// WithRegistry sets the metadata registry. Defaults to meta.DefaultRegistry.
func WithRegistry(r *meta.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithLogger overrides the package logger for one Grid.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Grid shows the properties of one object as rows of editors.
type Grid struct {
	rows     layout.RowContainer
	resolver *editors.Resolver
	source   *model.Source
	cats     *model.Categories
	logger   *zap.Logger

	surfaces map[string]*Surface
	unwatch  []func()
}

// NewGrid creates an empty grid laying out rows in rows.
func NewGrid(rows layout.RowContainer, opts ...Option) *Grid {
	c := config{registry: meta.DefaultRegistry}
	for _, opt := range opts {
		opt(&c)
	}
	if c.resolver == nil {
		c.resolver = editors.NewResolver()
	}
	if rows == nil {
		rows = &layout.Rows{}
	}
	srcOpts := []model.Option{model.WithRegistry(c.registry), model.WithLiveSync(c.liveSync)}
	if c.logger != nil {
		srcOpts = append(srcOpts, model.WithLogger(c.logger))
	}
	return &Grid{
		rows:     rows,
		resolver: c.resolver,
		source:   model.NewSource(srcOpts...),
		cats:     model.NewCategories(c.grouping),
		logger:   c.logger,
		surfaces: map[string]*Surface{},
	}
}

func (g *Grid) log() *zap.Logger {
	if g.logger != nil {
		return g.logger
	}
	return Logger()
}

// Bind shows obj. Every property gets an editor; an editor resolution
// error aborts the bind and leaves the grid empty. Binding nil empties the
// grid.
func (g *Grid) Bind(obj any) error {
	g.release()
	g.source.Bind(obj)
	g.cats.Rebuild(g.source)

	for _, p := range g.source.Properties() {
		s := NewSurface(g.resolver)
		s.logger = g.logger
		if err := s.Attach(p); err != nil {
			g.log().Error("bind aborted", zap.String("property", p.Name()), zap.Error(err))
			g.release()
			g.source.Close()
			g.cats.Rebuild(g.source)
			return err
		}
		g.surfaces[p.Name()] = s
	}
	g.layoutRows()
	return nil
}

// layoutRows re-creates the rows from the current categories. Collapsed
// categories show only their header.
func (g *Grid) layoutRows() {
	for _, remove := range g.unwatch {
		remove()
	}
	g.unwatch = nil
	g.rows.ClearRows()

	for _, c := range g.cats.Categories() {
		if g.cats.Grouping() {
			g.rows.AddRow(&layout.NameCell{Text: c.DisplayName(), Header: true}, nil)
			g.unwatch = append(g.unwatch, c.AddPropertyListener(func(field string) {
				if field == model.FieldExpanded {
					g.layoutRows()
				}
			}))
			if !c.IsExpanded() {
				continue
			}
		}
		for _, p := range c.Properties() {
			s := g.surfaces[p.Name()]
			if s == nil {
				continue
			}
			g.rows.AddRow(&layout.NameCell{Text: p.DisplayName(), Tooltip: p.Description()}, s)
		}
	}
}

func (g *Grid) release() {
	for _, remove := range g.unwatch {
		remove()
	}
	g.unwatch = nil
	g.rows.ClearRows()
	for _, s := range g.surfaces {
		s.Detach()
	}
	g.surfaces = map[string]*Surface{}
}

// Object returns the bound object.
func (g *Grid) Object() any { return g.source.Object() }

// Source returns the property source of the grid.
func (g *Grid) Source() *model.Source { return g.source }

// Property returns the property called name, or nil.
func (g *Grid) Property(name string) *model.Property { return g.source.Property(name) }

// Surface returns the surface of the property called name, or nil.
func (g *Grid) Surface(name string) *Surface { return g.surfaces[name] }

// Categories returns the categories in display order.
func (g *Grid) Categories() []*model.Category { return g.cats.Categories() }

// Grouping reports whether rows are grouped under category headers.
func (g *Grid) Grouping() bool { return g.cats.Grouping() }

// SetGrouping switches category headers on or off.
func (g *Grid) SetGrouping(on bool) {
	if on == g.cats.Grouping() {
		return
	}
	g.cats.SetGrouping(on)
	g.layoutRows()
}

// SetLiveSync switches live sync for every property.
func (g *Grid) SetLiveSync(on bool) { g.source.SetLiveSync(on) }

// RefreshAll re-reads every property from the bound object.
func (g *Grid) RefreshAll() { g.source.RefreshAll() }

// Errors returns the non-empty error lists keyed by property name.
func (g *Grid) Errors() map[string][]error { return g.source.Errors() }

// IsValid reports whether no property has errors.
func (g *Grid) IsValid() bool { return g.source.IsValid() }

// Commit commits every edited property and returns the names of those
// that rolled back.
func (g *Grid) Commit() []string { return g.source.Commit() }

// AddListener registers fn for changes of the bound object and its
// properties.
func (g *Grid) AddListener(fn func(model.Event)) func() { return g.source.AddListener(fn) }

// Close releases every editor and unbinds the object.
func (g *Grid) Close() {
	g.release()
	g.source.Close()
	g.cats.Rebuild(g.source)
}
