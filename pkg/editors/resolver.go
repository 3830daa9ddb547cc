package editors

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
	"github.com/go-drift/propgrid/pkg/model"
	"github.com/go-drift/propgrid/pkg/overlay"
)

// Factory builds the editor for an explicit editor override. The result
// must implement Editor.
type Factory func(p *model.Property) (any, error)

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverlay sets the overlay that hosts picker popups.
func WithOverlay(o overlay.Overlay) Option {
	return func(r *Resolver) { r.env.Overlay = o }
}

// WithStrategy adds a strategy ahead of the built-in chain. Strategies
// added later run first.
func WithStrategy(s Strategy) Option {
	return func(r *Resolver) { r.custom = append([]Strategy{s}, r.custom...) }
}

// WithFactory registers a factory for an editor override identifier.
func WithFactory(id string, f Factory) Option {
	return func(r *Resolver) { r.Register(id, f) }
}

// WithLogger overrides the package logger for one Resolver.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// Resolver creates editors for properties.
//
// Resolution order:
//  1. An editor override names a registered factory or a built-in strategy.
//     An unknown name, a failing factory or a result that is not an Editor
//     is a configuration error and is returned as *errors.EditorError.
//  2. Otherwise the first strategy that can handle the property is used:
//     custom strategies, then toggle, picker, slider and text.
//  3. A strategy that declines falls back to text.
//
// Password properties get the chosen strategy wrapped in PasswordStrategy.
type Resolver struct {
	env       Env
	custom    []Strategy
	builtin   []Strategy
	fallback  Strategy
	factories map[string]Factory
	logger    *zap.Logger
}

// NewResolver creates a resolver with the built-in chain.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		builtin:   []Strategy{ToggleStrategy{}, PickerStrategy{}, SliderStrategy{}},
		fallback:  TextStrategy{},
		factories: map[string]Factory{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) log() *zap.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Register binds an editor override identifier to a factory, replacing any
// previous binding. Factories take precedence over built-in strategy names.
func (r *Resolver) Register(id string, f Factory) {
	if f == nil {
		delete(r.factories, id)
		return
	}
	r.factories[id] = f
}

// Overlay returns the overlay handed to strategies.
func (r *Resolver) Overlay() overlay.Overlay { return r.env.Overlay }

// CreateEditor resolves and creates the editor for p.
func (r *Resolver) CreateEditor(p *model.Property) (*Handle, error) {
	if id := p.Descriptor().Editor; id != "" {
		return r.createOverride(p, id)
	}

	s := r.choose(p)
	ed := s.Create(p, r.env)
	if ed == nil {
		r.log().Debug("strategy declined",
			zap.String("property", p.Name()),
			zap.String("strategy", s.Name()))
		s = r.wrap(p, r.fallback)
		ed = s.Create(p, r.env)
	}
	r.log().Debug("editor created",
		zap.String("property", p.Name()),
		zap.String("strategy", s.Name()))
	return &Handle{id: uuid.New(), editor: ed, strategy: s}, nil
}

// UpdateEditor refreshes the editor behind h from p. It returns h when the
// editor was refreshed in place and a new handle when it had to be
// replaced. The caller owns disposing the old editor.
func (r *Resolver) UpdateEditor(p *model.Property, h *Handle) (*Handle, error) {
	if h == nil || h.editor == nil {
		return r.CreateEditor(p)
	}
	if h.strategy == nil {
		seed(p, h.editor)
		return h, nil
	}
	if !h.strategy.Update(p, h.editor) {
		return h, nil
	}
	r.log().Debug("editor replaced",
		zap.String("property", p.Name()),
		zap.String("strategy", h.strategy.Name()))
	return r.CreateEditor(p)
}

func (r *Resolver) choose(p *model.Property) Strategy {
	for _, s := range slices.Concat(r.custom, r.builtin) {
		if s.CanHandle(p) {
			return r.wrap(p, s)
		}
	}
	return r.wrap(p, r.fallback)
}

func (r *Resolver) wrap(p *model.Property, s Strategy) Strategy {
	if _, ok := s.(PasswordStrategy); ok {
		return s
	}
	if p.Descriptor().Password {
		return PasswordStrategy{Inner: s}
	}
	return s
}

func (r *Resolver) builtinByName(id string) Strategy {
	if id == NamePassword {
		return PasswordStrategy{}
	}
	for _, s := range slices.Concat(r.custom, r.builtin, []Strategy{r.fallback}) {
		if s.Name() == id {
			return s
		}
	}
	return nil
}

func (r *Resolver) createOverride(p *model.Property, id string) (*Handle, error) {
	fail := func(err error) (*Handle, error) {
		eerr := &griderrors.EditorError{Editor: id, Property: p.Name(), Err: err}
		griderrors.Report(&griderrors.GridError{
			Op:       "editors.Resolver.CreateEditor",
			Kind:     griderrors.KindEditor,
			Property: p.Name(),
			Err:      eerr,
		})
		r.log().Error("editor override failed", zap.String("property", p.Name()), zap.Error(eerr))
		return nil, eerr
	}

	if f, ok := r.factories[id]; ok {
		var out any
		err := griderrors.Guard("editors.Factory", func() error {
			var ferr error
			out, ferr = f(p)
			return ferr
		})
		if err != nil {
			return fail(err)
		}
		ed, ok := out.(Editor)
		if !ok || ed == nil {
			return fail(griderrors.ErrNotEditor)
		}
		return &Handle{id: uuid.New(), editor: seed(p, ed), override: id}, nil
	}

	s := r.builtinByName(id)
	if s == nil {
		return fail(griderrors.ErrUnknownEditor)
	}
	s = r.wrap(p, s)
	ed := s.Create(p, r.env)
	if ed == nil {
		return fail(griderrors.ErrNotEditor)
	}
	return &Handle{id: uuid.New(), editor: ed, strategy: s, override: id}, nil
}
