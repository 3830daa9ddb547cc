package meta

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
)

// Registry maps inspected types to their metadata.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]TypeMetadata
}

// DefaultRegistry is used when no registry is supplied.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[reflect.Type]TypeMetadata)}
}

// Register merges md into the metadata for t. Pointer types are registered
// under their element type.
func (r *Registry) Register(t reflect.Type, md TypeMetadata) {
	t = baseType(t)
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t] = r.types[t].Merge(md)
}

// RegisterType merges md into the metadata for T.
func RegisterType[T any](r *Registry, md TypeMetadata) {
	r.Register(reflect.TypeFor[T](), md)
}

// Lookup returns the metadata registered for t.
func (r *Registry) Lookup(t reflect.Type) (TypeMetadata, bool) {
	t = baseType(t)
	if r == nil || t == nil {
		return TypeMetadata{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	md, ok := r.types[t]
	return md, ok
}

// LoadYAML registers metadata from a YAML document whose top-level keys are
// type names. Each name must match the type name of one of samples.
//
//	AudioSettings:
//	  properties:
//	    Volume:
//	      category: Output
//	      range: {min: 0, max: 100, step: 1}
//	  categories:
//	    Output: {sort_weight: 10}
func (r *Registry) LoadYAML(data []byte, samples ...any) error {
	var doc map[string]TypeMetadata
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &griderrors.GridError{Op: "meta.Registry.LoadYAML", Kind: griderrors.KindMetadata, Err: err}
	}

	byName := make(map[string]reflect.Type, len(samples))
	for _, s := range samples {
		if t := baseType(reflect.TypeOf(s)); t != nil {
			byName[t.Name()] = t
		}
	}

	// Every name is resolved before anything is registered, so a bad
	// document leaves the registry untouched.
	names := slices.Sorted(maps.Keys(doc))
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			return &griderrors.GridError{
				Op:   "meta.Registry.LoadYAML",
				Kind: griderrors.KindMetadata,
				Err:  fmt.Errorf("no sample registered for type %q", name),
			}
		}
	}
	for _, name := range names {
		r.Register(byName[name], doc[name])
	}
	return nil
}

// LoadFile reads path and passes it to LoadYAML.
func (r *Registry) LoadFile(path string, samples ...any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read metadata file: %w", err)
	}
	return r.LoadYAML(data, samples...)
}

func baseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
