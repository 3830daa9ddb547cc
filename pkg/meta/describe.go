package meta

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
)

var (
	errNoAccessor = griderrors.New("property has no accessor")
	errorType     = reflect.TypeFor[error]()
)

// Accessor exposes one property of an [Inspectable] value.
type Accessor struct {
	// Name is the property name.
	Name string
	// Type is the declared type.
	Type reflect.Type
	// Get reads the live value.
	Get func() (any, error)
	// Set writes a value of Type. Nil makes the property read-only.
	Set func(any) error
	// Options is the lowest-priority metadata for the property.
	Options PropertyOptions
}

// Inspectable is implemented by values whose editable surface is not their
// struct shape, such as maps or proxies.
type Inspectable interface {
	InspectProperties() []Accessor
}

// Describe enumerates the properties of obj.
//
// Inspectable values describe themselves. Otherwise obj must be a struct or
// pointer to struct: every exported field becomes a property, and every
// method pair X()/SetX(v) becomes a property named X. A SetX method also takes
// over writes to an exported field X so that the object can announce the
// change. Fields and methods of values that are not addressable are
// read-only.
//
// Metadata is resolved with increasing priority from Accessor options or the
// `grid` struct tag, the registry entry for obj's type, and obj's own
// [MetadataProvider]. The resolved type metadata is returned alongside the
// descriptors.
//
// Describe returns nothing for nil. Malformed tags and unusable accessors are
// reported to the error handler and skipped.
func Describe(obj any, reg *Registry) ([]*Descriptor, TypeMetadata) {
	if isNil(obj) {
		return nil, TypeMetadata{}
	}
	if reg == nil {
		reg = DefaultRegistry
	}
	md, _ := reg.Lookup(reflect.TypeOf(obj))
	if p, ok := obj.(MetadataProvider); ok {
		md = md.Merge(p.PropertyMetadata())
	}

	var descs []*Descriptor
	if in, ok := obj.(Inspectable); ok {
		descs = describeAccessors(in.InspectProperties(), md)
	} else {
		descs = describeStruct(reflect.ValueOf(obj), md)
	}
	return dedupe(descs), md
}

func describeAccessors(accs []Accessor, md TypeMetadata) []*Descriptor {
	descs := make([]*Descriptor, 0, len(accs))
	for _, acc := range accs {
		if acc.Name == "" || acc.Get == nil || acc.Type == nil {
			report("meta.Describe", acc.Name, griderrors.KindEnumeration, errNoAccessor)
			continue
		}
		opts := acc.Options.Merge(md.Property(acc.Name))
		descs = append(descs, newDescriptor(acc.Name, acc.Type, acc.Get, acc.Set, opts))
	}
	return descs
}

type structProp struct {
	name string
	typ  reflect.Type
	get  func() (any, error)
	set  func(any) error
	tag  PropertyOptions
}

func describeStruct(ptr reflect.Value, md TypeMetadata) []*Descriptor {
	rv := ptr
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var props []*structProp
	byName := make(map[string]*structProp)

	for _, f := range reflect.VisibleFields(rv.Type()) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}
		tag, skip, err := parseTag(f.Tag.Get("grid"))
		if err != nil {
			report("meta.Describe", f.Name, griderrors.KindMetadata, err)
		}
		if skip {
			continue
		}
		p := &structProp{name: f.Name, typ: f.Type, tag: tag, get: fieldGetter(rv, f.Index)}
		if rv.CanAddr() {
			p.set = fieldSetter(rv, f.Index, f.Type)
		}
		props = append(props, p)
		byName[f.Name] = p
	}

	pt := ptr.Type()
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		name, argType, ok := setterShape(m)
		if !ok {
			continue
		}
		set := methodSetter(ptr.Method(i), argType)
		if p, exists := byName[name]; exists {
			if p.typ == argType {
				p.set = set
			}
			continue
		}
		gm, ok := pt.MethodByName(name)
		if !ok || !getterShape(gm, argType) {
			continue
		}
		p := &structProp{name: name, typ: argType, get: methodGetter(ptr.Method(gm.Index)), set: set}
		props = append(props, p)
		byName[name] = p
	}

	descs := make([]*Descriptor, 0, len(props))
	for _, p := range props {
		descs = append(descs, newDescriptor(p.name, p.typ, p.get, p.set, p.tag.Merge(md.Property(p.name))))
	}
	return descs
}

func fieldGetter(rv reflect.Value, index []int) func() (any, error) {
	return func() (any, error) {
		fv, err := rv.FieldByIndexErr(index)
		if err != nil {
			return nil, err
		}
		return fv.Interface(), nil
	}
}

func fieldSetter(rv reflect.Value, index []int, t reflect.Type) func(any) error {
	return func(v any) error {
		fv, err := rv.FieldByIndexErr(index)
		if err != nil {
			return err
		}
		nv, err := assignable(v, t)
		if err != nil {
			return err
		}
		fv.Set(nv)
		return nil
	}
}

func setterShape(m reflect.Method) (string, reflect.Type, bool) {
	if !strings.HasPrefix(m.Name, "Set") || len(m.Name) == len("Set") {
		return "", nil, false
	}
	mt := m.Type
	if mt.NumIn() != 2 {
		return "", nil, false
	}
	switch mt.NumOut() {
	case 0:
	case 1:
		if mt.Out(0) != errorType {
			return "", nil, false
		}
	default:
		return "", nil, false
	}
	return strings.TrimPrefix(m.Name, "Set"), mt.In(1), true
}

func getterShape(m reflect.Method, t reflect.Type) bool {
	mt := m.Type
	if mt.NumIn() != 1 {
		return false
	}
	switch mt.NumOut() {
	case 1:
		return mt.Out(0) == t
	case 2:
		return mt.Out(0) == t && mt.Out(1) == errorType
	}
	return false
}

func methodGetter(fn reflect.Value) func() (any, error) {
	return func() (any, error) {
		out := fn.Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}
}

func methodSetter(fn reflect.Value, t reflect.Type) func(any) error {
	return func(v any) error {
		nv, err := assignable(v, t)
		if err != nil {
			return err
		}
		out := fn.Call([]reflect.Value{nv})
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}
}

func assignable(v any, t reflect.Type) (reflect.Value, error) {
	nv := reflect.ValueOf(v)
	if !nv.IsValid() {
		return reflect.Zero(t), nil
	}
	if !nv.Type().AssignableTo(t) {
		return reflect.Value{}, &griderrors.ConversionError{Input: v, Type: t.String()}
	}
	return nv, nil
}

// parseTag reads a `grid` struct tag:
//
//	grid:"-"
//	grid:"category=Output,name=Master volume,weight=10,readonly"
func parseTag(tag string) (opts PropertyOptions, skip bool, err error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return opts, false, nil
	}
	if tag == "-" {
		return opts, true, nil
	}
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		key, value, hasValue := strings.Cut(part, "=")
		switch {
		case part == "":
		case key == "readonly" && !hasValue:
			opts.ReadOnly = true
		case key == "hidden" && !hasValue:
			opts.Hidden = true
		case key == "password" && !hasValue:
			opts.Password = true
		case key == "category":
			opts.Category = value
		case key == "name":
			opts.DisplayName = value
		case key == "desc":
			opts.Description = value
		case key == "editor":
			opts.Editor = value
		case key == "mask":
			opts.MaskChar = value
		case key == "weight":
			w, convErr := strconv.Atoi(value)
			if convErr != nil {
				return PropertyOptions{}, false, fmt.Errorf("invalid weight %q in grid tag: %w", value, convErr)
			}
			opts.SortWeight = w
		default:
			return PropertyOptions{}, false, fmt.Errorf("unknown grid tag option %q", part)
		}
	}
	return opts, false, nil
}

func dedupe(descs []*Descriptor) []*Descriptor {
	seen := make(map[string]bool, len(descs))
	out := descs[:0]
	for _, d := range descs {
		if seen[d.Name] {
			report("meta.Describe", d.Name, griderrors.KindEnumeration, fmt.Errorf("duplicate property %q", d.Name))
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out
}

func report(op, property string, kind griderrors.ErrorKind, err error) {
	griderrors.Report(&griderrors.GridError{Op: op, Kind: kind, Property: property, Err: err})
}

func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
