package meta

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	griderrors "github.com/go-drift/propgrid/pkg/errors"
)

// EnumValue is one named constant of an [EnumType].
type EnumValue struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// EnumType is a lookup table of named constants.
//
// When Flags is set the table describes a bit set: a value is any
// combination of declared bits, and pickers present it as a multi-select.
type EnumType struct {
	Name   string      `yaml:"name"`
	Values []EnumValue `yaml:"values"`
	Flags  bool        `yaml:"flags"`
}

// NewEnum builds a simple (single-valued) enumeration.
func NewEnum(name string, values ...EnumValue) *EnumType {
	return &EnumType{Name: name, Values: values}
}

// NewFlags builds a bit-flag enumeration.
func NewFlags(name string, values ...EnumValue) *EnumType {
	return &EnumType{Name: name, Values: values, Flags: true}
}

// Lookup returns the value of the constant called name. Matching is exact
// first, then case-insensitive.
func (e *EnumType) Lookup(name string) (int64, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	for _, v := range e.Values {
		if strings.EqualFold(v.Name, name) {
			return v.Value, true
		}
	}
	return 0, false
}

// NameOf returns the name of the constant equal to v.
func (e *EnumType) NameOf(v int64) (string, bool) {
	for _, ev := range e.Values {
		if ev.Value == v {
			return ev.Name, true
		}
	}
	return "", false
}

// Names lists the constant names in declaration order.
func (e *EnumType) Names() []string {
	names := make([]string, len(e.Values))
	for i, v := range e.Values {
		names[i] = v.Name
	}
	return names
}

// Mask is the union of all declared bits.
func (e *EnumType) Mask() int64 {
	var m int64
	for _, v := range e.Values {
		m |= v.Value
	}
	return m
}

// Valid reports whether v can be represented by the table.
func (e *EnumType) Valid(v int64) bool {
	if e.Flags {
		return v&^e.Mask() == 0
	}
	_, ok := e.NameOf(v)
	return ok
}

// Split decomposes a flags value into the names of its single-bit constants,
// in declaration order. Bits not covered by any constant are appended as a
// decimal remainder. A zero value yields the name of a zero constant if one
// is declared.
func (e *EnumType) Split(v int64) []string {
	if v == 0 {
		if name, ok := e.NameOf(0); ok {
			return []string{name}
		}
		return nil
	}
	var names []string
	rest := v
	for _, ev := range e.Values {
		if ev.Value == 0 || bits.OnesCount64(uint64(ev.Value)) != 1 {
			continue
		}
		if v&ev.Value == ev.Value {
			names = append(names, ev.Name)
			rest &^= ev.Value
		}
	}
	if rest != 0 {
		names = append(names, strconv.FormatInt(rest, 10))
	}
	return names
}

// Combine ORs the named constants together. Numeric names are accepted.
func (e *EnumType) Combine(names []string) (int64, error) {
	var v int64
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		bit, ok := e.Lookup(name)
		if !ok {
			n, err := strconv.ParseInt(name, 0, 64)
			if err != nil {
				return 0, fmt.Errorf("%w: %q is not a member of %s", griderrors.ErrNotConvertible, name, e.Name)
			}
			bit = n
		}
		if !e.Flags && len(names) > 1 {
			return 0, fmt.Errorf("%w: %s is not a flags enumeration", griderrors.ErrNotConvertible, e.Name)
		}
		v |= bit
	}
	return v, nil
}

// Parse reads a constant name, a flags expression ("A|B" or "A, B") or an
// integer literal.
func (e *EnumType) Parse(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if v, ok := e.Lookup(text); ok {
		return v, nil
	}
	if n, err := strconv.ParseInt(text, 0, 64); err == nil {
		return n, nil
	}
	if !e.Flags {
		return 0, fmt.Errorf("%w: %q is not a member of %s", griderrors.ErrNotConvertible, text, e.Name)
	}
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == '|' || r == ',' })
	return e.Combine(parts)
}

// Format renders v as a constant name, a "|"-joined flags expression, or a
// decimal number when nothing matches.
func (e *EnumType) Format(v int64) string {
	if name, ok := e.NameOf(v); ok && (!e.Flags || v == 0 || bits.OnesCount64(uint64(v)) == 1) {
		return name
	}
	if e.Flags {
		if names := e.Split(v); len(names) > 0 {
			return strings.Join(names, "|")
		}
	}
	return strconv.FormatInt(v, 10)
}
