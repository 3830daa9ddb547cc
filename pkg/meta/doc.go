// Package meta discovers the inspectable properties of a value and the
// metadata that shapes how they are presented.
//
// # Descriptors
//
// [Describe] turns a value into a list of immutable [Descriptor]s. Structs are
// reflected field by field, and X()/SetX() method pairs become properties too.
// Values with a shape that is not a struct implement [Inspectable] and return
// [Accessor]s.
//
// # Metadata
//
// Presentation is configured with plain values rather than annotations:
// [PropertyOptions] per property and [CategoryOptions] per category, grouped
// in a [TypeMetadata]. Metadata comes from three places, lowest priority
// first:
//
//   - the `grid` struct tag or Accessor.Options
//   - a [Registry] entry for the value's type, populated in code or from YAML
//   - the value's own [MetadataProvider] implementation
//
// Example registration:
//
//	meta.RegisterType[AudioSettings](meta.DefaultRegistry, meta.TypeMetadata{
//	    Properties: map[string]meta.PropertyOptions{
//	        "Volume": {Category: "Output", Range: &meta.Range{Min: 0, Max: 100, Step: 1}},
//	    },
//	})
//
// # Enumerations
//
// Named constants are described by an [EnumType] lookup table. Setting Flags
// turns the table into a bit set edited as a multi-select.
package meta
