package meta

// PropertyOptions configures how one property is presented and edited.
// Zero fields mean "not specified" and leave lower-priority settings intact.
type PropertyOptions struct {
	// Category groups the property. Empty falls back to the misc bucket.
	Category string `yaml:"category"`
	// DisplayName replaces the property name in the name cell.
	DisplayName string `yaml:"display_name"`
	// Description is advisory help text.
	Description string `yaml:"description"`
	// Default is the fallback value used when an input cannot be converted.
	Default any `yaml:"default"`
	// Hidden excludes the property from inspection.
	Hidden bool `yaml:"hidden"`
	// ReadOnly prevents writes even when the property is settable.
	ReadOnly bool `yaml:"read_only"`
	// SortWeight orders properties; higher weights come first.
	SortWeight int `yaml:"sort_weight"`
	// Editor names an editor registered with the resolver, overriding the
	// built-in type rules.
	Editor string `yaml:"editor"`
	// Range bounds numeric properties and selects the slider editor.
	Range *Range `yaml:"range"`
	// Enum maps integer or string properties to named constants.
	Enum *EnumType `yaml:"enum"`
	// Password masks the value in text editors.
	Password bool `yaml:"password"`
	// MaskChar overrides the masking character for password properties.
	MaskChar string `yaml:"mask_char"`
}

// Merge returns o overlaid with every field set in over.
func (o PropertyOptions) Merge(over PropertyOptions) PropertyOptions {
	if over.Category != "" {
		o.Category = over.Category
	}
	if over.DisplayName != "" {
		o.DisplayName = over.DisplayName
	}
	if over.Description != "" {
		o.Description = over.Description
	}
	if over.Default != nil {
		o.Default = over.Default
	}
	if over.Hidden {
		o.Hidden = true
	}
	if over.ReadOnly {
		o.ReadOnly = true
	}
	if over.SortWeight != 0 {
		o.SortWeight = over.SortWeight
	}
	if over.Editor != "" {
		o.Editor = over.Editor
	}
	if over.Range != nil {
		o.Range = over.Range
	}
	if over.Enum != nil {
		o.Enum = over.Enum
	}
	if over.Password {
		o.Password = true
	}
	if over.MaskChar != "" {
		o.MaskChar = over.MaskChar
	}
	return o
}

// CategoryOptions configures a category of properties.
type CategoryOptions struct {
	// DisplayName replaces the category key in headers.
	DisplayName string `yaml:"display_name"`
	// SortWeight orders categories; higher weights come first.
	SortWeight int `yaml:"sort_weight"`
	// Collapsed starts the category collapsed. Categories are expanded by default.
	Collapsed bool `yaml:"collapsed"`
}

// TypeMetadata is the metadata for one inspected type, keyed by property
// name and category name.
type TypeMetadata struct {
	Properties map[string]PropertyOptions `yaml:"properties"`
	Categories map[string]CategoryOptions `yaml:"categories"`
}

// Property returns the options for name.
func (m TypeMetadata) Property(name string) PropertyOptions {
	return m.Properties[name]
}

// Category returns the options for the category key name.
func (m TypeMetadata) Category(name string) (CategoryOptions, bool) {
	c, ok := m.Categories[name]
	return c, ok
}

// Merge returns m overlaid with over. Property options merge field by field;
// category options are replaced whole.
func (m TypeMetadata) Merge(over TypeMetadata) TypeMetadata {
	out := TypeMetadata{
		Properties: make(map[string]PropertyOptions, len(m.Properties)+len(over.Properties)),
		Categories: make(map[string]CategoryOptions, len(m.Categories)+len(over.Categories)),
	}
	for k, v := range m.Properties {
		out.Properties[k] = v
	}
	for k, v := range over.Properties {
		out.Properties[k] = out.Properties[k].Merge(v)
	}
	for k, v := range m.Categories {
		out.Categories[k] = v
	}
	for k, v := range over.Categories {
		out.Categories[k] = v
	}
	return out
}

// MetadataProvider is implemented by values that describe themselves.
// Its metadata takes precedence over the registry.
type MetadataProvider interface {
	PropertyMetadata() TypeMetadata
}
