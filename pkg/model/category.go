package model

import (
	"slices"
	"strings"

	"github.com/go-drift/propgrid/pkg/notify"
)

// MiscCategory is the key of the category that collects properties without
// a declared category.
const MiscCategory = "Misc"

// FieldExpanded is passed to category listeners when expansion changes.
const FieldExpanded = "IsExpanded"

// Category is an ordered, non-empty group of properties.
type Category struct {
	name        string
	displayName string
	sortWeight  int
	expanded    bool
	props       []*Property

	listeners notify.Notifier
}

// Name returns the category key. The implicit category of an ungrouped
// grid has an empty name.
func (c *Category) Name() string { return c.name }

// DisplayName returns the header label.
func (c *Category) DisplayName() string { return c.displayName }

// SortWeight returns the category weight. Higher weights sort first.
func (c *Category) SortWeight() int { return c.sortWeight }

// IsExpanded reports whether the category shows its properties.
func (c *Category) IsExpanded() bool { return c.expanded }

// SetExpanded expands or collapses the category.
func (c *Category) SetExpanded(on bool) {
	if c.expanded == on {
		return
	}
	c.expanded = on
	c.listeners.NotifyPropertyChanged(FieldExpanded)
}

// Properties returns the properties of the category in display order.
func (c *Category) Properties() []*Property { return slices.Clone(c.props) }

// Len returns the number of properties.
func (c *Category) Len() int { return len(c.props) }

// AddPropertyListener registers fn for category changes.
func (c *Category) AddPropertyListener(fn func(field string)) func() {
	return c.listeners.AddPropertyListener(fn)
}

func (c *Category) compare(o *Category) int {
	if c.sortWeight != o.sortWeight {
		if c.sortWeight > o.sortWeight {
			return -1
		}
		return 1
	}
	if r := compareFolded(c.displayName, o.displayName); r != 0 {
		return r
	}
	return strings.Compare(c.name, o.name)
}

// Categories groups the properties of a Source.
type Categories struct {
	grouping bool
	src      *Source
	cats     []*Category
}

// NewCategories creates an empty category set.
func NewCategories(grouping bool) *Categories {
	return &Categories{grouping: grouping}
}

// Grouping reports whether properties are partitioned by category.
func (cs *Categories) Grouping() bool { return cs.grouping }

// SetGrouping switches grouping and rebuilds from the last source.
func (cs *Categories) SetGrouping(on bool) {
	if cs.grouping == on {
		return
	}
	cs.grouping = on
	if cs.src != nil {
		cs.Rebuild(cs.src)
	}
}

// Categories returns the categories in display order.
func (cs *Categories) Categories() []*Category { return slices.Clone(cs.cats) }

// Category returns the category with the given key, or nil.
func (cs *Categories) Category(name string) *Category {
	for _, c := range cs.cats {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Rebuild recomputes the categories from src.
//
// Without grouping every property lands in one implicit category and its
// sort weight is reset to 0, so properties order by display name alone.
// With grouping each property keeps its declared weight and lands in the
// category it declares, or in MiscCategory. Category options come from the
// metadata of the bound object.
func (cs *Categories) Rebuild(src *Source) {
	cs.src = src
	cs.cats = nil
	if src == nil || src.Len() == 0 {
		return
	}
	props := src.Properties()

	if !cs.grouping {
		for _, p := range props {
			p.SetSortWeight(0)
		}
		slices.SortStableFunc(props, (*Property).Compare)
		cs.cats = []*Category{{expanded: true, props: props}}
		return
	}

	md := src.Metadata()
	byKey := map[string]*Category{}
	for _, p := range props {
		p.SetSortWeight(p.Descriptor().SortWeight)
		key := p.Category()
		if key == "" {
			key = MiscCategory
		}
		c := byKey[key]
		if c == nil {
			c = &Category{name: key, displayName: key, expanded: true}
			if opts, ok := md.Category(key); ok {
				if opts.DisplayName != "" {
					c.displayName = opts.DisplayName
				}
				c.sortWeight = opts.SortWeight
				c.expanded = !opts.Collapsed
			}
			byKey[key] = c
			cs.cats = append(cs.cats, c)
		}
		c.props = append(c.props, p)
	}
	for _, c := range cs.cats {
		slices.SortStableFunc(c.props, (*Property).Compare)
	}
	slices.SortStableFunc(cs.cats, (*Category).compare)
}
