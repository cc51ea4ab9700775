// Package store defines declarative package stores: named, filtered subsets
// of the catalog loaded from a directory of YAML files.
package store

import (
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/validation"
)

// Filter is the membership rule of a store. A package belongs to the store
// when it matches any value of any non-empty list.
type Filter struct {
	IncludeOrigins  []string `yaml:"include_origins" json:"include_origins"`
	IncludeSections []string `yaml:"include_sections" json:"include_sections"`
	IncludeTags     []string `yaml:"include_tags" json:"include_tags"`
	IncludePackages []string `yaml:"include_packages" json:"include_packages"`
}

// NewFilter builds a Filter, rejecting one with every list empty.
func NewFilter(origins, sections, tags, packages []string) (Filter, error) {
	f := Filter{
		IncludeOrigins:  nonNil(origins),
		IncludeSections: nonNil(sections),
		IncludeTags:     nonNil(tags),
		IncludePackages: nonNil(packages),
	}
	if f.IsEmpty() {
		return Filter{}, errors.ErrStoreEmptyFilters
	}
	return f, nil
}

// IsEmpty reports whether no criterion is set.
func (f Filter) IsEmpty() bool {
	return len(f.IncludeOrigins) == 0 && len(f.IncludeSections) == 0 &&
		len(f.IncludeTags) == 0 && len(f.IncludePackages) == 0
}

// CategoryMetadata decorates an auto-discovered category.
type CategoryMetadata struct {
	ID          string  `yaml:"id" json:"id"`
	Label       string  `yaml:"label" json:"label"`
	Icon        *string `yaml:"icon" json:"icon"`
	Description *string `yaml:"description" json:"description"`
}

// CustomSection overrides how a Debian section is presented in a store.
type CustomSection struct {
	Section     string  `yaml:"section" json:"section"`
	Label       string  `yaml:"label" json:"label"`
	Description string  `yaml:"description" json:"description"`
	Icon        *string `yaml:"icon" json:"icon"`
}

// Config is one store definition.
type Config struct {
	ID               string             `yaml:"id" json:"id"`
	Name             string             `yaml:"name" json:"name"`
	Description      string             `yaml:"description" json:"description"`
	Icon             *string            `yaml:"icon" json:"icon"`
	Banner           *string            `yaml:"banner" json:"banner"`
	Filters          Filter             `yaml:"filters" json:"filters"`
	CategoryMetadata []CategoryMetadata `yaml:"category_metadata" json:"category_metadata"`
	CustomSections   []CustomSection    `yaml:"custom_sections" json:"custom_sections"`
}

// NewConfig builds a store definition, validating its id and filter.
func NewConfig(id, name, description string, filters Filter) (*Config, error) {
	if err := validation.StoreID(id); err != nil {
		return nil, errors.Wrap(errors.ErrStoreID, err.Error())
	}
	if filters.IsEmpty() {
		return nil, errors.ErrStoreEmptyFilters
	}
	return &Config{ID: id, Name: name, Description: description, Filters: filters}, nil
}

// Category returns the metadata for a category id, if the store defines it.
func (c *Config) Category(id string) (CategoryMetadata, bool) {
	if c == nil {
		return CategoryMetadata{}, false
	}
	for _, m := range c.CategoryMetadata {
		if m.ID == id {
			return m, true
		}
	}
	return CategoryMetadata{}, false
}

// Find returns the store with the given id.
func Find(stores []*Config, id string) (*Config, bool) {
	for _, s := range stores {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
