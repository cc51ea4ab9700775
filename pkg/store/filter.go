package store

import (
	"slices"

	"github.com/cperrin88/aptbridge/pkg/debtag"
	"github.com/cperrin88/aptbridge/pkg/model"
)

// Matches reports whether pkg passes filter. Criteria are checked in order
// packages, origins, sections, tags; the first hit wins.
func Matches(pkg *model.Package, filter Filter) bool {
	if pkg == nil {
		return false
	}

	if len(filter.IncludePackages) > 0 && slices.Contains(filter.IncludePackages, pkg.Name) {
		return true
	}

	if len(filter.IncludeOrigins) > 0 {
		originKey := ""
		if origins := pkg.Origins(); len(origins) > 0 {
			originKey = origins[0].OriginOrLabel()
		}
		if slices.Contains(filter.IncludeOrigins, originKey) {
			return true
		}
	}

	if len(filter.IncludeSections) > 0 && slices.Contains(filter.IncludeSections, pkg.Section()) {
		return true
	}

	if len(filter.IncludeTags) > 0 {
		for _, tag := range filter.IncludeTags {
			if debtag.HasTag(pkg, tag) {
				return true
			}
		}
	}

	return false
}

// Contains reports whether pkg belongs to the store. A nil store contains
// everything.
func (c *Config) Contains(pkg *model.Package) bool {
	if c == nil {
		return true
	}
	return Matches(pkg, c.Filters)
}
