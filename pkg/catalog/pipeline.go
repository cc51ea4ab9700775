package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/debtag"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/repository"
	"github.com/cperrin88/aptbridge/pkg/store"
	"github.com/cperrin88/aptbridge/pkg/validation"
)

// Tab values accepted by the filter pipeline.
const (
	TabInstalled  = "installed"
	TabUpgradable = "upgradable"
)

// Criteria are the active stages of a filter run. Zero values disable a
// stage.
type Criteria struct {
	Store        *store.Config
	RepositoryID string
	Tab          string
	Search       string
	Limit        int
}

// FilterResult is the annotated, bounded output of Filter.
type FilterResult struct {
	Packages       []model.PackageSummary `json:"packages"`
	TotalCount     int                    `json:"total_count"`
	AppliedFilters []string               `json:"applied_filters"`
	Limit          int                    `json:"limit"`
	Limited        bool                   `json:"limited"`
}

// Validate rejects an unknown tab or a negative limit.
func (c Criteria) Validate() error {
	if c.Tab != "" && c.Tab != TabInstalled && c.Tab != TabUpgradable {
		return errors.Validation(errors.CodeInvalidTab, fmt.Sprintf("Invalid tab filter: %s", c.Tab)).
			WithDetails("Tab must be 'installed' or 'upgradable'")
	}
	if c.Limit < 0 {
		return errors.Validation(errors.CodeInvalidArguments, fmt.Sprintf("Invalid limit: %d", c.Limit))
	}
	return nil
}

// Filter runs the store, repository, tab and search stages over packages in
// a single pass.
func Filter(packages []*model.Package, c Criteria) (*FilterResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	query := strings.ToLower(c.Search)
	var matched []*model.Package
	for _, pkg := range packages {
		if !pkg.HasMetadata() {
			continue
		}
		if c.Store != nil && !store.Matches(pkg, c.Store.Filters) {
			continue
		}
		if c.RepositoryID != "" && !repository.PackageMatches(pkg, c.RepositoryID) {
			continue
		}
		if c.Tab == TabInstalled && !pkg.IsInstalled() {
			continue
		}
		if c.Tab == TabUpgradable && !pkg.IsUpgradable() {
			continue
		}
		if query != "" && !matchesQuery(pkg, query) {
			continue
		}
		matched = append(matched, pkg)
	}

	result := &FilterResult{
		Packages:       []model.PackageSummary{},
		TotalCount:     len(matched),
		AppliedFilters: appliedFilters(c),
		Limit:          c.Limit,
		Limited:        len(matched) > c.Limit,
	}
	for i := 0; i < len(matched) && i < c.Limit; i++ {
		result.Packages = append(result.Packages, model.NewPackageSummary(matched[i]))
	}
	return result, nil
}

func appliedFilters(c Criteria) []string {
	applied := []string{}
	if c.Store != nil {
		applied = append(applied, "store="+c.Store.ID)
	}
	if c.RepositoryID != "" {
		applied = append(applied, "repository="+c.RepositoryID)
	}
	if c.Tab != "" {
		applied = append(applied, "tab="+c.Tab)
	}
	if c.Search != "" {
		applied = append(applied, "search="+c.Search)
	}
	return applied
}

// matchesQuery does a case-insensitive substring match on name and summary.
// query must already be lower case.
func matchesQuery(pkg *model.Package, query string) bool {
	return strings.Contains(strings.ToLower(pkg.Name), query) ||
		strings.Contains(strings.ToLower(pkg.Summary()), query)
}

// DiscoverCategories counts, per category facet value, the packages in s
// that have a candidate version and carry it. Store metadata overrides the derived label.
func DiscoverCategories(packages []*model.Package, s *store.Config) []model.Category {
	counts := make(map[string]int)
	for _, pkg := range packages {
		if pkg.Candidate == nil || !s.Contains(pkg) {
			continue
		}
		seen := make(map[string]bool)
		for _, id := range debtag.ValuesForFacet(pkg, debtag.CategoryFacet) {
			if seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
		}
	}

	categories := make([]model.Category, 0, len(counts))
	for id, count := range counts {
		category := model.Category{ID: id, Label: debtag.DeriveLabel(id), Count: count}
		if meta, ok := s.Category(id); ok {
			category.Label = meta.Label
			category.Icon = meta.Icon
			category.Description = meta.Description
		}
		categories = append(categories, category)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Label != categories[j].Label {
			return categories[i].Label < categories[j].Label
		}
		return categories[i].ID < categories[j].ID
	})
	return categories
}

// PackagesInCategory returns the packages in s tagged category::id, sorted
// by name.
func PackagesInCategory(packages []*model.Package, id string, s *store.Config) ([]*model.Package, error) {
	id, err := validation.CategoryID(id)
	if err != nil {
		return nil, err
	}

	var result []*model.Package
	for _, pkg := range packages {
		if pkg.Candidate == nil || !s.Contains(pkg) {
			continue
		}
		if debtag.HasFacetValue(pkg, debtag.CategoryFacet, id) {
			result = append(result, pkg)
		}
	}
	sortByName(result)
	return result, nil
}

func sortByName(packages []*model.Package) {
	sort.SliceStable(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})
}
