// Package catalog answers read-only queries over a package database
// snapshot: search, details, sections, stores, repositories, categories and
// the cascading filter used by the UI.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cperrin88/aptbridge/internal/logger"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/repository"
	"github.com/cperrin88/aptbridge/pkg/store"
	"github.com/cperrin88/aptbridge/pkg/validation"
)

//go:generate mockgen -destination=./mocks/catalog.go . PackageSource,StoreProvider

// PackageSource is a queryable package collection.
type PackageSource interface {
	Packages(ctx context.Context) ([]*model.Package, error)
	Lookup(ctx context.Context, name string) (*model.Package, bool, error)
}

// StoreProvider supplies the configured store definitions.
type StoreProvider interface {
	Stores() ([]*store.Config, error)
}

const (
	// SearchResultLimit caps Search results.
	SearchResultLimit = 100
	// ReverseDependencyLimit caps reverse dependency scans.
	ReverseDependencyLimit = 50
	// DefaultFilterLimit is used when a FilterRequest has no limit.
	DefaultFilterLimit = 1000
)

// Catalog runs queries against an injected package source.
type Catalog struct {
	Source      PackageSource
	Stores      StoreProvider
	FilterLimit int
}

// New creates a Catalog.
func New(source PackageSource, stores StoreProvider) *Catalog {
	return &Catalog{Source: source, Stores: stores, FilterLimit: DefaultFilterLimit}
}

// FilterRequest carries the raw command arguments of FilterPackages. A nil
// Limit selects the catalog default.
type FilterRequest struct {
	StoreID      string
	RepositoryID string
	Tab          string
	Search       string
	Limit        *int
}

func (c *Catalog) packages(ctx context.Context) ([]*model.Package, error) {
	pkgs, err := c.Source.Packages(ctx)
	if err != nil {
		return nil, errors.Cache("Failed to open package database", err)
	}
	return pkgs, nil
}

func (c *Catalog) lookup(ctx context.Context, name string) (*model.Package, error) {
	if err := validation.PackageName(name); err != nil {
		return nil, err
	}
	pkg, ok, err := c.Source.Lookup(ctx, name)
	if err != nil {
		return nil, errors.Cache("Failed to open package database", err)
	}
	if !ok {
		return nil, errors.PackageNotFound(name)
	}
	return pkg, nil
}

// store resolves an optional store id. An empty id means no store.
func (c *Catalog) store(id string) (*store.Config, error) {
	if id == "" {
		return nil, nil
	}
	if err := validation.StoreID(id); err != nil {
		return nil, err
	}
	stores, err := c.ListStores()
	if err != nil {
		return nil, err
	}
	s, ok := store.Find(stores, id)
	if !ok {
		return nil, errors.StoreNotFound(id)
	}
	return s, nil
}

// ListStores returns every valid store definition.
func (c *Catalog) ListStores() ([]*store.Config, error) {
	if c.Stores == nil {
		return []*store.Config{}, nil
	}
	stores, err := c.Stores.Stores()
	if err != nil {
		return nil, errors.Config("Failed to load store definitions", err)
	}
	return stores, nil
}

// Search finds packages with a candidate whose name or summary contains
// query. Name matches sort first.
func (c *Catalog) Search(ctx context.Context, query string) ([]model.PackageSummary, error) {
	query, err := validation.SearchQuery(query)
	if err != nil {
		return nil, err
	}
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := []model.PackageSummary{}
	for _, pkg := range pkgs {
		if pkg.Candidate == nil || !matchesQuery(pkg, needle) {
			continue
		}
		results = append(results, model.NewPackageSummary(pkg))
		if len(results) >= SearchResultLimit {
			break
		}
	}

	rank := func(s model.PackageSummary) int {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			return 0
		}
		return 1
	}
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := rank(results[i]), rank(results[j])
		if ri != rj {
			return ri < rj
		}
		return results[i].Name < results[j].Name
	})

	logger.Debug("Search finished", logger.Fields{"query": query, "results": len(results)})
	return results, nil
}

// Details returns the full record of one package.
func (c *Catalog) Details(ctx context.Context, name string) (*model.PackageDetails, error) {
	pkg, err := c.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	reverse, err := c.reverseDependencies(ctx, name)
	if err != nil {
		return nil, err
	}
	details := model.NewPackageDetails(pkg, reverse)
	return &details, nil
}

// Dependencies returns the flattened dependency list of a package.
func (c *Catalog) Dependencies(ctx context.Context, name string) ([]model.Dependency, error) {
	pkg, err := c.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	return model.FlattenDependencies(pkg.Candidate), nil
}

// ReverseDependencies lists up to ReverseDependencyLimit packages whose
// candidate depends on name, sorted.
func (c *Catalog) ReverseDependencies(ctx context.Context, name string) ([]string, error) {
	if _, err := c.lookup(ctx, name); err != nil {
		return nil, err
	}
	return c.reverseDependencies(ctx, name)
}

func (c *Catalog) reverseDependencies(ctx context.Context, name string) ([]string, error) {
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}
	reverse := []string{}
	for _, other := range pkgs {
		if len(reverse) >= ReverseDependencyLimit {
			break
		}
		if other.Candidate != nil && other.DependsOn(name) {
			reverse = append(reverse, other.Name)
		}
	}
	sort.Strings(reverse)
	return reverse, nil
}

// Sections counts candidate packages per section, optionally within a store.
func (c *Catalog) Sections(ctx context.Context, storeID string) ([]model.SectionCount, error) {
	s, err := c.store(storeID)
	if err != nil {
		return nil, err
	}
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, pkg := range pkgs {
		if pkg.Candidate == nil || !s.Contains(pkg) {
			continue
		}
		counts[pkg.Section()]++
	}

	sections := make([]model.SectionCount, 0, len(counts))
	for name, count := range counts {
		sections = append(sections, model.SectionCount{Name: name, Count: count})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Name < sections[j].Name })
	return sections, nil
}

// ListSection returns the candidate packages of one section.
func (c *Catalog) ListSection(ctx context.Context, section string) ([]model.PackageSummary, error) {
	if err := validation.SectionName(section); err != nil {
		return nil, err
	}
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}

	var matched []*model.Package
	for _, pkg := range pkgs {
		if pkg.Candidate != nil && pkg.Section() == section {
			matched = append(matched, pkg)
		}
	}
	return summaries(matched), nil
}

// ListInstalled returns installed packages with their installed version.
func (c *Catalog) ListInstalled(ctx context.Context) ([]model.InstalledPackage, error) {
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}

	installed := []model.InstalledPackage{}
	for _, pkg := range pkgs {
		if !pkg.IsInstalled() {
			continue
		}
		section := pkg.Installed.Section
		if section == "" {
			section = model.UnknownSection
		}
		installed = append(installed, model.InstalledPackage{
			Name:    pkg.Name,
			Version: pkg.Installed.Version,
			Summary: pkg.Installed.Summary,
			Section: section,
		})
	}
	sort.Slice(installed, func(i, j int) bool { return installed[i].Name < installed[j].Name })
	return installed, nil
}

// ListUpgradable returns installed packages with a newer candidate.
func (c *Catalog) ListUpgradable(ctx context.Context) ([]model.UpgradablePackage, error) {
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}

	upgradable := []model.UpgradablePackage{}
	for _, pkg := range pkgs {
		if !pkg.IsUpgradable() {
			continue
		}
		upgradable = append(upgradable, model.UpgradablePackage{
			Name:             pkg.Name,
			InstalledVersion: pkg.Installed.Version,
			CandidateVersion: pkg.Candidate.Version,
			Summary:          pkg.Candidate.Summary,
		})
	}
	sort.Slice(upgradable, func(i, j int) bool { return upgradable[i].Name < upgradable[j].Name })
	return upgradable, nil
}

// FilterPackages runs the cascading filter for the UI package list.
func (c *Catalog) FilterPackages(ctx context.Context, req FilterRequest) (*FilterResult, error) {
	limit := c.FilterLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	criteria := Criteria{
		RepositoryID: req.RepositoryID,
		Tab:          req.Tab,
		Search:       req.Search,
		Limit:        limit,
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	s, err := c.store(req.StoreID)
	if err != nil {
		return nil, err
	}
	criteria.Store = s

	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}
	result, err := Filter(pkgs, criteria)
	if err != nil {
		return nil, err
	}
	logger.Debug("Filtered packages", logger.Fields{
		"request": req.String(),
		"total":   result.TotalCount,
	})
	return result, nil
}

// ListRepositories returns repositories, recounted within a store if given.
func (c *Catalog) ListRepositories(ctx context.Context, storeID string) ([]model.Repository, error) {
	s, err := c.store(storeID)
	if err != nil {
		return nil, err
	}
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}

	repos := repository.ResolveAll(pkgs)
	if s != nil {
		repos = repository.Recount(repos, pkgs, s)
	}
	if repos == nil {
		repos = []model.Repository{}
	}
	return repos, nil
}

// ListCategories returns the categories discovered in a store.
func (c *Catalog) ListCategories(ctx context.Context, storeID string) ([]model.Category, error) {
	s, err := c.store(storeID)
	if err != nil {
		return nil, err
	}
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}
	return DiscoverCategories(pkgs, s), nil
}

// ListPackagesByCategory returns summaries of the packages in a category.
func (c *Catalog) ListPackagesByCategory(ctx context.Context, categoryID, storeID string) ([]model.PackageSummary, error) {
	if _, err := validation.CategoryID(categoryID); err != nil {
		return nil, err
	}
	s, err := c.store(storeID)
	if err != nil {
		return nil, err
	}
	pkgs, err := c.packages(ctx)
	if err != nil {
		return nil, err
	}

	matched, err := PackagesInCategory(pkgs, categoryID, s)
	if err != nil {
		return nil, err
	}
	return summaries(matched), nil
}

func summaries(pkgs []*model.Package) []model.PackageSummary {
	sortByName(pkgs)
	result := make([]model.PackageSummary, 0, len(pkgs))
	for _, pkg := range pkgs {
		result = append(result, model.NewPackageSummary(pkg))
	}
	return result
}

// String renders a request for logs.
func (r FilterRequest) String() string {
	limit := "default"
	if r.Limit != nil {
		limit = fmt.Sprint(*r.Limit)
	}
	return fmt.Sprintf("store=%q repo=%q tab=%q search=%q limit=%s", r.StoreID, r.RepositoryID, r.Tab, r.Search, limit)
}
