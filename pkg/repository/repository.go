// Package repository derives logical repositories (origin + suite) from the
// origin records of packages.
package repository

import (
	"sort"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/store"
)

// ID formats a repository identity.
func ID(originOrLabel, suite string) string {
	return originOrLabel + ":" + suite
}

// ForPackage returns the repository identity of pkg from its first origin
// record. ok is false when that record has no suite or neither origin nor
// label.
func ForPackage(pkg *model.Package) (model.Repository, bool) {
	origins := pkg.Origins()
	if len(origins) == 0 {
		return model.Repository{}, false
	}
	o := origins[0]
	key := o.OriginOrLabel()
	if o.Suite == "" || key == "" {
		return model.Repository{}, false
	}
	return model.Repository{
		ID:     ID(key, o.Suite),
		Name:   key,
		Origin: o.Origin,
		Label:  o.Label,
		Suite:  o.Suite,
	}, true
}

// PackageMatches reports whether pkg belongs to the repository with id.
func PackageMatches(pkg *model.Package, id string) bool {
	repo, ok := ForPackage(pkg)
	return ok && repo.ID == id
}

// ResolveAll groups packages by repository and counts them. The result is
// sorted case-insensitively by name.
func ResolveAll(packages []*model.Package) []model.Repository {
	index := make(map[string]int)
	var repos []model.Repository
	for _, pkg := range packages {
		repo, ok := ForPackage(pkg)
		if !ok {
			continue
		}
		if i, seen := index[repo.ID]; seen {
			repos[i].PackageCount++
			continue
		}
		repo.PackageCount = 1
		index[repo.ID] = len(repos)
		repos = append(repos, repo)
	}
	sortByName(repos)
	return repos
}

// Recount recomputes counts of repos over the packages in s, dropping
// repositories left empty.
func Recount(repos []model.Repository, packages []*model.Package, s *store.Config) []model.Repository {
	counts := make(map[string]int, len(repos))
	for _, pkg := range packages {
		if !s.Contains(pkg) {
			continue
		}
		if repo, ok := ForPackage(pkg); ok {
			counts[repo.ID]++
		}
	}

	result := make([]model.Repository, 0, len(repos))
	for _, repo := range repos {
		if n := counts[repo.ID]; n > 0 {
			repo.PackageCount = n
			result = append(result, repo)
		}
	}
	sortByName(result)
	return result
}

func sortByName(repos []model.Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return strings.ToLower(repos[i].Name) < strings.ToLower(repos[j].Name)
	})
}
