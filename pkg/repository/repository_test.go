package repository

import (
	"testing"

	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkgFrom(name, section string, origins ...model.OriginRecord) *model.Package {
	return &model.Package{Name: name, Candidate: &model.Version{Version: "1", Section: section, Origins: origins}}
}

func fixture() []*model.Package {
	return []*model.Package{
		pkgFrom("bash", "shells", model.OriginRecord{Origin: "Debian", Suite: "bookworm"}),
		pkgFrom("nginx", "httpd", model.OriginRecord{Origin: "Debian", Suite: "bookworm"}),
		pkgFrom("tool", "utils", model.OriginRecord{Label: "Custom", Suite: "stable"}),
		pkgFrom("no-suite", "utils", model.OriginRecord{Origin: "Debian"}),
		pkgFrom("no-origin", "utils", model.OriginRecord{Suite: "stable"}),
		pkgFrom("local", "utils"),
	}
}

func TestResolveAll(t *testing.T) {
	repos := ResolveAll(fixture())
	require.Len(t, repos, 2)

	assert.Equal(t, "Custom:stable", repos[0].ID)
	assert.Equal(t, "Custom", repos[0].Name)
	assert.Equal(t, "Custom", repos[0].Label)
	assert.Empty(t, repos[0].Origin)
	assert.Equal(t, 1, repos[0].PackageCount)

	assert.Equal(t, "Debian:bookworm", repos[1].ID)
	assert.Equal(t, 2, repos[1].PackageCount)
}

func TestResolveAllUsesFirstOriginOnly(t *testing.T) {
	pkg := pkgFrom("dual", "net",
		model.OriginRecord{Origin: "Hat Labs", Suite: "stable"},
		model.OriginRecord{Origin: "Debian", Suite: "bookworm"})

	repos := ResolveAll([]*model.Package{pkg})
	require.Len(t, repos, 1)
	assert.Equal(t, "Hat Labs:stable", repos[0].ID)
}

func TestResolveAllSortsCaseInsensitively(t *testing.T) {
	repos := ResolveAll([]*model.Package{
		pkgFrom("a", "x", model.OriginRecord{Origin: "zeta", Suite: "s"}),
		pkgFrom("b", "x", model.OriginRecord{Origin: "Alpha", Suite: "s"}),
		pkgFrom("c", "x", model.OriginRecord{Origin: "beta", Suite: "s"}),
	})
	names := []string{repos[0].Name, repos[1].Name, repos[2].Name}
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, names)
}

func TestPackageMatches(t *testing.T) {
	pkgs := fixture()
	assert.True(t, PackageMatches(pkgs[0], "Debian:bookworm"))
	assert.False(t, PackageMatches(pkgs[0], "Custom:stable"))
	assert.False(t, PackageMatches(pkgs[5], ":"))
}

func TestRecount(t *testing.T) {
	pkgs := fixture()
	repos := ResolveAll(pkgs)

	s := &store.Config{ID: "web", Filters: store.Filter{IncludeSections: []string{"httpd", "utils"}}}
	recounted := Recount(repos, pkgs, s)

	require.Len(t, recounted, 2)
	assert.Equal(t, "Custom:stable", recounted[0].ID)
	assert.Equal(t, 1, recounted[0].PackageCount)
	assert.Equal(t, "Debian:bookworm", recounted[1].ID)
	assert.Equal(t, 1, recounted[1].PackageCount)

	s = &store.Config{ID: "shells", Filters: store.Filter{IncludeSections: []string{"shells"}}}
	recounted = Recount(repos, pkgs, s)
	require.Len(t, recounted, 1)
	assert.Equal(t, "Debian:bookworm", recounted[0].ID)

	s = &store.Config{ID: "none", Filters: store.Filter{IncludePackages: []string{"nothing"}}}
	assert.Empty(t, Recount(repos, pkgs, s))

	// Original counts are left untouched
	assert.Equal(t, 2, repos[1].PackageCount)
}
