package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPackageAccessors(t *testing.T) {
	tests := []struct {
		name        string
		pkg         *Package
		section     string
		summary     string
		installed   bool
		upgradable  bool
		hasMetadata bool
	}{
		{
			name:    "no versions",
			pkg:     &Package{Name: "ghost"},
			section: UnknownSection,
		},
		{
			name:        "candidate only",
			pkg:         &Package{Name: "nginx", Candidate: &Version{Version: "1.22", Section: "web", Summary: "HTTP server"}},
			section:     "web",
			summary:     "HTTP server",
			hasMetadata: true,
		},
		{
			name: "installed and upgradable",
			pkg: &Package{
				Name:       "vim",
				Installed:  &Version{Version: "9.0", Section: "editors"},
				Candidate:  &Version{Version: "9.1"},
				Upgradable: true,
			},
			section:     UnknownSection,
			installed:   true,
			upgradable:  true,
			hasMetadata: true,
		},
		{
			name:        "installed without candidate",
			pkg:         &Package{Name: "local", Installed: &Version{Version: "1", Section: "misc"}, Upgradable: true},
			section:     "misc",
			installed:   true,
			hasMetadata: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.section, tt.pkg.Section())
			assert.Equal(t, tt.summary, tt.pkg.Summary())
			assert.Equal(t, tt.installed, tt.pkg.IsInstalled())
			assert.Equal(t, tt.upgradable, tt.pkg.IsUpgradable())
			assert.Equal(t, tt.hasMetadata, tt.pkg.HasMetadata())
		})
	}
}

func TestOriginOrLabel(t *testing.T) {
	assert.Equal(t, "Debian", OriginRecord{Origin: "Debian", Label: "X"}.OriginOrLabel())
	assert.Equal(t, "Custom", OriginRecord{Label: "Custom"}.OriginOrLabel())
	assert.Empty(t, OriginRecord{}.OriginOrLabel())
}

func TestDependsOn(t *testing.T) {
	pkg := &Package{Name: "editor-meta", Candidate: &Version{Dependencies: [][]Dependency{
		{{Name: "libc6", Relation: ">=", Version: "2.34"}},
		{{Name: "vim"}, {Name: "emacs"}},
	}}}

	assert.True(t, pkg.DependsOn("emacs"))
	assert.True(t, pkg.DependsOn("libc6"))
	assert.False(t, pkg.DependsOn("nano"))
}

func TestNewPackageSummary(t *testing.T) {
	s := NewPackageSummary(&Package{Name: "orphan", Installed: &Version{Version: "1.0", Summary: "old"}})
	assert.Equal(t, PackageSummary{Name: "orphan", Version: "unknown", Installed: true, Section: UnknownSection}, s)

	s = NewPackageSummary(&Package{Name: "nginx", Candidate: &Version{Version: "1.22", Summary: "HTTP server", Section: "httpd"}})
	assert.Equal(t, "1.22", s.Version)
	assert.Equal(t, "httpd", s.Section)
	assert.False(t, s.Installed)
}

func TestNewPackageDetails(t *testing.T) {
	pkg := &Package{
		Name:      "nginx",
		Installed: &Version{Version: "1.22-1"},
		Candidate: &Version{
			Version:    "1.22-2",
			Summary:    "HTTP server",
			Homepage:   "https://nginx.org",
			Maintainer: "Debian Nginx Maintainers",
			Size:       100,
			Dependencies: [][]Dependency{
				{{Name: "libc6", Relation: ">=", Version: "2.34"}},
				{{Name: "nginx-core"}, {Name: "nginx-light"}},
			},
			RawTags: strPtr("role::program"),
		},
	}

	d := NewPackageDetails(pkg, nil)
	require.NotNil(t, d.InstalledVersion)
	require.NotNil(t, d.CandidateVersion)
	assert.Equal(t, "1.22-1", *d.InstalledVersion)
	assert.Equal(t, "1.22-2", *d.CandidateVersion)
	assert.Equal(t, "optional", d.Priority)
	assert.Equal(t, UnknownSection, d.Section)
	assert.Len(t, d.Dependencies, 3)
	assert.Equal(t, "nginx-light", d.Dependencies[2].Name)
	assert.NotNil(t, d.ReverseDependencies)
	assert.Empty(t, d.ReverseDependencies)

	d = NewPackageDetails(&Package{Name: "bare"}, []string{"a"})
	assert.Nil(t, d.CandidateVersion)
	assert.Equal(t, []Dependency{}, d.Dependencies)
	assert.Equal(t, []string{"a"}, d.ReverseDependencies)
}

func TestNewProgressMessage(t *testing.T) {
	m := NewProgressMessage(ProgressEvent{Percentage: 40, Message: "Unpacking"})
	assert.Equal(t, "progress", m.Type)
	assert.Equal(t, 40, m.Percentage)
}
