package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/fsutil"
	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStore(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), fsutil.FileModeDefault))
}

func pkgWith(name, section, origin, label, tags string) *model.Package {
	v := &model.Version{Version: "1.0", Section: section}
	if origin != "" || label != "" {
		v.Origins = []model.OriginRecord{{Origin: origin, Label: label, Suite: "stable"}}
	}
	if tags != "" {
		v.RawTags = &tags
	}
	return &model.Package{Name: name, Candidate: v}
}

func TestNewFilter(t *testing.T) {
	_, err := NewFilter(nil, nil, nil, nil)
	assert.ErrorIs(t, err, errors.ErrStoreEmptyFilters)

	f, err := NewFilter([]string{"test"}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"test"}, f.IncludeOrigins)
	assert.Equal(t, []string{}, f.IncludeSections)
}

func TestNewConfigValidatesID(t *testing.T) {
	f, err := NewFilter(nil, []string{"net"}, nil, nil)
	require.NoError(t, err)

	_, err = NewConfig("marine apps", "Marine", "desc", f)
	assert.ErrorIs(t, err, errors.ErrStoreID)
	_, err = NewConfig("", "Marine", "desc", f)
	assert.ErrorIs(t, err, errors.ErrStoreID)

	cfg, err := NewConfig("marine_apps-1", "Marine", "desc", f)
	require.NoError(t, err)
	assert.Equal(t, "marine_apps-1", cfg.ID)
}

func TestMatches(t *testing.T) {
	signalk := pkgWith("signalk-server", "net", "Hat Labs", "", "field::marine, role::container-app")
	custom := pkgWith("custom-tool", "utils", "", "Custom", "")
	bare := &model.Package{Name: "bare", Candidate: &model.Version{Version: "1"}}

	tests := []struct {
		name   string
		pkg    *model.Package
		filter Filter
		want   bool
	}{
		{"package list hit", signalk, Filter{IncludePackages: []string{"signalk-server"}}, true},
		{"package list miss", signalk, Filter{IncludePackages: []string{"other"}}, false},
		{"origin hit", signalk, Filter{IncludeOrigins: []string{"Hat Labs"}}, true},
		{"origin falls back to label", custom, Filter{IncludeOrigins: []string{"Custom"}}, true},
		{"origin case sensitive", signalk, Filter{IncludeOrigins: []string{"hat labs"}}, false},
		{"no origin records", bare, Filter{IncludeOrigins: []string{"Debian"}}, false},
		{"section hit", signalk, Filter{IncludeSections: []string{"net"}}, true},
		{"unknown section", bare, Filter{IncludeSections: []string{"unknown"}}, true},
		{"tag hit", signalk, Filter{IncludeTags: []string{"field::marine"}}, true},
		{"tag is exact token", signalk, Filter{IncludeTags: []string{"field"}}, false},
		{"no tags", bare, Filter{IncludeTags: []string{"field::marine"}}, false},
		{"or across criteria", custom, Filter{IncludeSections: []string{"net"}, IncludeOrigins: []string{"Custom"}}, true},
		{"all criteria miss", custom, Filter{IncludeSections: []string{"net"}, IncludeTags: []string{"x::y"}}, false},
		{"empty filter never matches", signalk, Filter{}, false},
		{"nil package", nil, Filter{IncludeSections: []string{"net"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.pkg, tt.filter))
		})
	}
}

func TestContainsNilStore(t *testing.T) {
	var cfg *Config
	assert.True(t, cfg.Contains(pkgWith("x", "net", "", "", "")))
}

func TestLoadMissingDirectory(t *testing.T) {
	stores, err := Load(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestLoadFileInsteadOfDirectory(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, "file.yaml", "id: x\n")

	stores, err := Load(filepath.Join(dir, "file.yaml"))
	require.NoError(t, err)
	assert.Empty(t, stores)
}

func TestLoadStoreWithAllFields(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, "marine.yaml", `
id: marine
name: Marine Navigation
description: Marine navigation and monitoring applications
icon: /usr/share/icons/marine.svg
banner: /usr/share/banners/marine.png
filters:
  include_origins:
    - Hat Labs
  include_sections:
    - net
  include_tags:
    - field::marine
  include_packages:
    - signalk-server
category_metadata:
  - id: ais-radar
    label: AIS & Radar
    icon: /usr/share/icons/ais.svg
custom_sections:
  - section: net
    label: Networking
    description: Network tools
`)

	stores, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, stores, 1)

	s := stores[0]
	assert.Equal(t, "marine", s.ID)
	assert.Equal(t, "Marine Navigation", s.Name)
	require.NotNil(t, s.Icon)
	assert.Equal(t, "/usr/share/icons/marine.svg", *s.Icon)
	require.NotNil(t, s.Banner)
	assert.Equal(t, "/usr/share/banners/marine.png", *s.Banner)
	assert.Equal(t, []string{"Hat Labs"}, s.Filters.IncludeOrigins)
	assert.Equal(t, []string{"net"}, s.Filters.IncludeSections)
	assert.Equal(t, []string{"field::marine"}, s.Filters.IncludeTags)
	assert.Equal(t, []string{"signalk-server"}, s.Filters.IncludePackages)

	require.Len(t, s.CategoryMetadata, 1)
	assert.Equal(t, "ais-radar", s.CategoryMetadata[0].ID)
	assert.Equal(t, "AIS & Radar", s.CategoryMetadata[0].Label)
	require.NotNil(t, s.CategoryMetadata[0].Icon)
	assert.Nil(t, s.CategoryMetadata[0].Description)

	require.Len(t, s.CustomSections, 1)
	assert.Equal(t, "Networking", s.CustomSections[0].Label)
	assert.Nil(t, s.CustomSections[0].Icon)
}

func TestLoadStoreWithMinimalFields(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, "minimal.yaml", `
id: minimal
name: Minimal Store
description: Just origins
filters:
  include_origins:
    - TestOrigin
`)

	stores, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	s := stores[0]
	assert.Nil(t, s.Icon)
	assert.Nil(t, s.Banner)
	assert.Nil(t, s.CategoryMetadata)
	assert.Equal(t, []string{"TestOrigin"}, s.Filters.IncludeOrigins)
	assert.Equal(t, []string{}, s.Filters.IncludeSections)
}

func TestLoadSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, "valid.yaml", "id: valid\nname: Valid\ndescription: ok\nfilters:\n  include_origins: [A]\n")
	writeStore(t, dir, "invalid.yaml", "id: broken\nname: [unclosed\n")
	writeStore(t, dir, "list-root.yaml", "- id: x\n")
	writeStore(t, dir, "missing_desc.yaml", "id: nodesc\nname: X\nfilters:\n  include_origins: [A]\n")
	writeStore(t, dir, "missing_filters.yaml", "id: nofilters\nname: X\ndescription: d\n")
	writeStore(t, dir, "scalar_filters.yaml", "id: scalar\nname: X\ndescription: d\nfilters: everything\n")
	writeStore(t, dir, "empty_filters.yaml", "id: empty\nname: X\ndescription: d\nfilters:\n  include_origins: []\n  include_tags: []\n")
	writeStore(t, dir, "bad_id.yaml", "id: bad id\nname: X\ndescription: d\nfilters:\n  include_origins: [A]\n")
	writeStore(t, dir, "empty.yaml", "")
	writeStore(t, dir, "notes.txt", "id: ignored\n")

	stores, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "valid", stores[0].ID)
}

func TestLoadDuplicateIDsFirstByFilenameWins(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, "second.yaml", "id: dup\nname: Second Store\ndescription: d\nfilters:\n  include_origins: [A]\n")
	writeStore(t, dir, "first.yaml", "id: dup\nname: First Store\ndescription: d\nfilters:\n  include_origins: [A]\n")

	stores, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "First Store", stores[0].Name)
}

func TestLoadSupportsYmlExtension(t *testing.T) {
	dir := t.TempDir()
	writeStore(t, dir, "store1.yaml", "id: yaml\nname: Y\ndescription: d\nfilters:\n  include_origins: [Origin1]\n")
	writeStore(t, dir, "store2.yml", "id: yml\nname: Y\ndescription: d\nfilters:\n  include_origins: [Origin2]\n")

	stores, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "yaml", stores[0].ID)
	assert.Equal(t, "yml", stores[1].ID)
}

func TestCategoryMetadataSkipsInvalidEntries(t *testing.T) {
	cfg, err := Parse([]byte(`
id: partial
name: Partial Categories
description: Store with invalid category metadata
filters:
  include_origins:
    - TestOrigin
category_metadata:
  - id: valid
    label: Valid Category
    description: This is valid
  - id: invalid
    description: Missing Label
  - label: Also Invalid
    description: Missing id field
`))
	require.NoError(t, err)
	require.Len(t, cfg.CategoryMetadata, 1)
	assert.Equal(t, "valid", cfg.CategoryMetadata[0].ID)
	require.NotNil(t, cfg.CategoryMetadata[0].Description)
	assert.Equal(t, "This is valid", *cfg.CategoryMetadata[0].Description)

	m, ok := cfg.Category("valid")
	assert.True(t, ok)
	assert.Equal(t, "Valid Category", m.Label)
	_, ok = cfg.Category("invalid")
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	stores := []*Config{{ID: "a"}, {ID: "b"}}
	s, ok := Find(stores, "b")
	require.True(t, ok)
	assert.Equal(t, "b", s.ID)
	_, ok = Find(stores, "c")
	assert.False(t, ok)
}
