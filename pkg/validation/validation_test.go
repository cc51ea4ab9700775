package validation

import (
	"strings"
	"testing"

	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageName(t *testing.T) {
	valid := []string{"nginx", "python3-apt", "g++", "libstdc++6", "libapt-pkg6.0", "2ping", "0ad"}
	for _, name := range valid {
		assert.NoError(t, PackageName(name), name)
	}

	invalid := []string{
		"",
		strings.Repeat("a", 256),
		"NginX",
		"../etc/passwd",
		"etc/passwd",
		"pkg;name",
		"pkg&name",
		"pkg|name",
		"pkg$name",
		"pkg`name",
		"pkg\nname",
		"pkg name",
		"-leading",
	}
	for _, name := range invalid {
		err := PackageName(name)
		require.Error(t, err, name)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidInput), name)
		assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	}
}

func TestPackageNameMessages(t *testing.T) {
	err := PackageName("")
	assert.Contains(t, strings.ToLower(err.Error()), "empty")

	err = PackageName(strings.Repeat("a", 256))
	assert.Contains(t, err.Error(), "255")
}

func TestSectionName(t *testing.T) {
	for _, s := range []string{"admin", "web", "contrib/net", "non-free/games", "x11", "oldlibs_x"} {
		assert.NoError(t, SectionName(s), s)
	}
	for _, s := range []string{"", "Web", "../etc", "a/b/c", "a/", "/a", "a..b", strings.Repeat("s", 101)} {
		assert.Error(t, SectionName(s), s)
	}
}

func TestStoreID(t *testing.T) {
	assert.NoError(t, StoreID("marine"))
	assert.NoError(t, StoreID("Marine_Apps-2"))
	assert.Error(t, StoreID(""))
	assert.Error(t, StoreID("marine apps"))
	assert.Error(t, StoreID("../x"))
}

func TestCategoryID(t *testing.T) {
	id, err := CategoryID("  navigation ")
	require.NoError(t, err)
	assert.Equal(t, "navigation", id)

	for _, in := range []string{"", "   "} {
		_, err := CategoryID(in)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidCategory))
	}
}

func TestSearchQuery(t *testing.T) {
	q, err := SearchQuery(" vi ")
	require.NoError(t, err)
	assert.Equal(t, "vi", q)

	_, err = SearchQuery(" v ")
	assert.True(t, errors.IsCode(err, errors.CodeInvalidQuery))
}

func TestNotEssential(t *testing.T) {
	err := NotEssential("bash")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeEssentialPackage))
	assert.NoError(t, NotEssential("nginx"))
	assert.True(t, IsEssential("libc6"))
}
