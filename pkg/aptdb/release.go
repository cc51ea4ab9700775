package aptdb

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/model"
)

// Release holds the repository identity fields of an InRelease or Release
// file.
type Release struct {
	Origin   string
	Label    string
	Suite    string
	Codename string
}

// ReadRelease parses a Release or clearsigned InRelease file.
func ReadRelease(path string) (*Release, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rel *Release
	err = ReadStanzas(f, func(s Stanza) error {
		if rel != nil {
			return nil
		}
		_, hasOrigin := s["Origin"]
		_, hasLabel := s["Label"]
		_, hasSuite := s["Suite"]
		_, hasCodename := s["Codename"]
		if hasOrigin || hasLabel || hasSuite || hasCodename {
			rel = &Release{Origin: s["Origin"], Label: s["Label"], Suite: s["Suite"], Codename: s["Codename"]}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rel == nil {
		rel = &Release{}
	}
	return rel, nil
}

// releaseSuffixes are tried in order when looking for the release file of a
// list file.
var releaseSuffixes = []string{"_InRelease", "_Release"}

// listStem strips the "_Packages[.ext]" suffix from a list file name.
func listStem(name string) (string, bool) {
	i := strings.LastIndex(name, "_Packages")
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

// originFor derives the OriginRecord of a list file such as
// "deb.debian.org_debian_dists_bookworm_main_binary-amd64_Packages.xz" from
// the release file that shares its longest prefix.
func originFor(listPath string, cache map[string]*Release) model.OriginRecord {
	dir := filepath.Dir(listPath)
	stem, ok := listStem(filepath.Base(listPath))
	if !ok {
		return model.OriginRecord{}
	}

	prefix := stem
	for {
		for _, suffix := range releaseSuffixes {
			releasePath := filepath.Join(dir, prefix+suffix)
			rel, found := cache[releasePath]
			if !found {
				var err error
				if rel, err = ReadRelease(releasePath); err != nil {
					rel = nil
				}
				cache[releasePath] = rel
			}
			if rel != nil {
				return model.OriginRecord{
					Origin:    rel.Origin,
					Label:     rel.Label,
					Suite:     suiteOf(rel),
					Component: componentOf(stem, prefix),
				}
			}
		}
		i := strings.LastIndexByte(prefix, '_')
		if i < 0 {
			return model.OriginRecord{}
		}
		prefix = prefix[:i]
	}
}

func suiteOf(rel *Release) string {
	if rel.Suite != "" {
		return rel.Suite
	}
	return rel.Codename
}

// componentOf returns "main" for stem "..._bookworm_main_binary-amd64" and
// release prefix "..._bookworm".
func componentOf(stem, prefix string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(stem, prefix), "_")
	if i := strings.LastIndex(rest, "_binary-"); i >= 0 {
		rest = rest[:i]
	} else if strings.HasPrefix(rest, "binary-") {
		rest = ""
	}
	return strings.ReplaceAll(rest, "_", "/")
}
