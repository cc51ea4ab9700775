// Package aptdb reads the local APT package database: the dpkg status file
// for installed packages and the downloaded list files for candidates.
package aptdb

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/cperrin88/aptbridge/internal/logger"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/cperrin88/aptbridge/pkg/fsutil"
	"github.com/cperrin88/aptbridge/pkg/model"
	"github.com/cperrin88/aptbridge/pkg/platform"
)

// listSuffixes select the package index files in the lists directory.
var listSuffixes = []string{
	"_Packages",
	"_Packages.gz",
	"_Packages.xz",
	"_Packages.zst",
	"_Packages.lz4",
	"_Packages.bz2",
}

// Database is a read-only snapshot of the package database. It is loaded
// on first use and never refreshed.
type Database struct {
	StatusPath   string
	ListsDir     string
	Architecture string

	once     sync.Once
	err      error
	packages []*model.Package
	byName   map[string]*model.Package
}

// New creates a Database for the native architecture arch.
func New(statusPath, listsDir, arch string) *Database {
	return &Database{StatusPath: statusPath, ListsDir: listsDir, Architecture: arch}
}

// Packages returns every known package sorted by name.
func (d *Database) Packages(ctx context.Context) ([]*model.Package, error) {
	if err := d.load(ctx); err != nil {
		return nil, err
	}
	return d.packages, nil
}

// Lookup returns the package with the given name.
func (d *Database) Lookup(ctx context.Context, name string) (*model.Package, bool, error) {
	if err := d.load(ctx); err != nil {
		return nil, false, err
	}
	pkg, ok := d.byName[name]
	return pkg, ok, nil
}

func (d *Database) load(ctx context.Context) error {
	d.once.Do(func() {
		d.err = d.read(ctx)
	})
	return d.err
}

// available maps package name to version string to the candidate record.
type available map[string]map[string]*model.Version

func (a available) add(name string, v *model.Version) {
	versions, ok := a[name]
	if !ok {
		versions = make(map[string]*model.Version)
		a[name] = versions
	}
	existing, ok := versions[v.Version]
	if !ok {
		versions[v.Version] = v
		return
	}
	for _, o := range v.Origins {
		if !containsOrigin(existing.Origins, o) {
			existing.Origins = append(existing.Origins, o)
		}
	}
}

func containsOrigin(origins []model.OriginRecord, o model.OriginRecord) bool {
	for _, existing := range origins {
		if existing == o {
			return true
		}
	}
	return false
}

// best returns the highest version of name, if any.
func (a available) best(name string) *model.Version {
	var best *model.Version
	for _, v := range a[name] {
		if best == nil || CompareVersions(v.Version, best.Version) > 0 {
			best = v
		}
	}
	return best
}

func (d *Database) read(ctx context.Context) error {
	avail, err := d.readLists(ctx)
	if err != nil {
		return err
	}
	installed, err := d.readStatus()
	if err != nil {
		return err
	}

	names := make(map[string]struct{}, len(avail)+len(installed))
	for name := range avail {
		names[name] = struct{}{}
	}
	for name := range installed {
		names[name] = struct{}{}
	}

	d.packages = make([]*model.Package, 0, len(names))
	d.byName = make(map[string]*model.Package, len(names))
	for name := range names {
		pkg := resolve(name, installed[name], avail)
		d.packages = append(d.packages, pkg)
		d.byName[name] = pkg
	}
	sort.Slice(d.packages, func(i, j int) bool { return d.packages[i].Name < d.packages[j].Name })

	logger.Debug("Package database loaded", logger.Fields{
		"packages":  len(d.packages),
		"installed": len(installed),
	})
	return nil
}

// resolve picks the candidate for one package. Like APT's default policy it
// never proposes a downgrade: an installed version newer than anything
// available is its own candidate.
func resolve(name string, installed *model.Version, avail available) *model.Package {
	pkg := &model.Package{Name: name, Installed: installed}
	candidate := avail.best(name)

	if installed != nil {
		if same, ok := avail[name][installed.Version]; ok {
			installed.Origins = append([]model.OriginRecord(nil), same.Origins...)
			if installed.RawTags == nil {
				installed.RawTags = same.RawTags
			}
		}
		if candidate == nil || CompareVersions(installed.Version, candidate.Version) > 0 {
			candidate = installed
		}
		pkg.Upgradable = CompareVersions(candidate.Version, installed.Version) > 0
	}
	pkg.Candidate = candidate
	return pkg
}

func (d *Database) readLists(ctx context.Context) (available, error) {
	avail := make(available)
	files, err := fsutil.ListFiles(d.ListsDir, listSuffixes...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabaseOpen, "listing %s: %v", d.ListsDir, err)
	}

	releases := make(map[string]*Release)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		origin := originFor(file, releases)
		if err := d.readList(ctx, file, origin, avail); err != nil {
			logger.Warn("Skipping unreadable package list", logger.Fields{"file": file, "error": err.Error()})
		}
	}
	return avail, nil
}

func (d *Database) readList(ctx context.Context, file string, origin model.OriginRecord, avail available) error {
	rc, err := OpenList(ctx, file)
	if err != nil {
		return err
	}
	defer rc.Close()

	err = ReadStanzas(rc, func(s Stanza) error {
		name, version := s["Package"], s["Version"]
		if name == "" || version == "" {
			return nil
		}
		if d.Architecture != "" && !platform.Compatible(s["Architecture"], d.Architecture) {
			return nil
		}
		avail.add(name, s.Version([]model.OriginRecord{origin}))
		return nil
	})
	if err != nil {
		return errors.Wrapf(errors.ErrListParse, "%s: %v", file, err)
	}
	return nil
}

// readStatus returns the installed versions keyed by package name. Packages
// installed for a foreign architecture are keyed "name:arch".
func (d *Database) readStatus() (map[string]*model.Version, error) {
	f, err := os.Open(d.StatusPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabaseOpen, "%v", err)
	}
	defer f.Close()

	installed := make(map[string]*model.Version)
	err = ReadStanzas(f, func(s Stanza) error {
		name := s["Package"]
		if name == "" || !s.Installed() {
			return nil
		}
		if d.Architecture != "" && !platform.Compatible(s["Architecture"], d.Architecture) {
			name += ":" + s["Architecture"]
		}
		installed[name] = s.Version(nil)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabaseOpen, "%s: %v", d.StatusPath, err)
	}
	return installed, nil
}
