// Package model provides data structures for representing Debian packages,
// their versions, origins and dependencies, and the progress and result
// records produced by the bridge.
package model

// UnknownSection is reported for packages whose metadata carries no section.
const UnknownSection = "unknown"

// Dependency is a single alternative inside an OR-group.
type Dependency struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Version  string `json:"version"`
}

// OriginRecord describes where a package version comes from.
type OriginRecord struct {
	Origin    string `json:"origin"`
	Label     string `json:"label"`
	Suite     string `json:"suite"`
	Component string `json:"component,omitempty"`
}

// OriginOrLabel returns the origin, falling back to the label.
func (o OriginRecord) OriginOrLabel() string {
	if o.Origin != "" {
		return o.Origin
	}
	return o.Label
}

// Version is one concrete version of a package (installed or candidate).
type Version struct {
	Version       string
	Architecture  string
	Summary       string
	Description   string
	Section       string
	Priority      string
	Homepage      string
	Maintainer    string
	Size          int64
	InstalledSize int64
	Origins       []OriginRecord
	RawTags       *string
	Dependencies  [][]Dependency
}

// Package is a read-only view of one package in a database snapshot.
type Package struct {
	Name       string
	Installed  *Version
	Candidate  *Version
	Upgradable bool
}

// IsInstalled reports whether an installed version exists.
func (p *Package) IsInstalled() bool {
	return p.Installed != nil
}

// IsUpgradable reports whether the candidate is newer than the installed version.
func (p *Package) IsUpgradable() bool {
	return p.Installed != nil && p.Candidate != nil && p.Upgradable
}

// HasMetadata reports whether any version metadata is available.
func (p *Package) HasMetadata() bool {
	return p.Candidate != nil || p.Installed != nil
}

// preferred returns the candidate version, falling back to the installed one.
func (p *Package) preferred() *Version {
	if p.Candidate != nil {
		return p.Candidate
	}
	return p.Installed
}

// Section returns the candidate section, or UnknownSection.
func (p *Package) Section() string {
	if v := p.preferred(); v != nil && v.Section != "" {
		return v.Section
	}
	return UnknownSection
}

// Summary returns the candidate summary.
func (p *Package) Summary() string {
	if v := p.preferred(); v != nil {
		return v.Summary
	}
	return ""
}

// Origins returns the origin records; the first one is authoritative.
func (p *Package) Origins() []OriginRecord {
	if v := p.preferred(); v != nil {
		return v.Origins
	}
	return nil
}

// RawTags returns the raw Tag field, or nil if absent.
func (p *Package) RawTags() *string {
	if v := p.preferred(); v != nil {
		return v.RawTags
	}
	return nil
}

// Dependencies returns the dependency OR-groups of the candidate.
func (p *Package) Dependencies() [][]Dependency {
	if v := p.preferred(); v != nil {
		return v.Dependencies
	}
	return nil
}

// DependsOn reports whether any alternative of any OR-group names dep.
func (p *Package) DependsOn(dep string) bool {
	for _, group := range p.Dependencies() {
		for _, d := range group {
			if d.Name == dep {
				return true
			}
		}
	}
	return false
}
