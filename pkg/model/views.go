package model

// PackageSummary is the list-view record of a package.
type PackageSummary struct {
	Name      string `json:"name"`
	Summary   string `json:"summary"`
	Version   string `json:"version"`
	Installed bool   `json:"installed"`
	Section   string `json:"section"`
}

// PackageDetails is the detail-view record of a package.
type PackageDetails struct {
	Name                string       `json:"name"`
	Summary             string       `json:"summary"`
	Description         string       `json:"description"`
	Section             string       `json:"section"`
	Installed           bool         `json:"installed"`
	InstalledVersion    *string      `json:"installedVersion"`
	CandidateVersion    *string      `json:"candidateVersion"`
	Priority            string       `json:"priority"`
	Homepage            string       `json:"homepage"`
	Maintainer          string       `json:"maintainer"`
	Size                int64        `json:"size"`
	InstalledSize       int64        `json:"installedSize"`
	Dependencies        []Dependency `json:"dependencies"`
	ReverseDependencies []string     `json:"reverseDependencies"`
}

// InstalledPackage is a list-installed record.
type InstalledPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`
	Section string `json:"section"`
}

// UpgradablePackage is a list-upgradable record.
type UpgradablePackage struct {
	Name             string `json:"name"`
	InstalledVersion string `json:"installedVersion"`
	CandidateVersion string `json:"candidateVersion"`
	Summary          string `json:"summary"`
}

// SectionCount is a section with the number of packages in it.
type SectionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Category is a tag-derived grouping with its package count.
type Category struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Count       int     `json:"count"`
}

// Repository is a logical origin+suite identity with a package count.
type Repository struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Origin       string `json:"origin"`
	Label        string `json:"label"`
	Suite        string `json:"suite"`
	PackageCount int    `json:"package_count"`
}

// NewPackageSummary builds the list-view record for p.
func NewPackageSummary(p *Package) PackageSummary {
	s := PackageSummary{
		Name:      p.Name,
		Version:   "unknown",
		Installed: p.IsInstalled(),
		Section:   UnknownSection,
	}
	if p.Candidate != nil {
		s.Summary = p.Candidate.Summary
		s.Version = p.Candidate.Version
		if p.Candidate.Section != "" {
			s.Section = p.Candidate.Section
		}
	}
	return s
}

// NewPackageDetails builds the detail record for p. Dependencies are the
// candidate's OR-groups flattened in order; reverse dependencies are
// supplied by the caller.
func NewPackageDetails(p *Package, reverse []string) PackageDetails {
	d := PackageDetails{
		Name:                p.Name,
		Section:             UnknownSection,
		Installed:           p.IsInstalled(),
		Priority:            "optional",
		Dependencies:        FlattenDependencies(p.Candidate),
		ReverseDependencies: reverse,
	}
	if d.ReverseDependencies == nil {
		d.ReverseDependencies = []string{}
	}
	if p.Installed != nil {
		v := p.Installed.Version
		d.InstalledVersion = &v
	}
	if c := p.Candidate; c != nil {
		v := c.Version
		d.CandidateVersion = &v
		d.Summary = c.Summary
		d.Description = c.Description
		if c.Section != "" {
			d.Section = c.Section
		}
		if c.Priority != "" {
			d.Priority = c.Priority
		}
		d.Homepage = c.Homepage
		d.Maintainer = c.Maintainer
		d.Size = c.Size
		d.InstalledSize = c.InstalledSize
	}
	return d
}

// FlattenDependencies lists every alternative of every OR-group of v.
func FlattenDependencies(v *Version) []Dependency {
	deps := []Dependency{}
	if v == nil {
		return deps
	}
	for _, group := range v.Dependencies {
		deps = append(deps, group...)
	}
	return deps
}
