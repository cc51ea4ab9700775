// Package validation checks user-supplied identifiers before they reach the
// package database or an external tool.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/errors"
)

const (
	MaxPackageNameLength = 255
	MaxSectionNameLength = 100
	MinSearchQueryLength = 2
)

var (
	packageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9+.-]*$`)
	sectionNamePattern = regexp.MustCompile(`^[a-z0-9_-]+(/[a-z0-9_-]+)?$`)
	storeIDPattern     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// essentialPackages may never be removed through the bridge.
var essentialPackages = map[string]struct{}{
	"dpkg":        {},
	"apt":         {},
	"apt-get":     {},
	"libc6":       {},
	"init":        {},
	"systemd":     {},
	"base-files":  {},
	"base-passwd": {},
	"bash":        {},
	"coreutils":   {},
}

// PackageName validates a Debian package name.
func PackageName(name string) error {
	if name == "" {
		return errors.Validation(errors.CodeInvalidInput, "Package name cannot be empty")
	}
	if len(name) > MaxPackageNameLength {
		return errors.Validation(errors.CodeInvalidInput,
			fmt.Sprintf("Package name too long (max %d characters)", MaxPackageNameLength)).WithDetails(name[:50] + "...")
	}
	if !packageNamePattern.MatchString(name) {
		return errors.Validation(errors.CodeInvalidInput, "Invalid package name format").WithDetails(name)
	}
	return nil
}

// SectionName validates a section such as "web" or "contrib/net".
func SectionName(section string) error {
	if section == "" {
		return errors.Validation(errors.CodeInvalidInput, "Section name cannot be empty")
	}
	if len(section) > MaxSectionNameLength {
		return errors.Validation(errors.CodeInvalidInput,
			fmt.Sprintf("Section name too long (max %d characters)", MaxSectionNameLength))
	}
	if strings.Contains(section, "..") || !sectionNamePattern.MatchString(section) {
		return errors.Validation(errors.CodeInvalidInput, "Invalid section name format").WithDetails(section)
	}
	return nil
}

// StoreID validates a store identifier.
func StoreID(id string) error {
	if !storeIDPattern.MatchString(id) {
		return errors.Validation(errors.CodeInvalidInput,
			fmt.Sprintf("Invalid store id '%s'", id)).WithDetails("must match " + storeIDPattern.String())
	}
	return nil
}

// CategoryID trims and validates a category identifier.
func CategoryID(id string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", errors.Validation(errors.CodeInvalidCategory, "Category ID cannot be empty")
	}
	return trimmed, nil
}

// SearchQuery trims and validates a free-text search query.
func SearchQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < MinSearchQueryLength {
		return "", errors.Validation(errors.CodeInvalidQuery,
			fmt.Sprintf("Query must be at least %d characters", MinSearchQueryLength))
	}
	return trimmed, nil
}

// NotEssential rejects removal of packages the system cannot live without.
func NotEssential(name string) error {
	if IsEssential(name) {
		return errors.Validation(errors.CodeEssentialPackage,
			fmt.Sprintf("Cannot remove essential package '%s'", name)).WithDetails(name)
	}
	return nil
}

// IsEssential reports whether name is on the essential package list.
func IsEssential(name string) bool {
	_, ok := essentialPackages[name]
	return ok
}
