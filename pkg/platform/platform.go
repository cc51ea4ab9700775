// Package platform maps the running platform onto Debian architecture names,
// which is what dpkg and the APT package lists use.
package platform

import (
	"os"
	"runtime"
	"slices"
	"strings"
)

// CurrentArch returns the Debian architecture of the running binary.
func CurrentArch() string {
	return DebianArch(runtime.GOARCH, os.Getenv("GOARM"))
}

// DebianArch converts a Go architecture (and GOARM level for arm) into the
// Debian architecture name.
func DebianArch(goarch, goarm string) string {
	switch strings.ToLower(goarch) {
	case "amd64", "x86_64":
		return ArchAMD64
	case "arm64", "aarch64":
		return ArchARM64
	case "arm":
		if goarm == "5" {
			return ArchARMEL
		}
		return ArchARMHF
	case "386", "i686", "x86":
		return ArchI386
	case "ppc64le":
		return ArchPPC64EL
	default:
		return strings.ToLower(goarch)
	}
}

// IsValidArch reports whether arch is a known Debian architecture.
func IsValidArch(arch string) bool {
	return slices.Contains(ValidArch(), arch)
}

// Compatible reports whether a package built for pkgArch can be installed on
// a system of systemArch. An empty pkgArch is treated as compatible.
func Compatible(pkgArch, systemArch string) bool {
	return pkgArch == "" || pkgArch == ArchAll || pkgArch == systemArch
}
