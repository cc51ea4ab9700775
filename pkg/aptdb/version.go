package aptdb

import (
	"strings"

	version "github.com/knqyf263/go-deb-version"
)

// CompareVersions orders two Debian version strings the way dpkg does. It
// returns a negative number, zero or a positive number when a sorts before,
// equal to or after b. Strings that are not valid Debian versions sort
// below valid ones and compare lexically among themselves.
func CompareVersions(a, b string) int {
	va, errA := version.NewVersion(strings.TrimSpace(a))
	vb, errB := version.NewVersion(strings.TrimSpace(b))
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}
