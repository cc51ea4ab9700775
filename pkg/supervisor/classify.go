package supervisor

import (
	"fmt"
	"strings"

	"github.com/cperrin88/aptbridge/pkg/errors"
)

// Operation names a supervised package manager action.
type Operation string

const (
	OpInstall Operation = "install"
	OpRemove  Operation = "remove"
	OpUpdate  Operation = "update"
)

// Diagnostic phrases printed by apt-get and dpkg.
const (
	phraseNotFound     = "Unable to locate package"
	phraseNotInstalled = "is not installed"
	phraseInterrupted  = "dpkg was interrupted"
	phraseLock         = "Could not get lock"
	phraseFrontendLock = "Unable to acquire the dpkg frontend lock"
	phraseDiskFull     = "You don't have enough free space"
	phraseResolve      = "Could not resolve"
)

func containsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Classify turns a failed run into a BridgeError. It returns nil for a
// successful result. pkg is ignored for OpUpdate.
func Classify(op Operation, pkg string, r *Result) error {
	if r == nil || r.Success() {
		return nil
	}

	diagnostics := r.Stderr
	if op == OpUpdate && r.Combined != "" {
		diagnostics = r.Combined
	}

	switch {
	case op != OpUpdate && containsAny(diagnostics, phraseNotFound):
		return errors.PackageNotFound(pkg)
	case op == OpRemove && containsAny(diagnostics, phraseNotInstalled):
		return errors.PackageNotFound(pkg)
	case containsAny(diagnostics, phraseInterrupted, phraseLock, phraseFrontendLock):
		return errors.ExternalTool(errors.CodeLocked, "Package manager is locked", diagnostics)
	case containsAny(diagnostics, phraseDiskFull):
		return errors.ExternalTool(errors.CodeDiskFull, "Insufficient disk space", diagnostics)
	case op == OpUpdate && containsAny(diagnostics, phraseResolve):
		return errors.ExternalTool(errors.CodeNetworkError, "Network error: Unable to reach package repositories", diagnostics)
	}

	switch op {
	case OpInstall:
		return errors.ExternalTool(errors.CodeInstallFailed, fmt.Sprintf("Failed to install package '%s'", pkg), diagnostics)
	case OpRemove:
		return errors.ExternalTool(errors.CodeRemoveFailed, fmt.Sprintf("Failed to remove package '%s'", pkg), diagnostics)
	case OpUpdate:
		return errors.ExternalTool(errors.CodeUpdateFailed, "Failed to update package lists", diagnostics)
	}
	return errors.ExternalTool(errors.CodeOperationFailed,
		fmt.Sprintf("%s exited with status %d", op, r.ExitCode), diagnostics)
}
