package cli

import (
	"github.com/spf13/cobra"
)

// Build information, set with -ldflags.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is printed by the version command.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version information for aptbridge",
		Args:  noArgs,
		RunE:  runVersion,
	}

	return cmd
}

func runVersion(*cobra.Command, []string) error {
	return writeJSON(VersionInfo{Version: Version, BuildDate: BuildDate, GitCommit: GitCommit})
}
