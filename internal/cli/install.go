package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install PACKAGE",
		Short: "Install a package",
		Long: `Install a package with apt-get. Progress is streamed as one JSON
object per line, followed by the final result.`,
		Args: requireArg("Install command requires a package name argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), args[0])
		},
	}

	return cmd
}

func runInstall(ctx context.Context, name string) error {
	orch, err := loadOrchestrator()
	if err != nil {
		return err
	}
	result, err := orch.Install(ctx, name)
	if err != nil {
		return err
	}
	return writeLine(result)
}
