package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove PACKAGE",
		Aliases: []string{"uninstall"},
		Short:   "Remove a package",
		Long: `Remove a package with apt-get. Essential system packages are refused.
Progress is streamed as one JSON object per line, followed by the final result.`,
		Args: requireArg("Remove command requires a package name argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), args[0])
		},
	}

	return cmd
}

func runRemove(ctx context.Context, name string) error {
	orch, err := loadOrchestrator()
	if err != nil {
		return err
	}
	result, err := orch.Remove(ctx, name)
	if err != nil {
		return err
	}
	return writeLine(result)
}
