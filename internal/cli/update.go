package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh package lists",
		Long: `Run apt-get update. Progress is estimated from its output and
streamed as one JSON object per line, followed by the final result.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd.Context())
		},
	}

	return cmd
}

func runUpdate(ctx context.Context) error {
	orch, err := loadOrchestrator()
	if err != nil {
		return err
	}
	result, err := orch.Update(ctx)
	if err != nil {
		return err
	}
	return writeLine(result)
}
