package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDetailsCmd creates the details command.
func NewDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details PACKAGE",
		Short: "Show package details",
		Long:  "Show the full record of a package, including dependencies and reverse dependencies",
		Args:  requireArg("Details command requires a package name argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetails(cmd.Context(), args[0])
		},
	}
}

// NewDependenciesCmd creates the dependencies command.
func NewDependenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dependencies PACKAGE",
		Short: "List direct dependencies of a package",
		Args:  requireArg("Dependencies command requires a package name argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDependencies(cmd.Context(), args[0])
		},
	}
}

// NewReverseDependenciesCmd creates the reverse-dependencies command.
func NewReverseDependenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse-dependencies PACKAGE",
		Short: "List packages that depend on a package",
		Args:  requireArg("Reverse-dependencies command requires a package name argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReverseDependencies(cmd.Context(), args[0])
		},
	}
}

// NewFilesCmd creates the files command.
func NewFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files PACKAGE",
		Short: "List files installed by a package",
		Args:  requireArg("Files command requires a package name argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd.Context(), args[0])
		},
	}
}

func runDetails(ctx context.Context, name string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	details, err := c.Details(ctx, name)
	if err != nil {
		return err
	}
	return writeJSON(details)
}

func runDependencies(ctx context.Context, name string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	deps, err := c.Dependencies(ctx, name)
	if err != nil {
		return err
	}
	return writeJSON(deps)
}

func runReverseDependencies(ctx context.Context, name string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	reverse, err := c.ReverseDependencies(ctx, name)
	if err != nil {
		return err
	}
	return writeJSON(reverse)
}

func runFiles(ctx context.Context, name string) error {
	orch, err := loadOrchestrator()
	if err != nil {
		return err
	}
	files, err := orch.Files(ctx, name)
	if err != nil {
		return err
	}
	return writeJSON(files)
}
