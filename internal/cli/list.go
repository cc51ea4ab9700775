package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewSectionsCmd creates the sections command.
func NewSectionsCmd() *cobra.Command {
	var storeID string

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List sections with package counts",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSections(cmd.Context(), storeID)
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "Only count packages in this store")

	return cmd
}

// NewListSectionCmd creates the list-section command.
func NewListSectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-section SECTION",
		Short: "List packages in a section",
		Args:  requireArg("List-section command requires a section name argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListSection(cmd.Context(), args[0])
		},
	}
}

// NewListInstalledCmd creates the list-installed command.
func NewListInstalledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-installed",
		Short: "List installed packages",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListInstalled(cmd.Context())
		},
	}
}

// NewListUpgradableCmd creates the list-upgradable command.
func NewListUpgradableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-upgradable",
		Short: "List packages with a newer candidate version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListUpgradable(cmd.Context())
		},
	}
}

func runSections(ctx context.Context, storeID string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	sections, err := c.Sections(ctx, storeID)
	if err != nil {
		return err
	}
	return writeJSON(sections)
}

func runListSection(ctx context.Context, section string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	pkgs, err := c.ListSection(ctx, section)
	if err != nil {
		return err
	}
	return writeJSON(pkgs)
}

func runListInstalled(ctx context.Context) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	pkgs, err := c.ListInstalled(ctx)
	if err != nil {
		return err
	}
	return writeJSON(pkgs)
}

func runListUpgradable(ctx context.Context) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	pkgs, err := c.ListUpgradable(ctx)
	if err != nil {
		return err
	}
	return writeJSON(pkgs)
}
