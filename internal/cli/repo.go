package cli

import (
	"context"

	"github.com/cperrin88/aptbridge/pkg/catalog"
	"github.com/spf13/cobra"
)

// NewListStoresCmd creates the list-stores command.
func NewListStoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-stores",
		Short: "List configured stores",
		Long:  "List the store definitions found in the store directory. An empty list means no stores are configured.",
		Args:  noArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runListStores()
		},
	}
}

// NewListRepositoriesCmd creates the list-repositories command.
func NewListRepositoriesCmd() *cobra.Command {
	var storeID string

	cmd := &cobra.Command{
		Use:   "list-repositories",
		Short: "List package repositories",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListRepositories(cmd.Context(), storeID)
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "Only count packages in this store")

	return cmd
}

// NewListCategoriesCmd creates the list-categories command.
func NewListCategoriesCmd() *cobra.Command {
	var storeID string

	cmd := &cobra.Command{
		Use:   "list-categories",
		Short: "List categories discovered from package tags",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListCategories(cmd.Context(), storeID)
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "Only look at packages in this store")

	return cmd
}

// NewListPackagesByCategoryCmd creates the list-packages-by-category command.
func NewListPackagesByCategoryCmd() *cobra.Command {
	var storeID string

	cmd := &cobra.Command{
		Use:   "list-packages-by-category CATEGORY",
		Short: "List packages tagged with a category",
		Args:  requireArg("List-packages-by-category command requires a category argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListPackagesByCategory(cmd.Context(), args[0], storeID)
		},
	}

	cmd.Flags().StringVar(&storeID, "store", "", "Only list packages in this store")

	return cmd
}

// NewFilterPackagesCmd creates the filter-packages command.
func NewFilterPackagesCmd() *cobra.Command {
	var (
		req   catalog.FilterRequest
		limit int
	)

	cmd := &cobra.Command{
		Use:   "filter-packages",
		Short: "Filter packages by store, repository, tab and search text",
		Long: `Apply the cascading package filter: store, then repository, then
tab (installed or upgradable), then a search on name and summary.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("limit") {
				req.Limit = &limit
			}
			return runFilterPackages(cmd.Context(), req)
		},
	}

	cmd.Flags().StringVar(&req.StoreID, "store", "", "Store ID")
	cmd.Flags().StringVar(&req.RepositoryID, "repo", "", "Repository ID (origin:suite)")
	cmd.Flags().StringVar(&req.Tab, "tab", "", "installed or upgradable")
	cmd.Flags().StringVar(&req.Search, "search", "", "Text to match in name or summary")
	cmd.Flags().IntVar(&limit, "limit", catalog.DefaultFilterLimit, "Maximum number of packages returned")

	return cmd
}

func runListStores() error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	stores, err := c.ListStores()
	if err != nil {
		return err
	}
	return writeJSON(stores)
}

func runListRepositories(ctx context.Context, storeID string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	repos, err := c.ListRepositories(ctx, storeID)
	if err != nil {
		return err
	}
	return writeJSON(repos)
}

func runListCategories(ctx context.Context, storeID string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	categories, err := c.ListCategories(ctx, storeID)
	if err != nil {
		return err
	}
	return writeJSON(categories)
}

func runListPackagesByCategory(ctx context.Context, categoryID, storeID string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	pkgs, err := c.ListPackagesByCategory(ctx, categoryID, storeID)
	if err != nil {
		return err
	}
	return writeJSON(pkgs)
}

func runFilterPackages(ctx context.Context, req catalog.FilterRequest) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	result, err := c.FilterPackages(ctx, req)
	if err != nil {
		return err
	}
	return writeJSON(result)
}
