package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search packages",
		Long: `Search package names and summaries for QUERY (case-insensitive).
Name matches are listed first; at most 100 results are returned.`,
		Args: requireArg("Search command requires a query argument"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), args[0])
		},
	}

	return cmd
}

func runSearch(ctx context.Context, query string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	results, err := c.Search(ctx, query)
	if err != nil {
		return err
	}
	return writeJSON(results)
}
