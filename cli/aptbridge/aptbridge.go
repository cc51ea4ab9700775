package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cperrin88/aptbridge/internal/cli"
	"github.com/cperrin88/aptbridge/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	jsonLogs   bool
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes one command and returns the process exit code. Failures are
// written to stderr as a JSON error object.
func run(args []string, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		err = cli.UsageError(err)
		cli.WriteError(stderr, err)
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aptbridge",
		Short: "JSON bridge to the APT package manager",
		Long: `aptbridge exposes the APT package catalog and package operations
as JSON for management UIs:
- Catalog: search, details, sections, stores, repositories, categories
- Operations: install, remove, update with streamed progress`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging on stderr")
	cmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "log as JSON on stderr")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.JSONLogs = &jsonLogs

	cmd.AddCommand(
		cli.NewSearchCmd(),
		cli.NewDetailsCmd(),
		cli.NewSectionsCmd(),
		cli.NewListSectionCmd(),
		cli.NewListInstalledCmd(),
		cli.NewListUpgradableCmd(),
		cli.NewDependenciesCmd(),
		cli.NewReverseDependenciesCmd(),
		cli.NewFilesCmd(),
		cli.NewFilterPackagesCmd(),
		cli.NewListStoresCmd(),
		cli.NewListRepositoriesCmd(),
		cli.NewListCategoriesCmd(),
		cli.NewListPackagesByCategoryCmd(),
		cli.NewInstallCmd(),
		cli.NewRemoveCmd(),
		cli.NewUpdateCmd(),
		cli.NewConfigCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
