// Package main provides the storefront CLI: local store initialization,
// explicit reconciliation with the remote mirror, and a reset for tests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dukaforge/storefront/internal/mirror"
	"github.com/dukaforge/storefront/internal/repair"
	"github.com/dukaforge/storefront/internal/shop"
	"github.com/dukaforge/storefront/internal/store"
	"github.com/dukaforge/storefront/pkg/logger"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagEndpoint  string
)

// Wiring shared by all subcommands, set up by PersistentPreRunE.
var (
	repo    *store.Repository
	adapter *mirror.Adapter
	service *shop.Service
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront is a local-first merchant catalog and order store",
	Long: `Storefront keeps a merchant's catalog, orders and customer records in a
local store that is opportunistically mirrored to a remote tabular backend.
The local store is authoritative; the mirror only catches up.`,
	PersistentPreRunE: openStore,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.storefront)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "remote mirror endpoint (overrides config)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(resetCmd)
}

// openStore loads config and opens the repository and its collaborators.
func openStore(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New()
	repo = store.NewRepository(log)
	if err := repo.Open(cfg); err != nil {
		return fmt.Errorf("open repository: %w", err)
	}
	adapter = mirror.NewAdapter(cfg, repo, log)
	service = shop.NewService(repo, adapter, repair.NewResolver(repo, log), log)
	return nil
}

// closeStore releases the repository.
func closeStore() error {
	if repo != nil {
		return repo.Close()
	}
	return nil
}
