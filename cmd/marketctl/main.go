package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"volunteer-marketplace-be/internal/bootstrap"
	"volunteer-marketplace-be/internal/config"
)

var container *bootstrap.Container

func main() {
	rootCmd := &cobra.Command{
		Use:   "marketctl",
		Short: "Operator tools for the volunteer marketplace",
		Long:  `Runs the featured-project expiry sweep and inspects the points ledger against the configured database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContainer()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if container != nil {
				container.Close()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func initContainer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, err := bootstrap.OpenDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	container, err = bootstrap.NewContainer(db, cfg)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	return nil
}
