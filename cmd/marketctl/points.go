package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <user-id>",
		Short: "Show a user's points balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := container.Ledger.BalanceOf(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to read balance: %w", err)
			}
			fmt.Printf("%s: %s points\n", args[0], color.CyanString("%d", balance))
			return nil
		},
	}
}

func transactionsCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "transactions <user-id>",
		Short: "List a user's ledger entries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, total, err := container.Ledger.ListTransactions(cmd.Context(), args[0], page, limit)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			fmt.Printf("\nFound %d transactions (showing %d):\n\n", total, len(items))
			for _, t := range items {
				amount := color.GreenString("%+d", t.SignedPoints())
				if t.SignedPoints() < 0 {
					amount = color.RedString("%+d", t.SignedPoints())
				}
				source := ""
				if t.SourceRef != "" {
					source = fmt.Sprintf(" [%s]", t.SourceRef)
				}
				fmt.Printf("- %s %s %s%s\n", t.CreatedAt.Format(time.DateTime), amount, t.Description, source)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile <booking-id>",
		Short: "Compare a booking's cached points with its ledger credits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := container.Ledger.ReconcileBookingPoints(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to reconcile: %w", err)
			}

			fmt.Printf("booking %s: cached=%d ledger=%d\n", rec.BookingPublicID, rec.CachedPoints, rec.LedgerCredits)
			if rec.Consistent() {
				color.Green("consistent")
				return nil
			}
			color.Red("MISMATCH")
			return fmt.Errorf("booking %s points do not reconcile", rec.BookingPublicID)
		},
	}
}
