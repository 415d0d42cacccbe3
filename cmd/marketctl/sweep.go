package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func sweepCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the featured-project expiry sweep once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at must be RFC3339: %w", err)
				}
				now = parsed.UTC()
			}

			report, err := container.Featured.RunExpirySweep(cmd.Context(), now)
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}

			fmt.Printf("\nSweep at %s\n\n", now.Format(time.RFC3339))
			fmt.Printf("  scanned           %d\n", report.Scanned)
			fmt.Printf("  7-day reminders   %d\n", report.SevenDayReminders)
			fmt.Printf("  1-day reminders   %d\n", report.OneDayReminders)
			color.Green("  expired           %d", report.Expired)
			if report.Conflicts > 0 {
				color.Yellow("  conflicts         %d", report.Conflicts)
			}
			if report.Failed > 0 {
				color.Red("  failed            %d", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Evaluate thresholds as of this RFC3339 time (default: now)")
	return cmd
}
