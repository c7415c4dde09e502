package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newComplianceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Run and inspect compliance checks",
	}

	cmd.AddCommand(newComplianceRunCmd())
	cmd.AddCommand(newComplianceSummaryCmd())

	return cmd
}

func newComplianceRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Trigger a compliance sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary, err := apiClient.Compliance().Run(ctx)
			if err != nil {
				return fmt.Errorf("compliance run failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Println("Compliance run complete")
			fmt.Printf("  Duration:          %s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))
			fmt.Printf("  Records evaluated: %d\n", summary.RecordsEvaluated)
			fmt.Printf("  Records skipped:   %d\n", summary.RecordsSkipped)
			fmt.Printf("  Statuses changed:  %d\n", summary.StatusesChanged)
			fmt.Printf("  Alerts created:    %d\n", summary.AlertsCreated)
			fmt.Printf("  Animals scanned:   %d\n", summary.AnimalsScanned)
			fmt.Printf("  Review eligible:   %d\n", summary.ReviewEligible)
			return nil
		},
	}
}

func newComplianceSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the current compliance overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			overview, err := apiClient.Compliance().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch compliance overview: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(overview)
			}

			fmt.Printf("Compliance overview as of %s\n", overview.AsOf.Format("2006-01-02"))
			fmt.Printf("  Active withdrawals: %d\n", overview.ActiveWithdrawals)
			fmt.Println("  Open alerts:")
			for _, severity := range []string{"high", "medium", "low"} {
				fmt.Printf("    %s %d\n", formatSeverity(severity), overview.OpenAlertsBySeverity[severity])
			}
			fmt.Println("  Treatments (trailing window):")
			for _, status := range []string{"compliant", "warning", "violation"} {
				fmt.Printf("    %s %d\n", formatComplianceStatus(status), overview.TreatmentsByStatus[status])
			}
			return nil
		},
	}
}
