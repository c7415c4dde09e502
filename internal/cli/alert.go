package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/farmvet/herdsafe/pkg/client"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage compliance alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertSummaryCmd())
	cmd.AddCommand(newAlertResolveCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var farmID, animalID, alertType, severity string
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.AlertListOptions{
				FarmID:   farmID,
				AnimalID: animalID,
				Type:     alertType,
				Severity: severity,
			}
			if openOnly {
				resolved := false
				opts.Resolved = &resolved
			}

			page, err := apiClient.Alerts().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(page.Data)
			}

			t := NewTable("ID", "TYPE", "SEVERITY", "STATE", "MESSAGE")
			for _, a := range page.Data {
				t.AddRow(
					truncate(a.ID, 12),
					a.Type,
					formatSeverity(a.Severity),
					formatResolved(a.IsResolved),
					truncate(a.Message, 60),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&farmID, "farm", "", "filter by farm ID")
	cmd.Flags().StringVar(&animalID, "animal", "", "filter by animal ID")
	cmd.Flags().StringVar(&alertType, "type", "", "filter by alert type")
	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().BoolVar(&openOnly, "open", false, "show only unresolved alerts")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := apiClient.Alerts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("ID:        %s\n", a.ID)
			fmt.Printf("Type:      %s\n", a.Type)
			fmt.Printf("Severity:  %s\n", formatSeverity(a.Severity))
			fmt.Printf("State:     %s\n", formatResolved(a.IsResolved))
			fmt.Printf("Farm:      %s\n", a.FarmID)
			if a.AnimalID != nil {
				fmt.Printf("Animal:    %s\n", *a.AnimalID)
			}
			if a.TreatmentID != nil {
				fmt.Printf("Treatment: %s\n", *a.TreatmentID)
			}
			fmt.Printf("Message:   %s\n", a.Message)
			if a.ResolvedAt != nil {
				fmt.Printf("Resolved:  %s", a.ResolvedAt.Format("2006-01-02 15:04"))
				if a.ResolvedBy != nil {
					fmt.Printf(" by %s", *a.ResolvedBy)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newAlertSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show open alert counts by severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			counts, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(counts)
			}

			t := NewTable("SEVERITY", "OPEN")
			for _, sev := range []string{"high", "medium", "low"} {
				t.AddRow(formatSeverity(sev), strconv.Itoa(counts[sev]))
			}
			t.Render()
			return nil
		},
	}
}

func newAlertResolveCmd() *cobra.Command {
	var resolvedBy string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := apiClient.Alerts().Resolve(ctx, args[0], resolvedBy)
			if err != nil {
				return fmt.Errorf("failed to resolve alert: %w", err)
			}

			fmt.Printf("Resolved alert %s\n", a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&resolvedBy, "by", "", "resolver identity (required)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}
