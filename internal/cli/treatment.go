package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farmvet/herdsafe/pkg/client"
)

func newTreatmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treatment",
		Short: "Manage treatment records",
	}

	cmd.AddCommand(newTreatmentListCmd())
	cmd.AddCommand(newTreatmentGetCmd())
	cmd.AddCommand(newTreatmentRecordCmd())

	return cmd
}

func newTreatmentListCmd() *cobra.Command {
	var animalID, farmID, drugID, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List treatments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.TreatmentListOptions{
				AnimalID: animalID,
				FarmID:   farmID,
				DrugID:   drugID,
				From:     from,
				To:       to,
			}

			page, err := apiClient.Treatments().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list treatments: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(page.Data)
			}

			t := NewTable("ID", "ANIMAL", "START", "END", "WITHDRAWAL END", "STATUS")
			for _, tr := range page.Data {
				t.AddRow(
					truncate(tr.ID, 12),
					truncate(tr.AnimalID, 12),
					tr.StartDate,
					tr.EndDate,
					tr.WithdrawalEndDate,
					formatComplianceStatus(tr.ComplianceStatus),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&animalID, "animal", "", "filter by animal ID")
	cmd.Flags().StringVar(&farmID, "farm", "", "filter by farm ID")
	cmd.Flags().StringVar(&drugID, "drug", "", "filter by drug ID")
	cmd.Flags().StringVar(&from, "from", "", "start date lower bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "start date upper bound (YYYY-MM-DD)")

	return cmd
}

func newTreatmentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get treatment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			tr, err := apiClient.Treatments().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get treatment: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tr)
			}

			fmt.Printf("ID:              %s\n", tr.ID)
			fmt.Printf("Animal:          %s\n", tr.AnimalID)
			fmt.Printf("Drug:            %s\n", tr.DrugID)
			fmt.Printf("Dosage:          %g %s (%s)\n", tr.Dosage, tr.DosageUnit, tr.Frequency)
			fmt.Printf("Start:           %s (%d days)\n", tr.StartDate, tr.DurationDays)
			fmt.Printf("End:             %s\n", tr.EndDate)
			fmt.Printf("Withdrawal end:  %s\n", tr.WithdrawalEndDate)
			fmt.Printf("Reason:          %s\n", tr.TreatmentReason)
			fmt.Printf("Status:          %s\n", formatComplianceStatus(tr.ComplianceStatus))
			return nil
		},
	}
}

func newTreatmentRecordCmd() *cobra.Command {
	var (
		animalID, drugID, unit, frequency, route, startDate, reason, notes string
		dosage                                                             float64
		duration                                                           int
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an antimicrobial treatment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req := &client.RecordTreatmentRequest{
				AnimalID:            animalID,
				DrugID:              drugID,
				Dosage:              dosage,
				DosageUnit:          unit,
				Frequency:           frequency,
				AdministrationRoute: route,
				StartDate:           startDate,
				DurationDays:        duration,
				TreatmentReason:     reason,
				Notes:               notes,
			}

			tr, err := apiClient.Treatments().Record(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to record treatment: %w", err)
			}

			fmt.Printf("Recorded treatment %s\n", tr.ID)
			fmt.Printf("  End date:        %s\n", tr.EndDate)
			fmt.Printf("  Withdrawal end:  %s\n", tr.WithdrawalEndDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&animalID, "animal", "", "animal ID (required)")
	cmd.Flags().StringVar(&drugID, "drug", "", "drug ID (required)")
	cmd.Flags().Float64Var(&dosage, "dosage", 0, "dosage amount (required)")
	cmd.Flags().StringVar(&unit, "unit", "mg/kg", "dosage unit")
	cmd.Flags().StringVar(&frequency, "frequency", "once_daily", "administration frequency")
	cmd.Flags().StringVar(&route, "route", "", "administration route")
	cmd.Flags().StringVar(&startDate, "start", "", "start date YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&duration, "duration", 0, "duration in days (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "treatment reason (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = cmd.MarkFlagRequired("animal")
	_ = cmd.MarkFlagRequired("drug")
	_ = cmd.MarkFlagRequired("dosage")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}
