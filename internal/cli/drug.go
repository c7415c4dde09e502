package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/farmvet/herdsafe/pkg/client"
)

func newDrugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drug",
		Short: "Manage drug reference data",
	}

	cmd.AddCommand(newDrugListCmd())
	cmd.AddCommand(newDrugGetCmd())
	cmd.AddCommand(newDrugCreateCmd())

	return cmd
}

func newDrugListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered drugs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			page, err := apiClient.Drugs().List(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to list drugs: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(page.Data)
			}

			t := NewTable("ID", "NAME", "INGREDIENT", "WD MEAT", "WD MILK", "MAX DOSAGE")
			for _, d := range page.Data {
				t.AddRow(
					truncate(d.ID, 12),
					truncate(d.Name, 30),
					truncate(d.ActiveIngredient, 25),
					formatDays(d.WithdrawalPeriodMeat),
					formatDays(d.WithdrawalPeriodMilk),
					formatDosage(d.MaxDosage, d.Unit),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newDrugGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get drug details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			d, err := apiClient.Drugs().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get drug: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(d)
			}

			fmt.Printf("ID:                 %s\n", d.ID)
			fmt.Printf("Name:               %s\n", d.Name)
			fmt.Printf("Active ingredient:  %s\n", d.ActiveIngredient)
			fmt.Printf("Type:               %s\n", d.DrugType)
			fmt.Printf("Withdrawal (meat):  %s\n", formatDays(d.WithdrawalPeriodMeat))
			fmt.Printf("Withdrawal (milk):  %s\n", formatDays(d.WithdrawalPeriodMilk))
			fmt.Printf("Max dosage:         %s\n", formatDosage(d.MaxDosage, d.Unit))
			if d.MRLLimit != nil {
				fmt.Printf("MRL limit:          %g\n", *d.MRLLimit)
			}
			return nil
		},
	}
}

func newDrugCreateCmd() *cobra.Command {
	var (
		name, ingredient, drugType, unit   string
		wdMeat, wdMilk                     int
		maxDosage, mrlLimit                float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a drug",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req := &client.CreateDrugRequest{
				Name:             name,
				ActiveIngredient: ingredient,
				DrugType:         drugType,
				Unit:             unit,
			}
			if cmd.Flags().Changed("withdrawal-meat") {
				req.WithdrawalPeriodMeat = &wdMeat
			}
			if cmd.Flags().Changed("withdrawal-milk") {
				req.WithdrawalPeriodMilk = &wdMilk
			}
			if cmd.Flags().Changed("max-dosage") {
				req.MaxDosage = &maxDosage
			}
			if cmd.Flags().Changed("mrl-limit") {
				req.MRLLimit = &mrlLimit
			}

			d, err := apiClient.Drugs().Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create drug: %w", err)
			}

			fmt.Printf("Created drug %s (%s)\n", d.Name, d.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "drug name (required)")
	cmd.Flags().StringVar(&ingredient, "ingredient", "", "active ingredient (required)")
	cmd.Flags().StringVar(&drugType, "type", "", "drug type (antibiotic, antiparasitic, ...)")
	cmd.Flags().StringVar(&unit, "unit", "", "dosage unit (mg/kg, ml, ...)")
	cmd.Flags().IntVar(&wdMeat, "withdrawal-meat", 0, "meat withdrawal period in days")
	cmd.Flags().IntVar(&wdMilk, "withdrawal-milk", 0, "milk withdrawal period in days")
	cmd.Flags().Float64Var(&maxDosage, "max-dosage", 0, "dosage ceiling")
	cmd.Flags().Float64Var(&mrlLimit, "mrl-limit", 0, "maximum residue limit")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("ingredient")

	return cmd
}

func formatDays(days *int) string {
	if days == nil {
		return "-"
	}
	return strconv.Itoa(*days) + "d"
}

func formatDosage(dosage *float64, unit string) string {
	if dosage == nil {
		return "-"
	}
	if unit == "" {
		return fmt.Sprintf("%g", *dosage)
	}
	return fmt.Sprintf("%g %s", *dosage, unit)
}
