package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farmvet/herdsafe/pkg/client"
)

func newAnimalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animal",
		Short: "Manage the animal registry",
	}

	cmd.AddCommand(newAnimalListCmd())
	cmd.AddCommand(newAnimalGetCmd())
	cmd.AddCommand(newAnimalCreateCmd())

	return cmd
}

func newAnimalListCmd() *cobra.Command {
	var farmID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List animals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.AnimalListOptions{FarmID: farmID}
			page, err := apiClient.Animals().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list animals: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(page.Data)
			}

			t := NewTable("ID", "TAG", "SPECIES", "BREED", "STATUS")
			for _, a := range page.Data {
				t.AddRow(
					truncate(a.ID, 12),
					a.TagNumber,
					a.Species,
					truncate(a.Breed, 20),
					a.Status,
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&farmID, "farm", "", "filter by farm ID")

	return cmd
}

func newAnimalGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get animal details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			a, err := apiClient.Animals().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get animal: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("ID:       %s\n", a.ID)
			fmt.Printf("Farm:     %s\n", a.FarmID)
			fmt.Printf("Tag:      %s\n", a.TagNumber)
			fmt.Printf("Species:  %s\n", a.Species)
			fmt.Printf("Breed:    %s\n", a.Breed)
			fmt.Printf("Status:   %s\n", a.Status)
			if a.BirthDate != nil {
				fmt.Printf("Born:     %s\n", a.BirthDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newAnimalCreateCmd() *cobra.Command {
	var (
		farmID, tag, species, breed, birthDate string
		weight                                 float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an animal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req := &client.CreateAnimalRequest{
				FarmID:    farmID,
				TagNumber: tag,
				Species:   species,
				Breed:     breed,
				BirthDate: birthDate,
			}
			if cmd.Flags().Changed("weight") {
				req.Weight = &weight
			}

			a, err := apiClient.Animals().Create(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to create animal: %w", err)
			}

			fmt.Printf("Registered animal %s (%s)\n", a.TagNumber, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&farmID, "farm", "", "farm ID (required)")
	cmd.Flags().StringVar(&tag, "tag", "", "tag number (required)")
	cmd.Flags().StringVar(&species, "species", "", "species (required)")
	cmd.Flags().StringVar(&breed, "breed", "", "breed")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight in kg")
	_ = cmd.MarkFlagRequired("farm")
	_ = cmd.MarkFlagRequired("tag")
	_ = cmd.MarkFlagRequired("species")

	return cmd
}
