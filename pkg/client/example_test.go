package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/farmvet/herdsafe/pkg/client"
)

// Example demonstrates basic usage of the HerdSafe client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()

	// Record a treatment; the server derives the withdrawal window
	tr, err := c.Treatments().Record(ctx, &client.RecordTreatmentRequest{
		AnimalID:        "b9c7e3a0-0f59-4f6e-9d6d-1f2a3b4c5d6e",
		DrugID:          "7f1e2d3c-4b5a-6978-8796-a5b4c3d2e1f0",
		Dosage:          5.0,
		DosageUnit:      "mg/kg",
		Frequency:       "once_daily",
		StartDate:       "2024-01-01",
		DurationDays:    3,
		TreatmentReason: "respiratory infection",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Safe for slaughter after: %s\n", tr.WithdrawalEndDate)
}

// ExampleAlertService_Resolve demonstrates resolving a compliance alert
func ExampleAlertService_Resolve() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	alert, err := c.Alerts().Resolve(context.Background(), "alert-id", "vet-42")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Alert %s resolved\n", alert.ID)
}

// ExampleComplianceService_Run demonstrates triggering a compliance sweep
func ExampleComplianceService_Run() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	summary, err := c.Compliance().Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Evaluated %d records, created %d alerts\n",
		summary.RecordsEvaluated, summary.AlertsCreated)
}
