package services

import (
	"context"
	"testing"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/testutil"
	"github.com/farmvet/herdsafe/internal/withdrawal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedDrug(repo *testutil.MockDrugRepository) *drug.Drug {
	meat := 5
	milk := 3
	maxDosage := 10.0
	d := &drug.Drug{
		ID:                   "drug-1",
		Name:                 "Oxytetracycline",
		ActiveIngredient:     "oxytetracycline",
		WithdrawalPeriodMeat: &meat,
		WithdrawalPeriodMilk: &milk,
		MaxDosage:            &maxDosage,
		Unit:                 "mg/kg",
	}
	repo.Drugs[d.ID] = d
	return d
}

func newTreatment() *treatment.Treatment {
	return &treatment.Treatment{
		AnimalID:        "an-1",
		DrugID:          "drug-1",
		Dosage:          5.0,
		DosageUnit:      "mg/kg",
		Frequency:       treatment.FrequencyOnceDaily,
		StartDate:       date(2024, 1, 1),
		DurationDays:    3,
		TreatmentReason: "respiratory infection",
	}
}

func TestTreatmentService_Record(t *testing.T) {
	treatments := testutil.NewMockTreatmentRepository()
	drugs := testutil.NewMockDrugRepository()
	seedDrug(drugs)
	service := NewTreatmentService(treatments, drugs, withdrawal.ProductMeat, testLogger())

	id, err := service.Record(context.Background(), newTreatment())
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if id == "" {
		t.Fatal("Record() returned empty id")
	}

	stored, err := service.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if !stored.EndDate.Equal(date(2024, 1, 4)) {
		t.Errorf("EndDate = %v, want 2024-01-04", stored.EndDate)
	}
	if !stored.WithdrawalEndDate.Equal(date(2024, 1, 9)) {
		t.Errorf("WithdrawalEndDate = %v, want 2024-01-09", stored.WithdrawalEndDate)
	}
	if stored.ComplianceStatus != treatment.StatusCompliant {
		t.Errorf("ComplianceStatus = %q, want compliant default", stored.ComplianceStatus)
	}
}

func TestTreatmentService_RecordMilkContext(t *testing.T) {
	treatments := testutil.NewMockTreatmentRepository()
	drugs := testutil.NewMockDrugRepository()
	seedDrug(drugs)
	service := NewTreatmentService(treatments, drugs, withdrawal.ProductMilk, testLogger())

	id, err := service.Record(context.Background(), newTreatment())
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	stored, _ := service.GetByID(context.Background(), id)
	if !stored.WithdrawalEndDate.Equal(date(2024, 1, 7)) {
		t.Errorf("WithdrawalEndDate = %v, want 2024-01-07 for the milk period", stored.WithdrawalEndDate)
	}
}

func TestTreatmentService_RecordNoWithdrawalPeriod(t *testing.T) {
	treatments := testutil.NewMockTreatmentRepository()
	drugs := testutil.NewMockDrugRepository()
	drugs.Drugs["drug-2"] = &drug.Drug{ID: "drug-2", Name: "Topical", ActiveIngredient: "iodine"}
	service := NewTreatmentService(treatments, drugs, withdrawal.ProductMeat, testLogger())

	tr := newTreatment()
	tr.DrugID = "drug-2"
	id, err := service.Record(context.Background(), tr)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	stored, _ := service.GetByID(context.Background(), id)
	if !stored.WithdrawalEndDate.Equal(stored.EndDate) {
		t.Errorf("WithdrawalEndDate = %v, want EndDate %v when no period registered",
			stored.WithdrawalEndDate, stored.EndDate)
	}
}

func TestTreatmentService_RecordValidation(t *testing.T) {
	treatments := testutil.NewMockTreatmentRepository()
	drugs := testutil.NewMockDrugRepository()
	seedDrug(drugs)
	service := NewTreatmentService(treatments, drugs, withdrawal.ProductMeat, testLogger())

	tests := []struct {
		name     string
		mutate   func(*treatment.Treatment)
		wantCode string
	}{
		{
			name:     "zero dosage",
			mutate:   func(tr *treatment.Treatment) { tr.Dosage = 0 },
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "negative dosage",
			mutate:   func(tr *treatment.Treatment) { tr.Dosage = -1 },
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "zero duration",
			mutate:   func(tr *treatment.Treatment) { tr.DurationDays = 0 },
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown drug",
			mutate:   func(tr *treatment.Treatment) { tr.DrugID = "missing" },
			wantCode: errors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTreatment()
			tt.mutate(tr)

			_, err := service.Record(context.Background(), tr)
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("Record() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestTreatmentService_UpdateRecomputesDates(t *testing.T) {
	treatments := testutil.NewMockTreatmentRepository()
	drugs := testutil.NewMockDrugRepository()
	seedDrug(drugs)
	service := NewTreatmentService(treatments, drugs, withdrawal.ProductMeat, testLogger())
	ctx := context.Background()

	id, err := service.Record(ctx, newTreatment())
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	// Simulate a prior evaluator classification.
	if err := treatments.UpdateComplianceStatus(ctx, id, treatment.StatusWarning); err != nil {
		t.Fatalf("UpdateComplianceStatus() error: %v", err)
	}

	updated := newTreatment()
	updated.ID = id
	updated.DurationDays = 7

	if err := service.Update(ctx, updated); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	stored, _ := service.GetByID(ctx, id)
	if !stored.EndDate.Equal(date(2024, 1, 8)) {
		t.Errorf("EndDate = %v, want 2024-01-08 after duration change", stored.EndDate)
	}
	if !stored.WithdrawalEndDate.Equal(date(2024, 1, 13)) {
		t.Errorf("WithdrawalEndDate = %v, want 2024-01-13 after duration change", stored.WithdrawalEndDate)
	}
	if stored.ComplianceStatus != treatment.StatusWarning {
		t.Errorf("ComplianceStatus = %q, update must not reset the evaluator's classification", stored.ComplianceStatus)
	}
}

func TestTreatmentService_UpdateNotFound(t *testing.T) {
	treatments := testutil.NewMockTreatmentRepository()
	drugs := testutil.NewMockDrugRepository()
	seedDrug(drugs)
	service := NewTreatmentService(treatments, drugs, withdrawal.ProductMeat, testLogger())

	tr := newTreatment()
	tr.ID = "missing"
	err := service.Update(context.Background(), tr)
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Update() error = %v, want NOT_FOUND", err)
	}
}
