package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/repository/postgres"
	"github.com/farmvet/herdsafe/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newUsage(animalID string, start time.Time, duration int) *treatment.Treatment {
	end := start.AddDate(0, 0, duration)
	return &treatment.Treatment{
		ID:                uuid.New().String(),
		AnimalID:          animalID,
		DrugID:            "drug-1",
		Dosage:            5.0,
		DosageUnit:        "mg/kg",
		Frequency:         treatment.FrequencyOnceDaily,
		StartDate:         start,
		DurationDays:      duration,
		EndDate:           end,
		WithdrawalEndDate: end.AddDate(0, 0, 5),
		TreatmentReason:   "respiratory infection",
		ComplianceStatus:  treatment.StatusCompliant,
	}
}

func TestTreatmentRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewTreatmentRepository(db)
	ctx := context.Background()

	tr := newUsage("an-1", date(2024, 1, 1), 3)
	tr.Notes = "follow up in one week"
	if err := repo.Create(ctx, tr); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.GetByID(ctx, tr.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if !got.StartDate.Equal(date(2024, 1, 1)) {
		t.Errorf("StartDate = %v, want 2024-01-01", got.StartDate)
	}
	if !got.EndDate.Equal(date(2024, 1, 4)) {
		t.Errorf("EndDate = %v, want 2024-01-04", got.EndDate)
	}
	if !got.WithdrawalEndDate.Equal(date(2024, 1, 9)) {
		t.Errorf("WithdrawalEndDate = %v, want 2024-01-09", got.WithdrawalEndDate)
	}
	if got.Notes != "follow up in one week" {
		t.Errorf("Notes = %q not preserved", got.Notes)
	}
	if got.VeterinarianID != nil {
		t.Errorf("VeterinarianID = %v, want nil", got.VeterinarianID)
	}
}

func TestTreatmentRepository_ListEndedSince(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewTreatmentRepository(db)
	ctx := context.Background()

	old := newUsage("an-1", date(2023, 10, 1), 3)
	recent := newUsage("an-1", date(2024, 1, 1), 3)
	current := newUsage("an-2", date(2024, 1, 10), 7)

	for _, tr := range []*treatment.Treatment{old, recent, current} {
		if err := repo.Create(ctx, tr); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	got, err := repo.ListEndedSince(ctx, date(2024, 1, 1))
	if err != nil {
		t.Fatalf("ListEndedSince() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListEndedSince() = %d treatments, want 2", len(got))
	}
	// Ordered by start date.
	if got[0].ID != recent.ID || got[1].ID != current.ID {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestTreatmentRepository_UpdateDerivedDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewTreatmentRepository(db)
	ctx := context.Background()

	tr := newUsage("an-1", date(2024, 1, 1), 3)
	if err := repo.Create(ctx, tr); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := repo.UpdateDerivedDates(ctx, tr.ID, date(2024, 1, 5), date(2024, 1, 12)); err != nil {
		t.Fatalf("UpdateDerivedDates() error: %v", err)
	}

	got, _ := repo.GetByID(ctx, tr.ID)
	if !got.EndDate.Equal(date(2024, 1, 5)) || !got.WithdrawalEndDate.Equal(date(2024, 1, 12)) {
		t.Errorf("derived dates = %v / %v, want 2024-01-05 / 2024-01-12", got.EndDate, got.WithdrawalEndDate)
	}

	err := repo.UpdateDerivedDates(ctx, "missing", date(2024, 1, 5), date(2024, 1, 12))
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("UpdateDerivedDates(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestTreatmentRepository_UpdateComplianceStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewTreatmentRepository(db)
	ctx := context.Background()

	tr := newUsage("an-1", date(2024, 1, 1), 3)
	if err := repo.Create(ctx, tr); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if err := repo.UpdateComplianceStatus(ctx, tr.ID, treatment.StatusViolation); err != nil {
		t.Fatalf("UpdateComplianceStatus() error: %v", err)
	}

	got, _ := repo.GetByID(ctx, tr.ID)
	if got.ComplianceStatus != treatment.StatusViolation {
		t.Errorf("ComplianceStatus = %q, want violation", got.ComplianceStatus)
	}
}

func TestTreatmentRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewTreatmentRepository(db)
	ctx := context.Background()

	t1 := newUsage("an-1", date(2024, 1, 1), 3)
	t2 := newUsage("an-1", date(2024, 2, 1), 3)
	t2.DrugID = "drug-2"
	t3 := newUsage("an-2", date(2024, 3, 1), 3)

	for _, tr := range []*treatment.Treatment{t1, t2, t3} {
		if err := repo.Create(ctx, tr); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	byAnimal, err := repo.List(ctx, treatment.Filter{AnimalID: "an-1"})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(byAnimal) != 2 {
		t.Errorf("List(an-1) = %d, want 2", len(byAnimal))
	}

	byDrug, _ := repo.List(ctx, treatment.Filter{DrugID: "drug-2"})
	if len(byDrug) != 1 {
		t.Errorf("List(drug-2) = %d, want 1", len(byDrug))
	}

	byRange, _ := repo.List(ctx, treatment.Filter{From: date(2024, 1, 15), To: date(2024, 2, 15)})
	if len(byRange) != 1 || byRange[0].ID != t2.ID {
		t.Errorf("List(range) = %d, want just the February treatment", len(byRange))
	}
}
