package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/repository/postgres"
	"github.com/farmvet/herdsafe/internal/testutil"
)

func strPtr(s string) *string {
	return &s
}

func newAlert(alertType string, animalID, treatmentID *string) *alert.Alert {
	return &alert.Alert{
		ID:          uuid.New().String(),
		FarmID:      "farm-1",
		AnimalID:    animalID,
		TreatmentID: treatmentID,
		Type:        alertType,
		Severity:    alert.SeverityHigh,
		Message:     "test alert",
	}
}

func TestAlertRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlertRepository(db)
	ctx := context.Background()

	a := newAlert(alert.TypeDosageExceeded, strPtr("an-1"), strPtr("tr-1"))
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if got.Type != alert.TypeDosageExceeded {
		t.Errorf("Type = %q, want dosage_exceeded", got.Type)
	}
	if got.AnimalID == nil || *got.AnimalID != "an-1" {
		t.Errorf("AnimalID = %v, want an-1", got.AnimalID)
	}
	if got.TreatmentID == nil || *got.TreatmentID != "tr-1" {
		t.Errorf("TreatmentID = %v, want tr-1", got.TreatmentID)
	}
	if got.IsResolved {
		t.Error("new alert must start open")
	}
	if got.ResolvedAt != nil || got.ResolvedBy != nil {
		t.Error("resolution fields must start empty")
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not persisted")
	}
}

func TestAlertRepository_GetByIDNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlertRepository(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("GetByID() error = %v, want NOT_FOUND", err)
	}
}

func TestAlertRepository_GetOpenByKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlertRepository(db)
	ctx := context.Background()

	a := newAlert(alert.TypeOverusePattern, strPtr("an-1"), nil)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.GetOpenByKey(ctx, alert.TypeOverusePattern, strPtr("an-1"), nil)
	if err != nil {
		t.Fatalf("GetOpenByKey() error: %v", err)
	}
	if got == nil || got.ID != a.ID {
		t.Fatalf("GetOpenByKey() = %v, want alert %s", got, a.ID)
	}

	// Different key components miss.
	if got, _ := repo.GetOpenByKey(ctx, alert.TypeMRLViolation, strPtr("an-1"), nil); got != nil {
		t.Errorf("GetOpenByKey() matched a different type: %v", got)
	}
	if got, _ := repo.GetOpenByKey(ctx, alert.TypeOverusePattern, strPtr("an-2"), nil); got != nil {
		t.Errorf("GetOpenByKey() matched a different animal: %v", got)
	}
	if got, _ := repo.GetOpenByKey(ctx, alert.TypeOverusePattern, strPtr("an-1"), strPtr("tr-1")); got != nil {
		t.Errorf("GetOpenByKey() matched a different treatment: %v", got)
	}

	// Resolved alerts stop matching.
	if err := repo.MarkResolved(ctx, a.ID, "vet-9", time.Now().UTC()); err != nil {
		t.Fatalf("MarkResolved() error: %v", err)
	}
	if got, _ := repo.GetOpenByKey(ctx, alert.TypeOverusePattern, strPtr("an-1"), nil); got != nil {
		t.Errorf("GetOpenByKey() matched a resolved alert: %v", got)
	}
}

func TestAlertRepository_MarkResolvedOneWay(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlertRepository(db)
	ctx := context.Background()

	a := newAlert(alert.TypeWithdrawalViolation, strPtr("an-1"), strPtr("tr-1"))
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	resolvedAt := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	if err := repo.MarkResolved(ctx, a.ID, "vet-9", resolvedAt); err != nil {
		t.Fatalf("MarkResolved() error: %v", err)
	}

	got, _ := repo.GetByID(ctx, a.ID)
	if !got.IsResolved {
		t.Error("alert not resolved")
	}
	if got.ResolvedAt == nil || !got.ResolvedAt.Equal(resolvedAt) {
		t.Errorf("ResolvedAt = %v, want %v", got.ResolvedAt, resolvedAt)
	}
	if got.ResolvedBy == nil || *got.ResolvedBy != "vet-9" {
		t.Errorf("ResolvedBy = %v, want vet-9", got.ResolvedBy)
	}

	// A second resolve finds no open row.
	err := repo.MarkResolved(ctx, a.ID, "vet-10", time.Now().UTC())
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("second MarkResolved() error = %v, want NOT_FOUND", err)
	}
	got, _ = repo.GetByID(ctx, a.ID)
	if *got.ResolvedBy != "vet-9" {
		t.Errorf("ResolvedBy = %q after repeated resolve, want vet-9", *got.ResolvedBy)
	}
}

func TestAlertRepository_OpenKeyUniqueIndex(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlertRepository(db)
	ctx := context.Background()

	a := newAlert(alert.TypeDosageExceeded, strPtr("an-1"), strPtr("tr-1"))
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// The partial unique index rejects a second open alert for the same key.
	dup := newAlert(alert.TypeDosageExceeded, strPtr("an-1"), strPtr("tr-1"))
	if err := repo.Create(ctx, dup); err == nil {
		t.Fatal("Create() succeeded for a duplicate open key, want constraint violation")
	}

	// After resolving, the key is free again.
	if err := repo.MarkResolved(ctx, a.ID, "vet-9", time.Now().UTC()); err != nil {
		t.Fatalf("MarkResolved() error: %v", err)
	}
	if err := repo.Create(ctx, dup); err != nil {
		t.Errorf("Create() error after key freed: %v", err)
	}
}

func TestAlertRepository_ListAndCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewAlertRepository(db)
	ctx := context.Background()

	high := newAlert(alert.TypeDosageExceeded, strPtr("an-1"), strPtr("tr-1"))
	medium := newAlert(alert.TypeOverusePattern, strPtr("an-2"), nil)
	medium.Severity = alert.SeverityMedium
	other := newAlert(alert.TypeWithdrawalViolation, strPtr("an-1"), strPtr("tr-2"))
	other.FarmID = "farm-2"

	for _, a := range []*alert.Alert{high, medium, other} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}
	if err := repo.MarkResolved(ctx, other.ID, "vet-9", time.Now().UTC()); err != nil {
		t.Fatalf("MarkResolved() error: %v", err)
	}

	all, err := repo.List(ctx, alert.Filter{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() = %d alerts, want 3", len(all))
	}

	farm1, _ := repo.List(ctx, alert.Filter{FarmID: "farm-1"})
	if len(farm1) != 2 {
		t.Errorf("List(farm-1) = %d, want 2", len(farm1))
	}

	resolved := false
	open, _ := repo.List(ctx, alert.Filter{Resolved: &resolved})
	if len(open) != 2 {
		t.Errorf("List(open) = %d, want 2", len(open))
	}

	counts, err := repo.CountOpenBySeverity(ctx)
	if err != nil {
		t.Fatalf("CountOpenBySeverity() error: %v", err)
	}
	if counts[alert.SeverityHigh] != 1 || counts[alert.SeverityMedium] != 1 {
		t.Errorf("counts = %v, want high:1 medium:1", counts)
	}
}
