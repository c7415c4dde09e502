package services

import (
	"context"
	"sync"
	"testing"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func strPtrOf(s string) *string {
	return &s
}

func testFinding() alert.Finding {
	return alert.Finding{
		Type:        alert.TypeDosageExceeded,
		Severity:    alert.SeverityHigh,
		Message:     "Dosage 12.00 mg/kg exceeds the maximum of 10.00 mg/kg",
		FarmID:      "farm-1",
		AnimalID:    strPtrOf("an-1"),
		TreatmentID: strPtrOf("tr-1"),
	}
}

func TestAlertService_RecordFinding(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	created, err := service.RecordFinding(ctx, testFinding())
	if err != nil {
		t.Fatalf("RecordFinding() error: %v", err)
	}
	if !created {
		t.Fatal("RecordFinding() = false, want true for a new finding")
	}
	if len(mockRepo.Alerts) != 1 {
		t.Fatalf("stored alerts = %d, want 1", len(mockRepo.Alerts))
	}
	for _, a := range mockRepo.Alerts {
		if a.IsResolved {
			t.Error("new alert must start open")
		}
		if a.FarmID != "farm-1" {
			t.Errorf("FarmID = %q, want farm-1", a.FarmID)
		}
		if a.ID == "" {
			t.Error("alert ID not assigned")
		}
	}
}

func TestAlertService_RecordFindingDeduplicates(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	if _, err := service.RecordFinding(ctx, testFinding()); err != nil {
		t.Fatalf("first RecordFinding() error: %v", err)
	}

	created, err := service.RecordFinding(ctx, testFinding())
	if err != nil {
		t.Fatalf("second RecordFinding() error: %v", err)
	}
	if created {
		t.Error("RecordFinding() = true, want false while an open alert exists")
	}
	if len(mockRepo.Alerts) != 1 {
		t.Errorf("stored alerts = %d, want 1", len(mockRepo.Alerts))
	}
}

func TestAlertService_RecordFindingAfterResolveCreatesNew(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	if _, err := service.RecordFinding(ctx, testFinding()); err != nil {
		t.Fatalf("RecordFinding() error: %v", err)
	}
	var firstID string
	for id := range mockRepo.Alerts {
		firstID = id
	}
	if err := service.Resolve(ctx, firstID, "vet-9"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	// The condition recurring after resolution produces a fresh alert.
	created, err := service.RecordFinding(ctx, testFinding())
	if err != nil {
		t.Fatalf("RecordFinding() error: %v", err)
	}
	if !created {
		t.Error("RecordFinding() = false, want true after the prior alert was resolved")
	}
	if len(mockRepo.Alerts) != 2 {
		t.Errorf("stored alerts = %d, want 2", len(mockRepo.Alerts))
	}
}

func TestAlertService_RecordFindingConcurrent(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	createdCount := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := service.RecordFinding(ctx, testFinding())
			if err != nil {
				t.Errorf("RecordFinding() error: %v", err)
				return
			}
			createdCount <- created
		}()
	}
	wg.Wait()
	close(createdCount)

	total := 0
	for created := range createdCount {
		if created {
			total++
		}
	}
	if total != 1 {
		t.Errorf("created = %d alerts under concurrency, want 1", total)
	}
}

func TestAlertService_DistinctKeysNotDeduplicated(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	f1 := testFinding()
	f2 := testFinding()
	f2.Type = alert.TypeWithdrawalViolation
	f3 := testFinding()
	f3.TreatmentID = strPtrOf("tr-2")

	for _, f := range []alert.Finding{f1, f2, f3} {
		created, err := service.RecordFinding(ctx, f)
		if err != nil {
			t.Fatalf("RecordFinding() error: %v", err)
		}
		if !created {
			t.Errorf("RecordFinding() = false for distinct key %q/%v", f.Type, f.TreatmentID)
		}
	}
	if len(mockRepo.Alerts) != 3 {
		t.Errorf("stored alerts = %d, want 3", len(mockRepo.Alerts))
	}
}

func TestAlertService_Resolve(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	if _, err := service.RecordFinding(ctx, testFinding()); err != nil {
		t.Fatalf("RecordFinding() error: %v", err)
	}
	var id string
	for k := range mockRepo.Alerts {
		id = k
	}

	if err := service.Resolve(ctx, id, "vet-9"); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	a, err := service.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error: %v", err)
	}
	if !a.IsResolved {
		t.Error("alert not marked resolved")
	}
	if a.ResolvedAt == nil {
		t.Error("ResolvedAt not recorded")
	}
	if a.ResolvedBy == nil || *a.ResolvedBy != "vet-9" {
		t.Errorf("ResolvedBy = %v, want vet-9", a.ResolvedBy)
	}
}

func TestAlertService_ResolveTwice(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	if _, err := service.RecordFinding(ctx, testFinding()); err != nil {
		t.Fatalf("RecordFinding() error: %v", err)
	}
	var id string
	for k := range mockRepo.Alerts {
		id = k
	}

	if err := service.Resolve(ctx, id, "vet-9"); err != nil {
		t.Fatalf("first Resolve() error: %v", err)
	}
	firstResolvedAt := *mockRepo.Alerts[id].ResolvedAt

	err := service.Resolve(ctx, id, "vet-10")
	if !errors.HasCode(err, errors.ErrCodeAlreadyResolved) {
		t.Errorf("second Resolve() error = %v, want ALREADY_RESOLVED", err)
	}

	// Original resolution metadata is untouched.
	a := mockRepo.Alerts[id]
	if *a.ResolvedBy != "vet-9" {
		t.Errorf("ResolvedBy = %q, want original vet-9", *a.ResolvedBy)
	}
	if !a.ResolvedAt.Equal(firstResolvedAt) {
		t.Error("ResolvedAt changed on repeated resolve")
	}
}

func TestAlertService_ResolveNotFound(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())

	err := service.Resolve(context.Background(), "missing", "vet-9")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Resolve() error = %v, want NOT_FOUND", err)
	}
}

func TestAlertService_Summary(t *testing.T) {
	mockRepo := testutil.NewMockAlertRepository()
	service := NewAlertService(mockRepo, testLogger())
	ctx := context.Background()

	f1 := testFinding()
	f2 := testFinding()
	f2.Type = alert.TypeWithdrawalViolation
	f3 := testFinding()
	f3.Type = alert.TypeOverusePattern
	f3.Severity = alert.SeverityMedium
	f3.TreatmentID = nil

	for _, f := range []alert.Finding{f1, f2, f3} {
		if _, err := service.RecordFinding(ctx, f); err != nil {
			t.Fatalf("RecordFinding() error: %v", err)
		}
	}

	counts, err := service.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if counts[alert.SeverityHigh] != 2 {
		t.Errorf("high = %d, want 2", counts[alert.SeverityHigh])
	}
	if counts[alert.SeverityMedium] != 1 {
		t.Errorf("medium = %d, want 1", counts[alert.SeverityMedium])
	}
}
