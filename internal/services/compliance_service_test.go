package services

import (
	"context"
	"testing"
	"time"

	"github.com/farmvet/herdsafe/internal/config"
	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/domain/animal"
	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/testutil"
)

type complianceFixture struct {
	treatments *testutil.MockTreatmentRepository
	drugs      *testutil.MockDrugRepository
	animals    *testutil.MockAnimalRepository
	alerts     *testutil.MockAlertRepository
	service    *ComplianceService
}

func testComplianceConfig() config.ComplianceConfig {
	return config.ComplianceConfig{
		DosageWarningMargin:      0.10,
		WithdrawalWarningDays:    2,
		OveruseWindowDays:        90,
		OveruseMaxCount:          3,
		OveruseMaxCumulativeDays: 21,
		ProductContext:           "meat",
	}
}

func newComplianceFixture(t *testing.T, asOf time.Time) *complianceFixture {
	t.Helper()

	f := &complianceFixture{
		treatments: testutil.NewMockTreatmentRepository(),
		drugs:      testutil.NewMockDrugRepository(),
		animals:    testutil.NewMockAnimalRepository(),
		alerts:     testutil.NewMockAlertRepository(),
	}

	log := testLogger()
	alertSvc := NewAlertService(f.alerts, log)
	f.service = NewComplianceService(
		f.treatments, f.drugs, f.animals, f.alerts, alertSvc, testComplianceConfig(), log,
	)
	f.service.now = func() time.Time { return asOf }

	return f
}

func (f *complianceFixture) seedDrug(id string, ingredient string, maxDosage float64, meatDays int) {
	f.drugs.Drugs[id] = &drug.Drug{
		ID:                   id,
		Name:                 id,
		ActiveIngredient:     ingredient,
		MaxDosage:            &maxDosage,
		WithdrawalPeriodMeat: &meatDays,
		Unit:                 "mg/kg",
	}
}

func (f *complianceFixture) seedAnimal(id, farmID string) {
	f.animals.Animals[id] = &animal.Animal{
		ID:        id,
		FarmID:    farmID,
		TagNumber: "T-" + id,
		Species:   "cattle",
		Status:    animal.StatusActive,
	}
}

func (f *complianceFixture) seedTreatment(id, animalID, drugID string, dosage float64, start time.Time, duration, withdrawalDays int) {
	end := start.AddDate(0, 0, duration)
	f.treatments.Treatments[id] = &treatment.Treatment{
		ID:                id,
		AnimalID:          animalID,
		DrugID:            drugID,
		Dosage:            dosage,
		DosageUnit:        "mg/kg",
		Frequency:         treatment.FrequencyOnceDaily,
		StartDate:         start,
		DurationDays:      duration,
		EndDate:           end,
		WithdrawalEndDate: end.AddDate(0, 0, withdrawalDays),
		TreatmentReason:   "test",
		ComplianceStatus:  treatment.StatusCompliant,
	}
}

func TestRunComplianceChecksFlagsDosageViolation(t *testing.T) {
	asOf := date(2024, 1, 5)
	f := newComplianceFixture(t, asOf)
	f.seedDrug("drug-1", "oxytetracycline", 10.0, 5)
	f.seedAnimal("an-1", "farm-1")
	f.seedTreatment("tr-1", "an-1", "drug-1", 12.0, date(2024, 1, 1), 3, 5)

	summary, err := f.service.RunComplianceChecks(context.Background())
	if err != nil {
		t.Fatalf("RunComplianceChecks() error: %v", err)
	}

	if summary.RecordsEvaluated != 1 {
		t.Errorf("RecordsEvaluated = %d, want 1", summary.RecordsEvaluated)
	}
	if summary.StatusesChanged != 1 {
		t.Errorf("StatusesChanged = %d, want 1", summary.StatusesChanged)
	}
	if summary.AlertsCreated != 1 {
		t.Errorf("AlertsCreated = %d, want 1", summary.AlertsCreated)
	}

	stored := f.treatments.Treatments["tr-1"]
	if stored.ComplianceStatus != treatment.StatusViolation {
		t.Errorf("ComplianceStatus = %q, want violation", stored.ComplianceStatus)
	}

	open, _ := f.alerts.List(context.Background(), alert.Filter{})
	if len(open) != 1 {
		t.Fatalf("alerts = %d, want 1", len(open))
	}
	if open[0].Type != alert.TypeDosageExceeded {
		t.Errorf("alert type = %q, want dosage_exceeded", open[0].Type)
	}
	if open[0].FarmID != "farm-1" {
		t.Errorf("alert farm = %q, want farm-1", open[0].FarmID)
	}
}

func TestRunComplianceChecksIdempotentAcrossReruns(t *testing.T) {
	asOf := date(2024, 1, 5)
	f := newComplianceFixture(t, asOf)
	f.seedDrug("drug-1", "oxytetracycline", 10.0, 5)
	f.seedAnimal("an-1", "farm-1")
	f.seedTreatment("tr-1", "an-1", "drug-1", 12.0, date(2024, 1, 1), 3, 5)
	ctx := context.Background()

	first, err := f.service.RunComplianceChecks(ctx)
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := f.service.RunComplianceChecks(ctx)
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}

	if first.AlertsCreated != 1 {
		t.Errorf("first run AlertsCreated = %d, want 1", first.AlertsCreated)
	}
	if second.AlertsCreated != 0 {
		t.Errorf("second run AlertsCreated = %d, want 0 while the alert stays open", second.AlertsCreated)
	}
	if second.StatusesChanged != 0 {
		t.Errorf("second run StatusesChanged = %d, want 0", second.StatusesChanged)
	}

	all, _ := f.alerts.List(ctx, alert.Filter{})
	if len(all) != 1 {
		t.Errorf("alerts = %d after rerun, want 1", len(all))
	}
}

func TestRunComplianceChecksRepairsStaleDerivedDates(t *testing.T) {
	asOf := date(2024, 1, 5)
	f := newComplianceFixture(t, asOf)
	f.seedDrug("drug-1", "oxytetracycline", 10.0, 5)
	f.seedAnimal("an-1", "farm-1")
	// Stored withdrawal end is inconsistent with the registered period; the
	// run recomputes instead of trusting stored values.
	f.seedTreatment("tr-1", "an-1", "drug-1", 5.0, date(2024, 1, 1), 3, 2)

	if _, err := f.service.RunComplianceChecks(context.Background()); err != nil {
		t.Fatalf("RunComplianceChecks() error: %v", err)
	}

	stored := f.treatments.Treatments["tr-1"]
	if !stored.WithdrawalEndDate.Equal(date(2024, 1, 9)) {
		t.Errorf("WithdrawalEndDate = %v, want recomputed 2024-01-09", stored.WithdrawalEndDate)
	}
	// After repair the window is correct, so no withdrawal violation exists.
	all, _ := f.alerts.List(context.Background(), alert.Filter{Type: alert.TypeWithdrawalViolation})
	if len(all) != 0 {
		t.Errorf("withdrawal_violation alerts = %d, want 0 after date repair", len(all))
	}
}

func TestRunComplianceChecksSkipsMissingDrug(t *testing.T) {
	asOf := date(2024, 1, 5)
	f := newComplianceFixture(t, asOf)
	f.seedDrug("drug-1", "oxytetracycline", 10.0, 5)
	f.seedAnimal("an-1", "farm-1")
	f.seedTreatment("tr-ok", "an-1", "drug-1", 5.0, date(2024, 1, 1), 3, 5)
	f.seedTreatment("tr-orphan", "an-1", "missing-drug", 5.0, date(2024, 1, 1), 3, 5)

	summary, err := f.service.RunComplianceChecks(context.Background())
	if err != nil {
		t.Fatalf("RunComplianceChecks() error: %v", err)
	}

	if summary.RecordsEvaluated != 1 {
		t.Errorf("RecordsEvaluated = %d, want 1", summary.RecordsEvaluated)
	}
	if summary.RecordsSkipped != 1 {
		t.Errorf("RecordsSkipped = %d, want 1", summary.RecordsSkipped)
	}
}

func TestRunComplianceChecksFatalWhenListingFails(t *testing.T) {
	asOf := date(2024, 1, 5)
	f := newComplianceFixture(t, asOf)
	f.treatments.ListError = errors.DatabaseError("connection lost", nil)

	_, err := f.service.RunComplianceChecks(context.Background())
	if !errors.HasCode(err, errors.ErrCodeEvaluation) {
		t.Errorf("RunComplianceChecks() error = %v, want EVALUATION_ERROR", err)
	}
}

func TestRunComplianceChecksDetectsOveruse(t *testing.T) {
	asOf := date(2024, 4, 1)
	f := newComplianceFixture(t, asOf)
	f.seedDrug("drug-1", "amoxicillin", 100.0, 5)
	f.seedAnimal("an-1", "farm-1")
	// Four short courses of the same ingredient within the trailing window.
	f.seedTreatment("tr-1", "an-1", "drug-1", 5.0, date(2024, 2, 1), 3, 5)
	f.seedTreatment("tr-2", "an-1", "drug-1", 5.0, date(2024, 2, 20), 3, 5)
	f.seedTreatment("tr-3", "an-1", "drug-1", 5.0, date(2024, 3, 10), 3, 5)
	f.seedTreatment("tr-4", "an-1", "drug-1", 5.0, date(2024, 3, 25), 3, 5)

	summary, err := f.service.RunComplianceChecks(context.Background())
	if err != nil {
		t.Fatalf("RunComplianceChecks() error: %v", err)
	}

	if summary.AnimalsScanned != 1 {
		t.Errorf("AnimalsScanned = %d, want 1", summary.AnimalsScanned)
	}

	patterns, _ := f.alerts.List(context.Background(), alert.Filter{Type: alert.TypeOverusePattern})
	if len(patterns) != 1 {
		t.Fatalf("overuse_pattern alerts = %d, want exactly 1", len(patterns))
	}
	if patterns[0].Severity != alert.SeverityMedium {
		t.Errorf("severity = %q, want medium", patterns[0].Severity)
	}
	if patterns[0].TreatmentID != nil {
		t.Errorf("pattern alert must not reference a treatment, got %v", patterns[0].TreatmentID)
	}
}

func TestSummaryBuildsOverview(t *testing.T) {
	asOf := date(2024, 1, 5)
	f := newComplianceFixture(t, asOf)
	f.seedDrug("drug-1", "oxytetracycline", 10.0, 5)
	f.seedAnimal("an-1", "farm-1")
	// One clean course still inside its withdrawal window, one violation whose
	// window has elapsed.
	f.seedTreatment("tr-1", "an-1", "drug-1", 5.0, date(2024, 1, 1), 3, 5)
	f.seedTreatment("tr-2", "an-1", "drug-1", 12.0, date(2023, 12, 20), 3, 5)
	ctx := context.Background()

	if _, err := f.service.RunComplianceChecks(ctx); err != nil {
		t.Fatalf("RunComplianceChecks() error: %v", err)
	}

	overview, err := f.service.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}

	if overview.ActiveWithdrawals != 1 {
		t.Errorf("ActiveWithdrawals = %d, want 1", overview.ActiveWithdrawals)
	}
	if overview.TreatmentsByStatus[treatment.StatusCompliant] != 1 {
		t.Errorf("compliant = %d, want 1", overview.TreatmentsByStatus[treatment.StatusCompliant])
	}
	if overview.TreatmentsByStatus[treatment.StatusViolation] != 1 {
		t.Errorf("violation = %d, want 1", overview.TreatmentsByStatus[treatment.StatusViolation])
	}
	if overview.OpenAlertsBySeverity[alert.SeverityHigh] != 1 {
		t.Errorf("open high alerts = %d, want 1", overview.OpenAlertsBySeverity[alert.SeverityHigh])
	}
	if !overview.AsOf.Equal(asOf) {
		t.Errorf("AsOf = %v, want %v", overview.AsOf, asOf)
	}
}

func TestRunComplianceChecksCountsReviewEligible(t *testing.T) {
	asOf := date(2024, 1, 20)
	f := newComplianceFixture(t, asOf)
	f.seedDrug("drug-1", "oxytetracycline", 10.0, 5)
	f.seedAnimal("an-1", "farm-1")
	// Violation whose withdrawal window has fully elapsed by the run date.
	f.seedTreatment("tr-1", "an-1", "drug-1", 12.0, date(2024, 1, 1), 3, 5)

	first, err := f.service.RunComplianceChecks(context.Background())
	if err != nil {
		t.Fatalf("RunComplianceChecks() error: %v", err)
	}

	if first.AlertsCreated != 1 {
		t.Fatalf("AlertsCreated = %d, want 1", first.AlertsCreated)
	}
	if first.ReviewEligible != 1 {
		t.Errorf("ReviewEligible = %d, want 1 (window elapsed, alert still open)", first.ReviewEligible)
	}
}
