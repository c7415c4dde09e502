package services

import (
	"context"
	"sort"
	"time"

	"github.com/farmvet/herdsafe/internal/config"
	"github.com/farmvet/herdsafe/internal/detector"
	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/domain/animal"
	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/evaluator"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/metrics"
	"github.com/farmvet/herdsafe/internal/withdrawal"
)

// RunSummary reports the outcome of one compliance run
type RunSummary struct {
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	RecordsEvaluated int       `json:"records_evaluated"`
	RecordsSkipped   int       `json:"records_skipped"`
	StatusesChanged  int       `json:"statuses_changed"`
	AlertsCreated    int       `json:"alerts_created"`
	AnimalsScanned   int       `json:"animals_scanned"`
	// ReviewEligible counts open alerts whose treatment's withdrawal window
	// has fully elapsed and which are awaiting reviewer confirmation.
	ReviewEligible int `json:"review_eligible"`
}

// ComplianceService orchestrates the batch compliance run: derived-date
// recomputation, per-treatment evaluation, per-animal overuse detection, and
// alert materialization. A failure on one record is logged and skipped, never
// fatal to the run.
type ComplianceService struct {
	treatments treatment.Repository
	drugs      drug.Repository
	animals    animal.Repository
	alertRepo  alert.Repository
	alerts     alert.Service
	evaluator  *evaluator.Evaluator
	detector   *detector.Detector
	cfg        config.ComplianceConfig
	logger     *logger.Logger

	// now is injectable for tests
	now func() time.Time
}

// NewComplianceService creates a new compliance run orchestrator
func NewComplianceService(
	treatments treatment.Repository,
	drugs drug.Repository,
	animals animal.Repository,
	alertRepo alert.Repository,
	alerts alert.Service,
	cfg config.ComplianceConfig,
	log *logger.Logger,
) *ComplianceService {
	return &ComplianceService{
		treatments: treatments,
		drugs:      drugs,
		animals:    animals,
		alertRepo:  alertRepo,
		alerts:     alerts,
		evaluator: evaluator.New(evaluator.Config{
			DosageWarningMargin:   cfg.DosageWarningMargin,
			WithdrawalWarningDays: cfg.WithdrawalWarningDays,
			Product:               withdrawal.Product(cfg.ProductContext),
		}),
		detector: detector.New(detector.Config{
			WindowDays:        cfg.OveruseWindowDays,
			MaxCount:          cfg.OveruseMaxCount,
			MaxCumulativeDays: cfg.OveruseMaxCumulativeDays,
		}),
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// RunComplianceChecks evaluates every treatment active or recently concluded
// within the overuse window and returns a run summary. Safe to re-run:
// evaluation and alert recording are idempotent over unchanged records.
func (s *ComplianceService) RunComplianceChecks(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{StartedAt: s.now().UTC()}
	asOf := withdrawal.CivilDate(s.now())
	since := asOf.AddDate(0, 0, -s.cfg.OveruseWindowDays)

	treatments, err := s.treatments.ListEndedSince(ctx, since)
	if err != nil {
		metrics.RecordComplianceRun("error", time.Since(summary.StartedAt))
		return nil, errors.Evaluation("failed to load treatment working set", err)
	}

	drugCache := make(map[string]*drug.Drug)
	animalCache := make(map[string]*animal.Animal)
	byAnimal := make(map[string][]*treatment.Treatment)
	byID := make(map[string]*treatment.Treatment)

	for _, t := range treatments {
		d, err := s.drugFor(ctx, drugCache, t.DrugID)
		if err != nil {
			s.skip(summary, t.ID, errors.Evaluation("failed to load drug for treatment", err))
			continue
		}
		an, err := s.animalFor(ctx, animalCache, t.AnimalID)
		if err != nil {
			s.skip(summary, t.ID, errors.Evaluation("failed to load animal for treatment", err))
			continue
		}

		if err := s.refreshDerivedDates(ctx, t, d); err != nil {
			s.skip(summary, t.ID, errors.Evaluation("failed to recompute derived dates", err))
			continue
		}

		result := s.evaluator.Evaluate(t, d, asOf)
		if result.Status != t.ComplianceStatus {
			if err := s.treatments.UpdateComplianceStatus(ctx, t.ID, result.Status); err != nil {
				s.skip(summary, t.ID, errors.Evaluation("failed to persist compliance status", err))
				continue
			}
			t.ComplianceStatus = result.Status
			summary.StatusesChanged++
		}
		summary.RecordsEvaluated++

		for _, f := range result.Findings {
			f.FarmID = an.FarmID
			created, err := s.alerts.RecordFinding(ctx, f)
			if err != nil {
				s.logger.WithFields(map[string]interface{}{
					"treatment_id": t.ID,
					"alert_type":   f.Type,
				}).ErrorWithErr(err, "Failed to record finding")
				continue
			}
			if created {
				summary.AlertsCreated++
			}
		}

		byAnimal[t.AnimalID] = append(byAnimal[t.AnimalID], t)
		byID[t.ID] = t
	}

	// Overuse detection per animal with activity in the window.
	animalIDs := make([]string, 0, len(byAnimal))
	for id := range byAnimal {
		animalIDs = append(animalIDs, id)
	}
	sort.Strings(animalIDs)

	for _, animalID := range animalIDs {
		an := animalCache[animalID]
		findings := s.detector.Detect(animalID, byAnimal[animalID], drugCache, asOf)
		for _, f := range findings {
			f.FarmID = an.FarmID
			created, err := s.alerts.RecordFinding(ctx, f)
			if err != nil {
				s.logger.WithFields(map[string]interface{}{
					"animal_id":  animalID,
					"alert_type": f.Type,
				}).ErrorWithErr(err, "Failed to record finding")
				continue
			}
			if created {
				summary.AlertsCreated++
			}
		}
		summary.AnimalsScanned++
	}

	summary.ReviewEligible = s.countReviewEligible(ctx, byID, asOf)
	summary.FinishedAt = s.now().UTC()

	metrics.RecordComplianceRun("ok", summary.FinishedAt.Sub(summary.StartedAt))
	metrics.AddRecordsEvaluated(summary.RecordsEvaluated)
	metrics.AddRecordsSkipped(summary.RecordsSkipped)

	s.logger.WithFields(map[string]interface{}{
		"records_evaluated": summary.RecordsEvaluated,
		"records_skipped":   summary.RecordsSkipped,
		"statuses_changed":  summary.StatusesChanged,
		"alerts_created":    summary.AlertsCreated,
		"animals_scanned":   summary.AnimalsScanned,
		"review_eligible":   summary.ReviewEligible,
	}).Info("Compliance run finished")

	return summary, nil
}

// refreshDerivedDates recomputes end and withdrawal-end dates and persists
// them only when the stored values are stale.
func (s *ComplianceService) refreshDerivedDates(ctx context.Context, t *treatment.Treatment, d *drug.Drug) error {
	period := withdrawal.PeriodFor(d, withdrawal.Product(s.cfg.ProductContext))
	dates, err := withdrawal.Calculate(t.StartDate, t.DurationDays, period)
	if err != nil {
		return err
	}
	if dates.EndDate.Equal(withdrawal.CivilDate(t.EndDate)) &&
		dates.WithdrawalEndDate.Equal(withdrawal.CivilDate(t.WithdrawalEndDate)) {
		return nil
	}
	if err := s.treatments.UpdateDerivedDates(ctx, t.ID, dates.EndDate, dates.WithdrawalEndDate); err != nil {
		return err
	}
	t.EndDate = dates.EndDate
	t.WithdrawalEndDate = dates.WithdrawalEndDate
	return nil
}

// countReviewEligible counts open alerts whose associated treatment's
// withdrawal window has fully elapsed as of the run date. Those alerts await
// explicit reviewer resolution; the engine never closes them itself.
func (s *ComplianceService) countReviewEligible(ctx context.Context, byID map[string]*treatment.Treatment, asOf time.Time) int {
	resolved := false
	open, err := s.alertRepo.List(ctx, alert.Filter{Resolved: &resolved})
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list open alerts for review eligibility")
		return 0
	}

	eligible := 0
	for _, a := range open {
		if a.TreatmentID == nil {
			continue
		}
		t, ok := byID[*a.TreatmentID]
		if !ok {
			continue
		}
		if withdrawal.CivilDate(t.WithdrawalEndDate).Before(asOf) {
			eligible++
		}
	}
	return eligible
}

func (s *ComplianceService) drugFor(ctx context.Context, cache map[string]*drug.Drug, id string) (*drug.Drug, error) {
	if d, ok := cache[id]; ok {
		return d, nil
	}
	d, err := s.drugs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = d
	return d, nil
}

func (s *ComplianceService) animalFor(ctx context.Context, cache map[string]*animal.Animal, id string) (*animal.Animal, error) {
	if a, ok := cache[id]; ok {
		return a, nil
	}
	a, err := s.animals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = a
	return a, nil
}

// Overview is a point-in-time compliance snapshot for dashboards and the CLI
type Overview struct {
	AsOf                 time.Time      `json:"as_of"`
	OpenAlertsBySeverity map[string]int `json:"open_alerts_by_severity"`
	TreatmentsByStatus   map[string]int `json:"treatments_by_status"`
	// ActiveWithdrawals counts treatments whose withdrawal window has not
	// yet elapsed as of today.
	ActiveWithdrawals int `json:"active_withdrawals"`
}

// Summary builds a compliance overview over the trailing evaluation window.
// Read-only; it never evaluates or mutates records.
func (s *ComplianceService) Summary(ctx context.Context) (*Overview, error) {
	asOf := withdrawal.CivilDate(s.now())
	since := asOf.AddDate(0, 0, -s.cfg.OveruseWindowDays)

	treatments, err := s.treatments.ListEndedSince(ctx, since)
	if err != nil {
		return nil, errors.Evaluation("failed to load treatment working set", err)
	}
	counts, err := s.alertRepo.CountOpenBySeverity(ctx)
	if err != nil {
		return nil, errors.Evaluation("failed to count open alerts", err)
	}

	overview := &Overview{
		AsOf:                 asOf,
		OpenAlertsBySeverity: counts,
		TreatmentsByStatus:   make(map[string]int),
	}
	for _, t := range treatments {
		overview.TreatmentsByStatus[t.ComplianceStatus]++
		if !withdrawal.CivilDate(t.WithdrawalEndDate).Before(asOf) {
			overview.ActiveWithdrawals++
		}
	}
	return overview, nil
}

func (s *ComplianceService) skip(summary *RunSummary, treatmentID string, err error) {
	summary.RecordsSkipped++
	s.logger.WithFields(map[string]interface{}{
		"treatment_id": treatmentID,
	}).ErrorWithErr(err, "Skipping treatment")
}
