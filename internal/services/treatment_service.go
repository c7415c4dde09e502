package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/withdrawal"
)

// TreatmentService implements treatment.Service. It owns the derived fields
// of a treatment record: end date and withdrawal-end date are recomputed from
// the dosage schedule and drug metadata on every create and update.
type TreatmentService struct {
	treatments treatment.Repository
	drugs      drug.Repository
	product    withdrawal.Product
	logger     *logger.Logger
}

// NewTreatmentService creates a new treatment service
func NewTreatmentService(treatments treatment.Repository, drugs drug.Repository, product withdrawal.Product, log *logger.Logger) *TreatmentService {
	return &TreatmentService{
		treatments: treatments,
		drugs:      drugs,
		product:    product,
		logger:     log,
	}
}

// Record creates a treatment record with derived dates computed from the
// referenced drug's withdrawal period
func (s *TreatmentService) Record(ctx context.Context, t *treatment.Treatment) (string, error) {
	if t.Dosage <= 0 {
		return "", errors.InvalidInput("dosage must be positive")
	}

	d, err := s.drugs.GetByID(ctx, t.DrugID)
	if err != nil {
		return "", err
	}

	if err := s.deriveDates(t, d); err != nil {
		return "", err
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.ComplianceStatus == "" {
		t.ComplianceStatus = treatment.StatusCompliant
	}

	if err := s.treatments.Create(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create treatment")
		return "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"treatment_id":        t.ID,
		"animal_id":           t.AnimalID,
		"drug_id":             t.DrugID,
		"withdrawal_end_date": t.WithdrawalEndDate.Format("2006-01-02"),
	}).Info("Treatment recorded")

	return t.ID, nil
}

// GetByID retrieves a treatment by ID
func (s *TreatmentService) GetByID(ctx context.Context, id string) (*treatment.Treatment, error) {
	return s.treatments.GetByID(ctx, id)
}

// Update updates a treatment's input fields, recomputing derived dates.
// The compliance status is owned by the evaluator and left untouched here.
func (s *TreatmentService) Update(ctx context.Context, t *treatment.Treatment) error {
	if t.Dosage <= 0 {
		return errors.InvalidInput("dosage must be positive")
	}

	current, err := s.treatments.GetByID(ctx, t.ID)
	if err != nil {
		return err
	}

	d, err := s.drugs.GetByID(ctx, t.DrugID)
	if err != nil {
		return err
	}

	if err := s.deriveDates(t, d); err != nil {
		return err
	}
	t.ComplianceStatus = current.ComplianceStatus

	if err := s.treatments.Update(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update treatment")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"treatment_id": t.ID,
	}).Info("Treatment updated")

	return nil
}

// List retrieves treatments matching the filter
func (s *TreatmentService) List(ctx context.Context, filter treatment.Filter) ([]*treatment.Treatment, error) {
	return s.treatments.List(ctx, filter)
}

func (s *TreatmentService) deriveDates(t *treatment.Treatment, d *drug.Drug) error {
	period := withdrawal.PeriodFor(d, s.product)
	dates, err := withdrawal.Calculate(t.StartDate, t.DurationDays, period)
	if err != nil {
		return err
	}
	t.StartDate = withdrawal.CivilDate(t.StartDate)
	t.EndDate = dates.EndDate
	t.WithdrawalEndDate = dates.WithdrawalEndDate
	return nil
}
