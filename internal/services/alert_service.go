package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/metrics"
)

// AlertService implements alert.Service. It owns the alert lifecycle:
// findings are deduplicated against open alerts, and resolution is a one-way
// transition requiring an explicit resolver.
type AlertService struct {
	repo   alert.Repository
	logger *logger.Logger

	// keyLocks serializes RecordFinding per deduplication key so concurrent
	// evaluation groups cannot create duplicate open alerts.
	keyLocks sync.Map // map[string]*sync.Mutex
}

// NewAlertService creates a new alert service
func NewAlertService(repo alert.Repository, log *logger.Logger) *AlertService {
	return &AlertService{
		repo:   repo,
		logger: log,
	}
}

// RecordFinding materializes a finding as an open alert. When an unresolved
// alert already exists for the same (alert_type, animal, treatment) key this
// is a no-op returning false.
func (s *AlertService) RecordFinding(ctx context.Context, f alert.Finding) (bool, error) {
	key := dedupeKey(f.Type, f.AnimalID, f.TreatmentID)
	mu := s.lockFor(key)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.repo.GetOpenByKey(ctx, f.Type, f.AnimalID, f.TreatmentID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	a := &alert.Alert{
		ID:          uuid.New().String(),
		FarmID:      f.FarmID,
		AnimalID:    f.AnimalID,
		TreatmentID: f.TreatmentID,
		Type:        f.Type,
		Severity:    f.Severity,
		Message:     f.Message,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create alert")
		return false, err
	}

	metrics.RecordAlertCreated(a.Type, a.Severity)
	s.logger.WithFields(map[string]interface{}{
		"alert_id": a.ID,
		"farm_id":  a.FarmID,
		"type":     a.Type,
		"severity": a.Severity,
	}).Info("Alert created")

	return true, nil
}

// Resolve transitions an alert from open to resolved. Returns NOT_FOUND when
// the alert does not exist and ALREADY_RESOLVED when it was resolved before;
// a resolved alert keeps its original timestamp and resolver.
func (s *AlertService) Resolve(ctx context.Context, id, resolvedBy string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.IsResolved {
		return errors.AlreadyResolved("Alert")
	}

	if err := s.repo.MarkResolved(ctx, id, resolvedBy, time.Now().UTC()); err != nil {
		s.logger.ErrorWithErr(err, "Failed to resolve alert")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"alert_id":    id,
		"resolved_by": resolvedBy,
	}).Info("Alert resolved")

	return nil
}

// GetByID retrieves an alert by ID
func (s *AlertService) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves alerts matching the filter
func (s *AlertService) List(ctx context.Context, filter alert.Filter) ([]*alert.Alert, error) {
	return s.repo.List(ctx, filter)
}

// Summary counts unresolved alerts by severity
func (s *AlertService) Summary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountOpenBySeverity(ctx)
}

func (s *AlertService) lockFor(key string) *sync.Mutex {
	mu, _ := s.keyLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func dedupeKey(alertType string, animalID, treatmentID *string) string {
	key := alertType
	if animalID != nil {
		key += "|" + *animalID
	} else {
		key += "|"
	}
	if treatmentID != nil {
		key += "|" + *treatmentID
	} else {
		key += "|"
	}
	return key
}
