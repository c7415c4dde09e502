package worker

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/metrics"
	"github.com/farmvet/herdsafe/internal/services"
)

// ComplianceScanner triggers the compliance run on a recurring schedule.
// The engine owns no in-process timers beyond this scheduling collaborator;
// partial completion is resumable because evaluation and alert recording are
// idempotent.
type ComplianceScanner struct {
	compliance *services.ComplianceService
	alerts     alert.Service
	schedule   string
	logger     *logger.Logger
}

// NewComplianceScanner creates a new compliance scanner worker
func NewComplianceScanner(compliance *services.ComplianceService, alerts alert.Service, schedule string, log *logger.Logger) *ComplianceScanner {
	return &ComplianceScanner{
		compliance: compliance,
		alerts:     alerts,
		schedule:   schedule,
		logger:     log,
	}
}

// Start runs an initial scan, then follows the cron schedule until the
// context is cancelled
func (s *ComplianceScanner) Start(ctx context.Context) error {
	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Starting compliance scanner worker")

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.runOnce(ctx) }); err != nil {
		return err
	}

	// Initial scan on startup
	s.runOnce(ctx)

	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	s.logger.Info("Compliance scanner worker stopped")
	return nil
}

func (s *ComplianceScanner) runOnce(ctx context.Context) {
	summary, err := s.compliance.RunComplianceChecks(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Compliance run failed")
		return
	}

	s.logger.WithFields(map[string]interface{}{
		"records_evaluated": summary.RecordsEvaluated,
		"records_skipped":   summary.RecordsSkipped,
		"alerts_created":    summary.AlertsCreated,
	}).Info("Scheduled compliance run completed")

	s.refreshOpenAlertGauges(ctx)
}

func (s *ComplianceScanner) refreshOpenAlertGauges(ctx context.Context) {
	counts, err := s.alerts.Summary(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to refresh open alert gauges")
		return
	}
	for _, severity := range []string{alert.SeverityHigh, alert.SeverityMedium, alert.SeverityLow} {
		metrics.SetOpenAlerts(severity, float64(counts[severity]))
	}
}
