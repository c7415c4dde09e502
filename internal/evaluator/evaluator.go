// Package evaluator classifies a single treatment's regulatory compliance
// against its drug's dosage ceiling and registered withdrawal period.
package evaluator

import (
	"fmt"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/withdrawal"
)

// Config contains evaluator thresholds
type Config struct {
	// DosageWarningMargin is the fraction of the ceiling at which a dosage
	// becomes a warning (0.10 = within 10% of the ceiling).
	DosageWarningMargin float64
	// WithdrawalWarningDays is the near-term window before the withdrawal
	// end date that produces a warning.
	WithdrawalWarningDays int
	// Product selects which registered withdrawal period applies.
	Product withdrawal.Product
}

// Result is the outcome of evaluating one treatment
type Result struct {
	Status   string
	Findings []alert.Finding
}

// Evaluator applies the compliance rules in order; first match wins
type Evaluator struct {
	cfg Config
}

// New creates a new evaluator
func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate classifies a treatment as compliant, warning or violation.
// Pure and idempotent: the same inputs always yield the same result.
// Persisting the status and materializing findings is the caller's job.
func (e *Evaluator) Evaluate(t *treatment.Treatment, d *drug.Drug, asOf time.Time) Result {
	today := withdrawal.CivilDate(asOf)

	// Violations first.
	if d.MaxDosage != nil && t.Dosage > *d.MaxDosage {
		return Result{
			Status: treatment.StatusViolation,
			Findings: []alert.Finding{{
				Type:     alert.TypeDosageExceeded,
				Severity: alert.SeverityHigh,
				Message: fmt.Sprintf("Dosage %.2f %s exceeds the maximum of %.2f %s for %s",
					t.Dosage, t.DosageUnit, *d.MaxDosage, d.Unit, d.Name),
				AnimalID:    strPtr(t.AnimalID),
				TreatmentID: strPtr(t.ID),
			}},
		}
	}

	registered := withdrawal.PeriodFor(d, e.cfg.Product)
	actual := withdrawal.DaysBetween(t.EndDate, t.WithdrawalEndDate)
	if actual < registered {
		return Result{
			Status: treatment.StatusViolation,
			Findings: []alert.Finding{{
				Type:     alert.TypeWithdrawalViolation,
				Severity: alert.SeverityHigh,
				Message: fmt.Sprintf("Withdrawal period of %d days is shorter than the registered minimum of %d days for %s",
					actual, registered, d.Name),
				AnimalID:    strPtr(t.AnimalID),
				TreatmentID: strPtr(t.ID),
			}},
		}
	}

	// Warnings: near the dosage ceiling, or withdrawal ending soon.
	if d.MaxDosage != nil && t.Dosage >= *d.MaxDosage*(1-e.cfg.DosageWarningMargin) {
		return Result{Status: treatment.StatusWarning}
	}

	wEnd := withdrawal.CivilDate(t.WithdrawalEndDate)
	if !wEnd.Before(today) && withdrawal.DaysBetween(today, wEnd) <= e.cfg.WithdrawalWarningDays {
		return Result{Status: treatment.StatusWarning}
	}

	return Result{Status: treatment.StatusCompliant}
}

func strPtr(s string) *string {
	return &s
}
