// Package detector scans an animal's treatment history for overuse patterns:
// repeated or prolonged administration of the same active ingredient within a
// trailing risk window.
package detector

import (
	"fmt"
	"sort"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/withdrawal"
)

// Config contains detector thresholds
type Config struct {
	// WindowDays is the trailing window scanned for patterns.
	WindowDays int
	// MaxCount is the administration count above which an ingredient is
	// flagged.
	MaxCount int
	// MaxCumulativeDays caps the cumulative treatment duration of one
	// ingredient within the window.
	MaxCumulativeDays int
}

// Detector performs read-only aggregation over treatment history
type Detector struct {
	cfg Config
}

// New creates a new overuse detector
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

type ingredientUsage struct {
	count          int
	cumulativeDays int
}

// Detect flags overuse patterns for one animal. Treatments of different drug
// products are grouped by active ingredient. At most one finding is produced
// per ingredient; the cumulative-duration rule wins over the count rule since
// it reflects greater residue-accumulation risk.
func (d *Detector) Detect(animalID string, treatments []*treatment.Treatment, drugs map[string]*drug.Drug, asOf time.Time) []alert.Finding {
	windowStart := withdrawal.CivilDate(asOf).AddDate(0, 0, -d.cfg.WindowDays)

	usage := make(map[string]*ingredientUsage)
	for _, t := range treatments {
		if withdrawal.CivilDate(t.StartDate).Before(windowStart) {
			continue
		}
		dr, ok := drugs[t.DrugID]
		if !ok {
			continue
		}
		u := usage[dr.ActiveIngredient]
		if u == nil {
			u = &ingredientUsage{}
			usage[dr.ActiveIngredient] = u
		}
		u.count++
		u.cumulativeDays += t.DurationDays
	}

	ingredients := make([]string, 0, len(usage))
	for ingredient := range usage {
		ingredients = append(ingredients, ingredient)
	}
	sort.Strings(ingredients)

	var findings []alert.Finding
	for _, ingredient := range ingredients {
		u := usage[ingredient]
		switch {
		case u.cumulativeDays > d.cfg.MaxCumulativeDays:
			findings = append(findings, alert.Finding{
				Type:     alert.TypeMRLViolation,
				Severity: alert.SeverityHigh,
				Message: fmt.Sprintf("Cumulative treatment duration of %d days with %s exceeds the %d-day cap within %d days; residue accumulation risk",
					u.cumulativeDays, ingredient, d.cfg.MaxCumulativeDays, d.cfg.WindowDays),
				AnimalID: &animalID,
			})
		case u.count > d.cfg.MaxCount:
			findings = append(findings, alert.Finding{
				Type:     alert.TypeOverusePattern,
				Severity: alert.SeverityMedium,
				Message: fmt.Sprintf("%s administered %d times within %d days, above the threshold of %d",
					ingredient, u.count, d.cfg.WindowDays, d.cfg.MaxCount),
				AnimalID: &animalID,
			})
		}
	}

	return findings
}
