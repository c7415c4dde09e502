// Package withdrawal computes treatment end dates and withdrawal-safe dates.
// All arithmetic is calendar-day granular: inputs are normalized to civil
// dates (UTC midnight) and no time-of-day component survives.
package withdrawal

import (
	"time"

	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
)

// Product selects which registered withdrawal period applies
type Product string

const (
	ProductMeat Product = "meat"
	ProductMilk Product = "milk"
)

// Dates holds the derived dates of a treatment
type Dates struct {
	EndDate           time.Time
	WithdrawalEndDate time.Time
}

// Calculate derives the treatment end date and withdrawal-safe date.
//
//	end_date            = start_date + duration_days
//	withdrawal_end_date = end_date + withdrawal_period_days
//
// Pure and deterministic. Returns INVALID_INPUT for durationDays < 1 or
// withdrawalPeriodDays < 0.
func Calculate(startDate time.Time, durationDays, withdrawalPeriodDays int) (Dates, error) {
	if durationDays < 1 {
		return Dates{}, errors.InvalidInput("duration_days must be at least 1")
	}
	if withdrawalPeriodDays < 0 {
		return Dates{}, errors.InvalidInput("withdrawal_period_days must not be negative")
	}

	start := CivilDate(startDate)
	end := start.AddDate(0, 0, durationDays)

	return Dates{
		EndDate:           end,
		WithdrawalEndDate: end.AddDate(0, 0, withdrawalPeriodDays),
	}, nil
}

// PeriodFor returns the drug's registered withdrawal period in days for the
// given product, defaulting to meat. A drug with no registered period for the
// product yields 0.
func PeriodFor(d *drug.Drug, product Product) int {
	switch product {
	case ProductMilk:
		if d.WithdrawalPeriodMilk != nil {
			return *d.WithdrawalPeriodMilk
		}
	default:
		if d.WithdrawalPeriodMeat != nil {
			return *d.WithdrawalPeriodMeat
		}
	}
	return 0
}

// CivilDate truncates a timestamp to its civil date at UTC midnight
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)) / (24 * time.Hour))
}
