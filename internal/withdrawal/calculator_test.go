package withdrawal

import (
	"testing"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		start        time.Time
		duration     int
		period       int
		wantEnd      time.Time
		wantWithdraw time.Time
		wantErr      bool
	}{
		{
			name:         "three day course with five day withdrawal",
			start:        date(2024, 1, 1),
			duration:     3,
			period:       5,
			wantEnd:      date(2024, 1, 4),
			wantWithdraw: date(2024, 1, 9),
		},
		{
			name:         "zero withdrawal period",
			start:        date(2024, 6, 15),
			duration:     7,
			period:       0,
			wantEnd:      date(2024, 6, 22),
			wantWithdraw: date(2024, 6, 22),
		},
		{
			name:         "crosses month boundary",
			start:        date(2024, 1, 30),
			duration:     5,
			period:       10,
			wantEnd:      date(2024, 2, 4),
			wantWithdraw: date(2024, 2, 14),
		},
		{
			name:         "crosses leap day",
			start:        date(2024, 2, 27),
			duration:     2,
			period:       1,
			wantEnd:      date(2024, 2, 29),
			wantWithdraw: date(2024, 3, 1),
		},
		{
			name:     "zero duration rejected",
			start:    date(2024, 1, 1),
			duration: 0,
			period:   5,
			wantErr:  true,
		},
		{
			name:     "negative duration rejected",
			start:    date(2024, 1, 1),
			duration: -1,
			period:   5,
			wantErr:  true,
		},
		{
			name:     "negative withdrawal period rejected",
			start:    date(2024, 1, 1),
			duration: 3,
			period:   -1,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.start, tt.duration, tt.period)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Calculate() expected error, got nil")
				}
				if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
					t.Errorf("Calculate() error code = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			if !got.EndDate.Equal(tt.wantEnd) {
				t.Errorf("EndDate = %v, want %v", got.EndDate, tt.wantEnd)
			}
			if !got.WithdrawalEndDate.Equal(tt.wantWithdraw) {
				t.Errorf("WithdrawalEndDate = %v, want %v", got.WithdrawalEndDate, tt.wantWithdraw)
			}
		})
	}
}

func TestCalculateNormalizesTimeOfDay(t *testing.T) {
	// Start timestamps with a time-of-day component must not shift the
	// derived dates.
	noon := time.Date(2024, 3, 10, 12, 30, 45, 0, time.UTC)

	got, err := Calculate(noon, 3, 5)
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	if !got.EndDate.Equal(date(2024, 3, 13)) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, date(2024, 3, 13))
	}
	if h, m, s := got.WithdrawalEndDate.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("WithdrawalEndDate has time-of-day component: %v", got.WithdrawalEndDate)
	}
}

func TestCalculateWithdrawalNeverBeforeEnd(t *testing.T) {
	got, err := Calculate(date(2024, 1, 1), 1, 0)
	if err != nil {
		t.Fatalf("Calculate() unexpected error: %v", err)
	}
	if got.WithdrawalEndDate.Before(got.EndDate) {
		t.Errorf("WithdrawalEndDate %v before EndDate %v", got.WithdrawalEndDate, got.EndDate)
	}
}

func TestPeriodFor(t *testing.T) {
	meat := 28
	milk := 4

	tests := []struct {
		name    string
		drug    *drug.Drug
		product Product
		want    int
	}{
		{
			name:    "meat period",
			drug:    &drug.Drug{WithdrawalPeriodMeat: &meat, WithdrawalPeriodMilk: &milk},
			product: ProductMeat,
			want:    28,
		},
		{
			name:    "milk period",
			drug:    &drug.Drug{WithdrawalPeriodMeat: &meat, WithdrawalPeriodMilk: &milk},
			product: ProductMilk,
			want:    4,
		},
		{
			name:    "unknown product defaults to meat",
			drug:    &drug.Drug{WithdrawalPeriodMeat: &meat},
			product: Product("eggs"),
			want:    28,
		},
		{
			name:    "no registered period yields zero",
			drug:    &drug.Drug{},
			product: ProductMeat,
			want:    0,
		},
		{
			name:    "milk requested but only meat registered",
			drug:    &drug.Drug{WithdrawalPeriodMeat: &meat},
			product: ProductMilk,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeriodFor(tt.drug, tt.product); got != tt.want {
				t.Errorf("PeriodFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(date(2024, 1, 4), date(2024, 1, 9)); got != 5 {
		t.Errorf("DaysBetween() = %d, want 5", got)
	}
	if got := DaysBetween(date(2024, 1, 9), date(2024, 1, 4)); got != -5 {
		t.Errorf("DaysBetween() = %d, want -5", got)
	}
	// Time-of-day components are ignored.
	a := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween() = %d, want 1", got)
	}
}
