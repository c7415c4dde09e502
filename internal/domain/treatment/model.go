package treatment

import "time"

// Treatment is one antimicrobial administration record (drug usage).
// EndDate, WithdrawalEndDate and ComplianceStatus are derived fields owned by
// the engine; callers own everything else.
type Treatment struct {
	ID                  string  `json:"id"`
	AnimalID            string  `json:"animal_id"`
	DrugID              string  `json:"drug_id"`
	VeterinarianID      *string `json:"veterinarian_id,omitempty"`
	Dosage              float64 `json:"dosage"`
	DosageUnit          string  `json:"dosage_unit"`
	Frequency           string  `json:"frequency"`
	AdministrationRoute string  `json:"administration_route,omitempty"`
	StartDate           time.Time `json:"start_date"`
	DurationDays        int       `json:"duration_days"`
	// EndDate = StartDate + DurationDays.
	EndDate time.Time `json:"end_date"`
	// WithdrawalEndDate = EndDate + the drug's withdrawal period for the
	// product context in effect. Never before EndDate.
	WithdrawalEndDate time.Time `json:"withdrawal_end_date"`
	TreatmentReason   string    `json:"treatment_reason"`
	ComplianceStatus  string    `json:"compliance_status"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Administration frequency
const (
	FrequencyOnceDaily      = "once_daily"
	FrequencyTwiceDaily     = "twice_daily"
	FrequencyThreeTimesDaily = "three_times_daily"
	FrequencyAsNeeded       = "as_needed"
	FrequencySingleDose     = "single_dose"
)

// Compliance status
const (
	StatusCompliant = "compliant"
	StatusWarning   = "warning"
	StatusViolation = "violation"
)

// Filter contains treatment filtering options
type Filter struct {
	AnimalID string
	FarmID   string
	DrugID   string
	From     time.Time
	To       time.Time
}
