package client

import "time"

// Drug is antimicrobial reference data
type Drug struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	ActiveIngredient     string    `json:"active_ingredient"`
	DrugType             string    `json:"drug_type,omitempty"`
	MRLLimit             *float64  `json:"mrl_limit,omitempty"`
	WithdrawalPeriodMeat *int      `json:"withdrawal_period_meat,omitempty"`
	WithdrawalPeriodMilk *int      `json:"withdrawal_period_milk,omitempty"`
	MaxDosage            *float64  `json:"max_dosage,omitempty"`
	Unit                 string    `json:"unit,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// Animal is a single head of livestock
type Animal struct {
	ID        string     `json:"id"`
	FarmID    string     `json:"farm_id"`
	TagNumber string     `json:"tag_number"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// Treatment is an antimicrobial administration record. EndDate,
// WithdrawalEndDate and ComplianceStatus are derived server-side.
type Treatment struct {
	ID                  string    `json:"id"`
	AnimalID            string    `json:"animal_id"`
	DrugID              string    `json:"drug_id"`
	VeterinarianID      *string   `json:"veterinarian_id,omitempty"`
	Dosage              float64   `json:"dosage"`
	DosageUnit          string    `json:"dosage_unit"`
	Frequency           string    `json:"frequency"`
	AdministrationRoute string    `json:"administration_route,omitempty"`
	StartDate           string    `json:"start_date"`
	DurationDays        int       `json:"duration_days"`
	EndDate             string    `json:"end_date"`
	WithdrawalEndDate   string    `json:"withdrawal_end_date"`
	TreatmentReason     string    `json:"treatment_reason"`
	ComplianceStatus    string    `json:"compliance_status"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// Alert is a compliance alert
type Alert struct {
	ID          string     `json:"id"`
	FarmID      string     `json:"farm_id"`
	AnimalID    *string    `json:"animal_id,omitempty"`
	TreatmentID *string    `json:"treatment_id,omitempty"`
	Type        string     `json:"alert_type"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	IsResolved  bool       `json:"is_resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy  *string    `json:"resolved_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RunSummary reports the outcome of a compliance sweep
type RunSummary struct {
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	RecordsEvaluated int       `json:"records_evaluated"`
	RecordsSkipped   int       `json:"records_skipped"`
	StatusesChanged  int       `json:"statuses_changed"`
	AlertsCreated    int       `json:"alerts_created"`
	AnimalsScanned   int       `json:"animals_scanned"`
	ReviewEligible   int       `json:"review_eligible"`
}

// Overview is a point-in-time compliance snapshot
type Overview struct {
	AsOf                 time.Time      `json:"as_of"`
	OpenAlertsBySeverity map[string]int `json:"open_alerts_by_severity"`
	TreatmentsByStatus   map[string]int `json:"treatments_by_status"`
	ActiveWithdrawals    int            `json:"active_withdrawals"`
}

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// Page is a paginated result set
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
