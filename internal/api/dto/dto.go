package dto

import "time"

// CreateDrugRequest is the payload for registering drug reference data
type CreateDrugRequest struct {
	Name                 string   `json:"name" validate:"required"`
	ActiveIngredient     string   `json:"active_ingredient" validate:"required"`
	DrugType             string   `json:"drug_type,omitempty"`
	MRLLimit             *float64 `json:"mrl_limit,omitempty" validate:"omitempty,gte=0"`
	WithdrawalPeriodMeat *int     `json:"withdrawal_period_meat,omitempty" validate:"omitempty,gte=0"`
	WithdrawalPeriodMilk *int     `json:"withdrawal_period_milk,omitempty" validate:"omitempty,gte=0"`
	MaxDosage            *float64 `json:"max_dosage,omitempty" validate:"omitempty,gt=0"`
	Unit                 string   `json:"unit,omitempty"`
}

// CreateAnimalRequest is the payload for registering an animal
type CreateAnimalRequest struct {
	FarmID    string   `json:"farm_id" validate:"required"`
	TagNumber string   `json:"tag_number" validate:"required"`
	Species   string   `json:"species" validate:"required"`
	Breed     string   `json:"breed,omitempty"`
	Weight    *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	BirthDate string   `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status    string   `json:"status,omitempty" validate:"omitempty,oneof=active sick treatment sold deceased"`
}

// RecordTreatmentRequest is the payload for recording a treatment
type RecordTreatmentRequest struct {
	AnimalID            string  `json:"animal_id" validate:"required"`
	DrugID              string  `json:"drug_id" validate:"required"`
	VeterinarianID      *string `json:"veterinarian_id,omitempty"`
	Dosage              float64 `json:"dosage" validate:"required,gt=0"`
	DosageUnit          string  `json:"dosage_unit" validate:"required"`
	Frequency           string  `json:"frequency" validate:"required,oneof=once_daily twice_daily three_times_daily as_needed single_dose"`
	AdministrationRoute string  `json:"administration_route,omitempty"`
	StartDate           string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	DurationDays        int     `json:"duration_days" validate:"required,gte=1"`
	TreatmentReason     string  `json:"treatment_reason" validate:"required"`
	Notes               string  `json:"notes,omitempty"`
}

// TreatmentDTO is the wire representation of a treatment record
type TreatmentDTO struct {
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

// AlertDTO is the wire representation of a compliance alert
type AlertDTO struct {
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

// ResolveAlertRequest is the payload for resolving an alert
type ResolveAlertRequest struct {
	ResolvedBy string `json:"resolved_by" validate:"required"`
}
