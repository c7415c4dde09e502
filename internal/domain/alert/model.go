package alert

import "time"

// Alert is a compliance alert materialized from an evaluator or detector
// finding. Created only by the engine, never by user input. Lifecycle is
// one-way: open -> resolved. A resolved alert is never reopened; a recurring
// condition produces a new alert.
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

// Alert types
const (
	TypeMRLViolation        = "mrl_violation"
	TypeWithdrawalViolation = "withdrawal_violation"
	TypeDosageExceeded      = "dosage_exceeded"
	TypeOverusePattern      = "overuse_pattern"
)

// Alert severity levels
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Finding is an evaluator or detector result to be materialized as an alert.
// FarmID is filled in by the orchestrator before recording.
type Finding struct {
	Type        string
	Severity    string
	Message     string
	FarmID      string
	AnimalID    *string
	TreatmentID *string
}

// Filter contains alert filtering options
type Filter struct {
	FarmID   string
	AnimalID string
	Type     string
	Severity string
	// Resolved filters on the resolved flag when non-nil
	Resolved *bool
}
