package drug

import "time"

// Drug is immutable antimicrobial reference data. Created by administrative
// entry; read-only to the compliance engine.
type Drug struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ActiveIngredient string    `json:"active_ingredient"`
	DrugType         string    `json:"drug_type,omitempty"`
	// MRLLimit is the maximum residue limit permitted in animal products.
	MRLLimit *float64 `json:"mrl_limit,omitempty"`
	// Withdrawal periods in days per product type; nil means none registered.
	WithdrawalPeriodMeat *int `json:"withdrawal_period_meat,omitempty"`
	WithdrawalPeriodMilk *int `json:"withdrawal_period_milk,omitempty"`
	// MaxDosage is the per-drug dosage ceiling; nil disables the dosage rules.
	MaxDosage *float64  `json:"max_dosage,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Drug types
const (
	TypeAntibiotic    = "antibiotic"
	TypeAntiparasitic = "antiparasitic"
	TypeAntifungal    = "antifungal"
	TypeHormone       = "hormone"
	TypeVaccine       = "vaccine"
)
