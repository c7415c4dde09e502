package animal

import "time"

// Animal represents a single head of livestock belonging to a farm
type Animal struct {
	ID        string     `json:"id"`
	FarmID    string     `json:"farm_id"`
	TagNumber string     `json:"tag_number"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	// Status transitions are owned by the calling application; the engine
	// only reads it.
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Animal status
const (
	StatusActive    = "active"
	StatusSick      = "sick"
	StatusTreatment = "treatment"
	StatusSold      = "sold"
	StatusDeceased  = "deceased"
)
