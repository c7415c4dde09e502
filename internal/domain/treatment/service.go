package treatment

import "context"

// Service defines the interface for treatment business logic
type Service interface {
	// Record creates a treatment record, deriving its end and withdrawal
	// dates from the referenced drug
	Record(ctx context.Context, t *Treatment) (string, error)

	// GetByID retrieves a treatment by ID
	GetByID(ctx context.Context, id string) (*Treatment, error)

	// Update updates a treatment's input fields and recomputes derived dates
	// when the start date, duration or drug reference changed
	Update(ctx context.Context, t *Treatment) error

	// List retrieves treatments matching the filter
	List(ctx context.Context, filter Filter) ([]*Treatment, error)
}
