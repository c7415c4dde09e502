package treatment

import (
	"context"
	"time"
)

// Repository defines the interface for treatment data access
type Repository interface {
	// Create creates a new treatment record
	Create(ctx context.Context, t *Treatment) error

	// GetByID retrieves a treatment by ID
	GetByID(ctx context.Context, id string) (*Treatment, error)

	// Update updates a treatment record
	Update(ctx context.Context, t *Treatment) error

	// List retrieves treatments matching the filter
	List(ctx context.Context, filter Filter) ([]*Treatment, error)

	// ListEndedSince retrieves treatments still active or concluded on or
	// after the given date. This is the batch-run working set.
	ListEndedSince(ctx context.Context, since time.Time) ([]*Treatment, error)

	// UpdateDerivedDates persists recomputed end and withdrawal-end dates
	UpdateDerivedDates(ctx context.Context, id string, endDate, withdrawalEndDate time.Time) error

	// UpdateComplianceStatus persists the evaluator's classification
	UpdateComplianceStatus(ctx context.Context, id string, status string) error
}
