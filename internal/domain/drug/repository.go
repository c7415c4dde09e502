package drug

import "context"

// Repository defines the interface for drug data access
type Repository interface {
	// Create creates a new drug
	Create(ctx context.Context, d *Drug) error

	// GetByID retrieves a drug by ID
	GetByID(ctx context.Context, id string) (*Drug, error)

	// List retrieves all drugs
	List(ctx context.Context) ([]*Drug, error)
}
