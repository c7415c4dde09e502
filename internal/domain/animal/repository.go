package animal

import "context"

// Repository defines the interface for animal data access
type Repository interface {
	// Create creates a new animal
	Create(ctx context.Context, a *Animal) error

	// GetByID retrieves an animal by ID
	GetByID(ctx context.Context, id string) (*Animal, error)

	// ListByFarm retrieves all animals belonging to a farm
	ListByFarm(ctx context.Context, farmID string) ([]*Animal, error)

	// List retrieves all animals
	List(ctx context.Context) ([]*Animal, error)
}
