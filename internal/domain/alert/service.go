package alert

import "context"

// Service defines the interface for the alert manager
type Service interface {
	// RecordFinding materializes a finding as an open alert. It is a no-op
	// returning false when an unresolved alert already exists for the same
	// (alert_type, animal, treatment) key.
	RecordFinding(ctx context.Context, f Finding) (bool, error)

	// Resolve transitions an alert from open to resolved, recording the
	// timestamp and resolver. Resolution is never inferred automatically;
	// it requires explicit action.
	Resolve(ctx context.Context, id, resolvedBy string) error

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id string) (*Alert, error)

	// List retrieves alerts matching the filter
	List(ctx context.Context, filter Filter) ([]*Alert, error)

	// Summary counts unresolved alerts by severity
	Summary(ctx context.Context) (map[string]int, error)
}
