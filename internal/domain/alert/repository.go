package alert

import (
	"context"
	"time"
)

// Repository defines the interface for alert data access
type Repository interface {
	// Create creates a new alert
	Create(ctx context.Context, a *Alert) error

	// GetByID retrieves an alert by ID
	GetByID(ctx context.Context, id string) (*Alert, error)

	// GetOpenByKey retrieves the unresolved alert for the
	// (alert_type, animal, treatment) deduplication key, or nil when none
	// exists
	GetOpenByKey(ctx context.Context, alertType string, animalID, treatmentID *string) (*Alert, error)

	// List retrieves alerts matching the filter, newest first
	List(ctx context.Context, filter Filter) ([]*Alert, error)

	// MarkResolved records the one-way open -> resolved transition
	MarkResolved(ctx context.Context, id, resolvedBy string, at time.Time) error

	// CountOpenBySeverity counts unresolved alerts grouped by severity
	CountOpenBySeverity(ctx context.Context) (map[string]int, error)
}
