package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
)

type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) alert.Repository {
	return &AlertRepository{db: db}
}

const alertSelect = `
	SELECT id, farm_id, animal_id, drug_usage_id, alert_type, severity,
		message, is_resolved, resolved_at, resolved_by, created_at
	FROM compliance_alerts`

func (r *AlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	a.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO compliance_alerts (id, farm_id, animal_id, drug_usage_id,
			alert_type, severity, message, is_resolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.FarmID, nullString(a.AnimalID), nullString(a.TreatmentID),
		a.Type, a.Severity, a.Message, formatTime(a.CreatedAt),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create alert", err)
	}

	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	a, err := scanAlert(r.db.QueryRowContext(ctx, alertSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Alert")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get alert", err)
	}
	return a, nil
}

func (r *AlertRepository) GetOpenByKey(ctx context.Context, alertType string, animalID, treatmentID *string) (*alert.Alert, error) {
	where := []string{"alert_type = ?", "is_resolved = 0"}
	args := []interface{}{alertType}

	if animalID != nil {
		where = append(where, "animal_id = ?")
		args = append(args, *animalID)
	} else {
		where = append(where, "animal_id IS NULL")
	}
	if treatmentID != nil {
		where = append(where, "drug_usage_id = ?")
		args = append(args, *treatmentID)
	} else {
		where = append(where, "drug_usage_id IS NULL")
	}

	query := fmt.Sprintf("%s WHERE %s", alertSelect, strings.Join(where, " AND "))

	a, err := scanAlert(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get open alert", err)
	}
	return a, nil
}

func (r *AlertRepository) List(ctx context.Context, filter alert.Filter) ([]*alert.Alert, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.FarmID != "" {
		where = append(where, "farm_id = ?")
		args = append(args, filter.FarmID)
	}
	if filter.AnimalID != "" {
		where = append(where, "animal_id = ?")
		args = append(args, filter.AnimalID)
	}
	if filter.Type != "" {
		where = append(where, "alert_type = ?")
		args = append(args, filter.Type)
	}
	if filter.Severity != "" {
		where = append(where, "severity = ?")
		args = append(args, filter.Severity)
	}
	if filter.Resolved != nil {
		if *filter.Resolved {
			where = append(where, "is_resolved = 1")
		} else {
			where = append(where, "is_resolved = 0")
		}
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC", alertSelect, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list alerts", err)
	}
	defer rows.Close()

	alerts := make([]*alert.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan alert", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate alerts", err)
	}

	return alerts, nil
}

func (r *AlertRepository) MarkResolved(ctx context.Context, id, resolvedBy string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE compliance_alerts SET is_resolved = 1, resolved_at = ?, resolved_by = ?
		 WHERE id = ? AND is_resolved = 0`,
		formatTime(at), resolvedBy, id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to resolve alert", err)
	}
	return checkFound(result, "Alert")
}

func (r *AlertRepository) CountOpenBySeverity(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT severity, COUNT(*) FROM compliance_alerts WHERE is_resolved = 0 GROUP BY severity`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count alerts", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan alert count", err)
		}
		counts[severity] = count
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate alert counts", err)
	}

	return counts, nil
}

func scanAlert(row rowScanner) (*alert.Alert, error) {
	var a alert.Alert
	var animalID, treatmentID, resolvedAt, resolvedBy sql.NullString
	var isResolved int
	var createdAt string

	err := row.Scan(&a.ID, &a.FarmID, &animalID, &treatmentID, &a.Type,
		&a.Severity, &a.Message, &isResolved, &resolvedAt, &resolvedBy, &createdAt)
	if err != nil {
		return nil, err
	}

	a.AnimalID = stringPtr(animalID)
	a.TreatmentID = stringPtr(treatmentID)
	a.IsResolved = isResolved == 1
	if resolvedAt.Valid {
		t := parseTime(resolvedAt.String)
		a.ResolvedAt = &t
	}
	a.ResolvedBy = stringPtr(resolvedBy)
	a.CreatedAt = parseTime(createdAt)

	return &a, nil
}
