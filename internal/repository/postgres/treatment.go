package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
)

type TreatmentRepository struct {
	db *sql.DB
}

func NewTreatmentRepository(db *sql.DB) treatment.Repository {
	return &TreatmentRepository{db: db}
}

const treatmentSelect = `
	SELECT id, animal_id, drug_id, veterinarian_id, dosage, dosage_unit,
		frequency, administration_route, start_date, duration_days, end_date,
		withdrawal_end_date, treatment_reason, compliance_status, notes,
		created_at, updated_at
	FROM drug_usage`

func (r *TreatmentRepository) Create(ctx context.Context, t *treatment.Treatment) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO drug_usage (id, animal_id, drug_id, veterinarian_id, dosage,
			dosage_unit, frequency, administration_route, start_date, duration_days,
			end_date, withdrawal_end_date, treatment_reason, compliance_status,
			notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.AnimalID, t.DrugID, nullString(t.VeterinarianID), t.Dosage,
		t.DosageUnit, t.Frequency, t.AdministrationRoute, formatDate(t.StartDate),
		t.DurationDays, formatDate(t.EndDate), formatDate(t.WithdrawalEndDate),
		t.TreatmentReason, t.ComplianceStatus, t.Notes,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create treatment", err)
	}

	return nil
}

func (r *TreatmentRepository) GetByID(ctx context.Context, id string) (*treatment.Treatment, error) {
	t, err := scanTreatment(r.db.QueryRowContext(ctx, treatmentSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Treatment")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get treatment", err)
	}
	return t, nil
}

func (r *TreatmentRepository) Update(ctx context.Context, t *treatment.Treatment) error {
	t.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE drug_usage SET animal_id = ?, drug_id = ?, veterinarian_id = ?,
			dosage = ?, dosage_unit = ?, frequency = ?, administration_route = ?,
			start_date = ?, duration_days = ?, end_date = ?, withdrawal_end_date = ?,
			treatment_reason = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.AnimalID, t.DrugID, nullString(t.VeterinarianID), t.Dosage,
		t.DosageUnit, t.Frequency, t.AdministrationRoute, formatDate(t.StartDate),
		t.DurationDays, formatDate(t.EndDate), formatDate(t.WithdrawalEndDate),
		t.TreatmentReason, t.Notes, formatTime(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update treatment", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Treatment")
	}

	return nil
}

func (r *TreatmentRepository) List(ctx context.Context, filter treatment.Filter) ([]*treatment.Treatment, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if filter.AnimalID != "" {
		where = append(where, "animal_id = ?")
		args = append(args, filter.AnimalID)
	}
	if filter.DrugID != "" {
		where = append(where, "drug_id = ?")
		args = append(args, filter.DrugID)
	}
	if filter.FarmID != "" {
		where = append(where, "animal_id IN (SELECT id FROM animals WHERE farm_id = ?)")
		args = append(args, filter.FarmID)
	}
	if !filter.From.IsZero() {
		where = append(where, "start_date >= ?")
		args = append(args, formatDate(filter.From))
	}
	if !filter.To.IsZero() {
		where = append(where, "start_date <= ?")
		args = append(args, formatDate(filter.To))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY start_date DESC", treatmentSelect, strings.Join(where, " AND "))
	return r.list(ctx, query, args...)
}

func (r *TreatmentRepository) ListEndedSince(ctx context.Context, since time.Time) ([]*treatment.Treatment, error) {
	query := treatmentSelect + ` WHERE end_date >= ? ORDER BY start_date`
	return r.list(ctx, query, formatDate(since))
}

func (r *TreatmentRepository) UpdateDerivedDates(ctx context.Context, id string, endDate, withdrawalEndDate time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE drug_usage SET end_date = ?, withdrawal_end_date = ?, updated_at = ? WHERE id = ?`,
		formatDate(endDate), formatDate(withdrawalEndDate), formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update derived dates", err)
	}
	return checkFound(result, "Treatment")
}

func (r *TreatmentRepository) UpdateComplianceStatus(ctx context.Context, id string, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE drug_usage SET compliance_status = ?, updated_at = ? WHERE id = ?`,
		status, formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update compliance status", err)
	}
	return checkFound(result, "Treatment")
}

func (r *TreatmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*treatment.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list treatments", err)
	}
	defer rows.Close()

	treatments := make([]*treatment.Treatment, 0)
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan treatment", err)
		}
		treatments = append(treatments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate treatments", err)
	}

	return treatments, nil
}

func scanTreatment(row rowScanner) (*treatment.Treatment, error) {
	var t treatment.Treatment
	var vetID, route, notes sql.NullString
	var startDate, endDate, withdrawalEndDate, createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.AnimalID, &t.DrugID, &vetID, &t.Dosage,
		&t.DosageUnit, &t.Frequency, &route, &startDate, &t.DurationDays,
		&endDate, &withdrawalEndDate, &t.TreatmentReason, &t.ComplianceStatus,
		&notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.VeterinarianID = stringPtr(vetID)
	t.AdministrationRoute = route.String
	t.Notes = notes.String
	t.StartDate = parseDate(startDate)
	t.EndDate = parseDate(endDate)
	t.WithdrawalEndDate = parseDate(withdrawalEndDate)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)

	return &t, nil
}

func checkFound(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound(resource)
	}
	return nil
}
