package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
)

type DrugRepository struct {
	db *sql.DB
}

func NewDrugRepository(db *sql.DB) drug.Repository {
	return &DrugRepository{db: db}
}

func (r *DrugRepository) Create(ctx context.Context, d *drug.Drug) error {
	d.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO drugs (id, name, active_ingredient, drug_type, mrl_limit,
			withdrawal_period_meat, withdrawal_period_milk, max_dosage, unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.ActiveIngredient, d.DrugType, nullFloat(d.MRLLimit),
		nullInt(d.WithdrawalPeriodMeat), nullInt(d.WithdrawalPeriodMilk),
		nullFloat(d.MaxDosage), d.Unit, formatTime(d.CreatedAt),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create drug", err)
	}

	return nil
}

func (r *DrugRepository) GetByID(ctx context.Context, id string) (*drug.Drug, error) {
	query := `
		SELECT id, name, active_ingredient, drug_type, mrl_limit,
			withdrawal_period_meat, withdrawal_period_milk, max_dosage, unit, created_at
		FROM drugs WHERE id = ?
	`

	d, err := scanDrug(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Drug")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get drug", err)
	}
	return d, nil
}

func (r *DrugRepository) List(ctx context.Context) ([]*drug.Drug, error) {
	query := `
		SELECT id, name, active_ingredient, drug_type, mrl_limit,
			withdrawal_period_meat, withdrawal_period_milk, max_dosage, unit, created_at
		FROM drugs ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list drugs", err)
	}
	defer rows.Close()

	drugs := make([]*drug.Drug, 0)
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan drug", err)
		}
		drugs = append(drugs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate drugs", err)
	}

	return drugs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDrug(row rowScanner) (*drug.Drug, error) {
	var d drug.Drug
	var drugType, unit sql.NullString
	var mrl, maxDosage sql.NullFloat64
	var meat, milk sql.NullInt64
	var createdAt string

	err := row.Scan(&d.ID, &d.Name, &d.ActiveIngredient, &drugType, &mrl,
		&meat, &milk, &maxDosage, &unit, &createdAt)
	if err != nil {
		return nil, err
	}

	d.DrugType = drugType.String
	d.Unit = unit.String
	d.MRLLimit = floatPtr(mrl)
	d.MaxDosage = floatPtr(maxDosage)
	d.WithdrawalPeriodMeat = intPtr(meat)
	d.WithdrawalPeriodMilk = intPtr(milk)
	d.CreatedAt = parseTime(createdAt)

	return &d, nil
}
