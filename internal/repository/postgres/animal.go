package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/animal"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
)

type AnimalRepository struct {
	db *sql.DB
}

func NewAnimalRepository(db *sql.DB) animal.Repository {
	return &AnimalRepository{db: db}
}

func (r *AnimalRepository) Create(ctx context.Context, a *animal.Animal) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = animal.StatusActive
	}

	query := `
		INSERT INTO animals (id, farm_id, tag_number, species, breed, weight,
			birth_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var birthDate sql.NullString
	if a.BirthDate != nil {
		birthDate = sql.NullString{String: formatDate(*a.BirthDate), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.FarmID, a.TagNumber, a.Species, a.Breed, nullFloat(a.Weight),
		birthDate, a.Status, formatTime(now), formatTime(now),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create animal", err)
	}

	return nil
}

func (r *AnimalRepository) GetByID(ctx context.Context, id string) (*animal.Animal, error) {
	query := animalSelect + ` WHERE id = ?`

	a, err := scanAnimal(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Animal")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get animal", err)
	}
	return a, nil
}

func (r *AnimalRepository) ListByFarm(ctx context.Context, farmID string) ([]*animal.Animal, error) {
	return r.list(ctx, animalSelect+` WHERE farm_id = ? ORDER BY tag_number`, farmID)
}

func (r *AnimalRepository) List(ctx context.Context) ([]*animal.Animal, error) {
	return r.list(ctx, animalSelect+` ORDER BY tag_number`)
}

const animalSelect = `
	SELECT id, farm_id, tag_number, species, breed, weight, birth_date,
		status, created_at, updated_at
	FROM animals`

func (r *AnimalRepository) list(ctx context.Context, query string, args ...interface{}) ([]*animal.Animal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list animals", err)
	}
	defer rows.Close()

	animals := make([]*animal.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan animal", err)
		}
		animals = append(animals, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate animals", err)
	}

	return animals, nil
}

func scanAnimal(row rowScanner) (*animal.Animal, error) {
	var a animal.Animal
	var breed, birthDate sql.NullString
	var weight sql.NullFloat64
	var createdAt, updatedAt string

	err := row.Scan(&a.ID, &a.FarmID, &a.TagNumber, &a.Species, &breed,
		&weight, &birthDate, &a.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	a.Breed = breed.String
	a.Weight = floatPtr(weight)
	if birthDate.Valid {
		bd := parseDate(birthDate.String)
		a.BirthDate = &bd
	}
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)

	return &a, nil
}
