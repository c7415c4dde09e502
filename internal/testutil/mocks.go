package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/domain/animal"
	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
)

// MockDrugRepository is a mock implementation of drug.Repository
type MockDrugRepository struct {
	Drugs       map[string]*drug.Drug
	CreateError error
	GetError    error
}

func NewMockDrugRepository() *MockDrugRepository {
	return &MockDrugRepository{Drugs: make(map[string]*drug.Drug)}
}

func (m *MockDrugRepository) Create(ctx context.Context, d *drug.Drug) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Drugs[d.ID] = d
	return nil
}

func (m *MockDrugRepository) GetByID(ctx context.Context, id string) (*drug.Drug, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	d, ok := m.Drugs[id]
	if !ok {
		return nil, errors.NotFound("Drug")
	}
	return d, nil
}

func (m *MockDrugRepository) List(ctx context.Context) ([]*drug.Drug, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	out := make([]*drug.Drug, 0, len(m.Drugs))
	for _, d := range m.Drugs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockAnimalRepository is a mock implementation of animal.Repository
type MockAnimalRepository struct {
	Animals     map[string]*animal.Animal
	CreateError error
	GetError    error
}

func NewMockAnimalRepository() *MockAnimalRepository {
	return &MockAnimalRepository{Animals: make(map[string]*animal.Animal)}
}

func (m *MockAnimalRepository) Create(ctx context.Context, a *animal.Animal) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Animals[a.ID] = a
	return nil
}

func (m *MockAnimalRepository) GetByID(ctx context.Context, id string) (*animal.Animal, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.Animals[id]
	if !ok {
		return nil, errors.NotFound("Animal")
	}
	return a, nil
}

func (m *MockAnimalRepository) ListByFarm(ctx context.Context, farmID string) ([]*animal.Animal, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var out []*animal.Animal
	for _, a := range m.Animals {
		if a.FarmID == farmID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockAnimalRepository) List(ctx context.Context) ([]*animal.Animal, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	out := make([]*animal.Animal, 0, len(m.Animals))
	for _, a := range m.Animals {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MockTreatmentRepository is a mock implementation of treatment.Repository
type MockTreatmentRepository struct {
	Treatments  map[string]*treatment.Treatment
	CreateError error
	GetError    error
	UpdateError error
	ListError   error
}

func NewMockTreatmentRepository() *MockTreatmentRepository {
	return &MockTreatmentRepository{Treatments: make(map[string]*treatment.Treatment)}
}

func (m *MockTreatmentRepository) Create(ctx context.Context, t *treatment.Treatment) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	cp := *t
	m.Treatments[t.ID] = &cp
	return nil
}

func (m *MockTreatmentRepository) GetByID(ctx context.Context, id string) (*treatment.Treatment, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	t, ok := m.Treatments[id]
	if !ok {
		return nil, errors.NotFound("Treatment")
	}
	cp := *t
	return &cp, nil
}

func (m *MockTreatmentRepository) Update(ctx context.Context, t *treatment.Treatment) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Treatments[t.ID]; !ok {
		return errors.NotFound("Treatment")
	}
	cp := *t
	m.Treatments[t.ID] = &cp
	return nil
}

func (m *MockTreatmentRepository) List(ctx context.Context, filter treatment.Filter) ([]*treatment.Treatment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*treatment.Treatment
	for _, t := range m.Treatments {
		if filter.AnimalID != "" && t.AnimalID != filter.AnimalID {
			continue
		}
		if filter.DrugID != "" && t.DrugID != filter.DrugID {
			continue
		}
		if !filter.From.IsZero() && t.StartDate.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && t.StartDate.After(filter.To) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockTreatmentRepository) ListEndedSince(ctx context.Context, since time.Time) ([]*treatment.Treatment, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*treatment.Treatment
	for _, t := range m.Treatments {
		if t.EndDate.Before(since) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockTreatmentRepository) UpdateDerivedDates(ctx context.Context, id string, endDate, withdrawalEndDate time.Time) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	t, ok := m.Treatments[id]
	if !ok {
		return errors.NotFound("Treatment")
	}
	t.EndDate = endDate
	t.WithdrawalEndDate = withdrawalEndDate
	return nil
}

func (m *MockTreatmentRepository) UpdateComplianceStatus(ctx context.Context, id, status string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	t, ok := m.Treatments[id]
	if !ok {
		return errors.NotFound("Treatment")
	}
	t.ComplianceStatus = status
	return nil
}

// MockAlertRepository is a mock implementation of alert.Repository
type MockAlertRepository struct {
	mu          sync.Mutex
	Alerts      map[string]*alert.Alert
	CreateError error
	GetError    error
}

func NewMockAlertRepository() *MockAlertRepository {
	return &MockAlertRepository{Alerts: make(map[string]*alert.Alert)}
}

func (m *MockAlertRepository) Create(ctx context.Context, a *alert.Alert) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.Alerts[a.ID] = &cp
	return nil
}

func (m *MockAlertRepository) GetByID(ctx context.Context, id string) (*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Alerts[id]
	if !ok {
		return nil, errors.NotFound("Alert")
	}
	cp := *a
	return &cp, nil
}

func (m *MockAlertRepository) GetOpenByKey(ctx context.Context, alertType string, animalID, treatmentID *string) (*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Alerts {
		if a.IsResolved || a.Type != alertType {
			continue
		}
		if !strPtrEqual(a.AnimalID, animalID) || !strPtrEqual(a.TreatmentID, treatmentID) {
			continue
		}
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (m *MockAlertRepository) List(ctx context.Context, filter alert.Filter) ([]*alert.Alert, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*alert.Alert
	for _, a := range m.Alerts {
		if filter.FarmID != "" && a.FarmID != filter.FarmID {
			continue
		}
		if filter.AnimalID != "" && (a.AnimalID == nil || *a.AnimalID != filter.AnimalID) {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.Resolved != nil && a.IsResolved != *filter.Resolved {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockAlertRepository) MarkResolved(ctx context.Context, id, resolvedBy string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Alerts[id]
	if !ok {
		return errors.NotFound("Alert")
	}
	if a.IsResolved {
		return errors.AlreadyResolved("Alert")
	}
	a.IsResolved = true
	a.ResolvedAt = &at
	a.ResolvedBy = &resolvedBy
	return nil
}

func (m *MockAlertRepository) CountOpenBySeverity(ctx context.Context) (map[string]int, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, a := range m.Alerts {
		if !a.IsResolved {
			counts[a.Severity]++
		}
	}
	return counts, nil
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
