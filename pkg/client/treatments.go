package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// TreatmentService handles treatment recording API calls
type TreatmentService struct {
	client *Client
}

// RecordTreatmentRequest represents a request to record a treatment
type RecordTreatmentRequest struct {
	AnimalID            string  `json:"animal_id"`
	DrugID              string  `json:"drug_id"`
	VeterinarianID      *string `json:"veterinarian_id,omitempty"`
	Dosage              float64 `json:"dosage"`
	DosageUnit          string  `json:"dosage_unit"`
	Frequency           string  `json:"frequency"`
	AdministrationRoute string  `json:"administration_route,omitempty"`
	StartDate           string  `json:"start_date"` // YYYY-MM-DD
	DurationDays        int     `json:"duration_days"`
	TreatmentReason     string  `json:"treatment_reason"`
	Notes               string  `json:"notes,omitempty"`
}

// TreatmentListOptions contains options for listing treatments
type TreatmentListOptions struct {
	ListOptions
	AnimalID string `json:"animal_id,omitempty"`
	FarmID   string `json:"farm_id,omitempty"`
	DrugID   string `json:"drug_id,omitempty"`
	From     string `json:"from,omitempty"` // YYYY-MM-DD
	To       string `json:"to,omitempty"`   // YYYY-MM-DD
}

// Record records an antimicrobial treatment. The server derives the end
// and withdrawal dates from the referenced drug.
func (s *TreatmentService) Record(ctx context.Context, req *RecordTreatmentRequest) (*Treatment, error) {
	var t Treatment
	if err := s.client.doRequest(ctx, "POST", "/api/v1/treatments", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces a treatment's input fields; the server recomputes the
// derived dates when the start date, duration or drug reference changed.
func (s *TreatmentService) Update(ctx context.Context, id string, req *RecordTreatmentRequest) (*Treatment, error) {
	var t Treatment
	if err := s.client.doRequest(ctx, "PUT", fmt.Sprintf("/api/v1/treatments/%s", id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Get retrieves a treatment by ID
func (s *TreatmentService) Get(ctx context.Context, id string) (*Treatment, error) {
	var t Treatment
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/treatments/%s", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// List retrieves treatments matching the options
func (s *TreatmentService) List(ctx context.Context, opts *TreatmentListOptions) (*Page[Treatment], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.AnimalID != "" {
			query.Set("animal_id", opts.AnimalID)
		}
		if opts.FarmID != "" {
			query.Set("farm_id", opts.FarmID)
		}
		if opts.DrugID != "" {
			query.Set("drug_id", opts.DrugID)
		}
		if opts.From != "" {
			query.Set("from", opts.From)
		}
		if opts.To != "" {
			query.Set("to", opts.To)
		}
	}

	path := "/api/v1/treatments"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Treatment]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
