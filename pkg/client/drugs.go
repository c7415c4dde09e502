package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DrugService handles drug reference data API calls
type DrugService struct {
	client *Client
}

// CreateDrugRequest represents a request to register a drug
type CreateDrugRequest struct {
	Name                 string   `json:"name"`
	ActiveIngredient     string   `json:"active_ingredient"`
	DrugType             string   `json:"drug_type,omitempty"`
	MRLLimit             *float64 `json:"mrl_limit,omitempty"`
	WithdrawalPeriodMeat *int     `json:"withdrawal_period_meat,omitempty"`
	WithdrawalPeriodMilk *int     `json:"withdrawal_period_milk,omitempty"`
	MaxDosage            *float64 `json:"max_dosage,omitempty"`
	Unit                 string   `json:"unit,omitempty"`
}

// Create registers antimicrobial reference data
func (s *DrugService) Create(ctx context.Context, req *CreateDrugRequest) (*Drug, error) {
	var d Drug
	if err := s.client.doRequest(ctx, "POST", "/api/v1/drugs", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Get retrieves a drug by ID
func (s *DrugService) Get(ctx context.Context, id string) (*Drug, error) {
	var d Drug
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/drugs/%s", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List retrieves registered drugs
func (s *DrugService) List(ctx context.Context, opts *ListOptions) (*Page[Drug], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
	}

	path := "/api/v1/drugs"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Drug]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
