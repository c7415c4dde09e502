package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AnimalService handles animal registry API calls
type AnimalService struct {
	client *Client
}

// CreateAnimalRequest represents a request to register an animal
type CreateAnimalRequest struct {
	FarmID    string   `json:"farm_id"`
	TagNumber string   `json:"tag_number"`
	Species   string   `json:"species"`
	Breed     string   `json:"breed,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	BirthDate string   `json:"birth_date,omitempty"`
	Status    string   `json:"status,omitempty"`
}

// AnimalListOptions contains options for listing animals
type AnimalListOptions struct {
	ListOptions
	FarmID string `json:"farm_id,omitempty"`
}

// Create registers an animal
func (s *AnimalService) Create(ctx context.Context, req *CreateAnimalRequest) (*Animal, error) {
	var a Animal
	if err := s.client.doRequest(ctx, "POST", "/api/v1/animals", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Get retrieves an animal by ID
func (s *AnimalService) Get(ctx context.Context, id string) (*Animal, error) {
	var a Animal
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/animals/%s", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List retrieves animals, optionally scoped to a farm
func (s *AnimalService) List(ctx context.Context, opts *AnimalListOptions) (*Page[Animal], error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.FarmID != "" {
			query.Set("farm_id", opts.FarmID)
		}
	}

	path := "/api/v1/animals"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Animal]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
