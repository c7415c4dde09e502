package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlertService handles compliance alert API calls
type AlertService struct {
	client *Client
}

// AlertListOptions contains options for listing alerts
type AlertListOptions struct {
	ListOptions
	FarmID   string `json:"farm_id,omitempty"`
	AnimalID string `json:"animal_id,omitempty"`
	Type     string `json:"type,omitempty"`
	Severity string `json:"severity,omitempty"`
	Resolved *bool  `json:"resolved,omitempty"`
}

// ResolveAlertRequest represents a request to resolve an alert
type ResolveAlertRequest struct {
	ResolvedBy string `json:"resolved_by"`
}

// List retrieves alerts matching the options
func (s *AlertService) List(ctx context.Context, opts *AlertListOptions) (*Page[Alert], error) {
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
		if opts.AnimalID != "" {
			query.Set("animal_id", opts.AnimalID)
		}
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
		if opts.Resolved != nil {
			query.Set("resolved", strconv.FormatBool(*opts.Resolved))
		}
	}

	path := "/api/v1/alerts"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page Page[Alert]
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves an alert by ID
func (s *AlertService) Get(ctx context.Context, id string) (*Alert, error) {
	var a Alert
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/alerts/%s", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Resolve marks an alert as resolved. Resolved alerts are never reopened;
// a recurring condition produces a new alert on the next run.
func (s *AlertService) Resolve(ctx context.Context, id, resolvedBy string) (*Alert, error) {
	req := &ResolveAlertRequest{ResolvedBy: resolvedBy}
	var a Alert
	if err := s.client.doRequest(ctx, "POST", fmt.Sprintf("/api/v1/alerts/%s/resolve", id), req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Summary retrieves unresolved alert counts by severity
func (s *AlertService) Summary(ctx context.Context) (map[string]int, error) {
	var counts map[string]int
	if err := s.client.doRequest(ctx, "GET", "/api/v1/alerts/summary", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
