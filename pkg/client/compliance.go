package client

import "context"

// ComplianceService handles compliance run API calls
type ComplianceService struct {
	client *Client
}

// Run triggers a compliance sweep and returns the run summary
func (s *ComplianceService) Run(ctx context.Context) (*RunSummary, error) {
	var summary RunSummary
	if err := s.client.doRequest(ctx, "POST", "/api/v1/compliance/run", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Summary retrieves the point-in-time compliance overview
func (s *ComplianceService) Summary(ctx context.Context) (*Overview, error) {
	var overview Overview
	if err := s.client.doRequest(ctx, "GET", "/api/v1/compliance/summary", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}
