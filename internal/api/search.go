package api

import (
	"context"
	"fmt"

	"github.com/docmcquery/mcquery-tui/internal/model"
)

// QuerySearch submits a free-text query for a patient and returns the
// matched case studies and similar patients.
func (c *Client) QuerySearch(ctx context.Context, patientID, query string) (*model.SearchResponse, error) {
	if patientID == "" {
		return nil, fmt.Errorf("query search: patient id is required: %w", ErrValidation)
	}
	body := model.SearchRequest{PatientID: patientID, PatientInfo: query}
	var resp model.SearchResponse
	if err := c.Post(ctx, "query search", "all_requests", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
