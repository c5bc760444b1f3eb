package api

import (
	"context"
	"fmt"

	"github.com/docmcquery/mcquery-tui/internal/model"
)

// ListPatients returns the selectable patient directory in server order.
func (c *Client) ListPatients(ctx context.Context) ([]model.Patient, error) {
	var resp []model.Patient
	if err := c.Get(ctx, "list patients", "patients_list", &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, &NetworkError{Op: "list patients", Err: fmt.Errorf("decode response: null patient list")}
	}
	return resp, nil
}
