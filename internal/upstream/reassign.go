package upstream

import (
	"context"
	"net/url"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ListReassignRequests fetches reassignment requests, optionally filtered by
// status.
func (c *Client) ListReassignRequests(ctx context.Context, status string) ([]domain.ReassignRequest, error) {
	path := "/reassign-requests"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	raw, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.ReassignRequest](raw)
}

// GetReassignRequest fetches one request.
func (c *Client) GetReassignRequest(ctx context.Context, id string) (*domain.ReassignRequest, error) {
	raw, err := c.get(ctx, "/reassign-requests/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.ReassignRequest](raw)
}

// CreateReassignRequest opens a new request.
func (c *Client) CreateReassignRequest(ctx context.Context, input ReassignCreateInput) (*domain.ReassignRequest, error) {
	raw, err := c.post(ctx, "/reassign-requests", input)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.ReassignRequest](raw)
}

// ReviewReassignRequest applies the admin decision, moving the request to a
// terminal state.
func (c *Client) ReviewReassignRequest(ctx context.Context, id string, input ReviewInput) (*domain.ReassignRequest, error) {
	raw, err := c.patch(ctx, "/reassign-requests/"+url.PathEscape(id)+"/review", input)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.ReassignRequest](raw)
}
