package upstream

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ListStaff fetches all staff users for assignee pickers.
func (c *Client) ListStaff(ctx context.Context) ([]domain.User, error) {
	raw, err := c.get(ctx, "/users?role=staff")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](raw)
}

// GetCategory fetches one category, used when chasing a department through a
// category reference.
func (c *Client) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	raw, err := c.get(ctx, "/categories/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Category](raw)
}

// GetDepartment fetches one department.
func (c *Client) GetDepartment(ctx context.Context, id string) (*domain.Department, error) {
	raw, err := c.get(ctx, "/departments/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Department](raw)
}

// Master data has no workflow of its own; the gateway proxies raw records
// after envelope normalization.

// ListResource lists a master-data collection.
func (c *Client) ListResource(ctx context.Context, resource string) ([]json.RawMessage, error) {
	raw, err := c.get(ctx, "/"+resource)
	if err != nil {
		return nil, err
	}
	return CollectionBytes(raw)
}

// GetResource fetches one master-data record.
func (c *Client) GetResource(ctx context.Context, resource, id string) (json.RawMessage, error) {
	raw, err := c.get(ctx, "/"+resource+"/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return RecordBytes(raw)
}

// CreateResource creates a master-data record.
func (c *Client) CreateResource(ctx context.Context, resource string, body json.RawMessage) (json.RawMessage, error) {
	raw, err := c.post(ctx, "/"+resource, body)
	if err != nil {
		return nil, err
	}
	return RecordBytes(raw)
}

// UpdateResource patches a master-data record.
func (c *Client) UpdateResource(ctx context.Context, resource, id string, body json.RawMessage) (json.RawMessage, error) {
	raw, err := c.patch(ctx, "/"+resource+"/"+url.PathEscape(id), body)
	if err != nil {
		return nil, err
	}
	return RecordBytes(raw)
}

// DeleteResource removes a master-data record.
func (c *Client) DeleteResource(ctx context.Context, resource, id string) error {
	return c.delete(ctx, "/"+resource+"/"+url.PathEscape(id))
}
