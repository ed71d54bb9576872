package upstream

import (
	"context"
	"net/url"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ListTickets fetches tickets, optionally narrowed by status or assignee.
func (c *Client) ListTickets(ctx context.Context, query TicketQuery) ([]domain.Ticket, error) {
	path := "/tickets"
	params := url.Values{}
	if query.Status != "" {
		params.Set("status", query.Status)
	}
	if query.AssigneeID != "" {
		params.Set("assigneeId", query.AssigneeID)
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	raw, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Ticket](raw)
}

// GetTicket fetches one ticket.
func (c *Client) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	raw, err := c.get(ctx, "/tickets/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Ticket](raw)
}

// CreateTicket submits a new ticket.
func (c *Client) CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	raw, err := c.post(ctx, "/tickets", input)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Ticket](raw)
}

// UpdateTicket patches mutable fields.
func (c *Client) UpdateTicket(ctx context.Context, id string, input UpdateTicketInput) (*domain.Ticket, error) {
	raw, err := c.patch(ctx, "/tickets/"+url.PathEscape(id), input)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Ticket](raw)
}

// DeleteTicket removes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	return c.delete(ctx, "/tickets/"+url.PathEscape(id))
}

// AcceptTicket transitions assigned -> in_progress server-side. No body.
func (c *Client) AcceptTicket(ctx context.Context, id string) error {
	_, err := c.post(ctx, "/tickets/"+url.PathEscape(id)+"/accept", nil)
	return err
}

// DenyTicket denies a ticket with a reason.
func (c *Client) DenyTicket(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	_, err := c.post(ctx, "/tickets/"+url.PathEscape(id)+"/deny", body)
	return err
}

// ResolveTicket resolves a ticket with a resolution note.
func (c *Client) ResolveTicket(ctx context.Context, id, resolutionNote string) error {
	body := map[string]string{"resolutionNote": resolutionNote}
	_, err := c.patch(ctx, "/tickets/"+url.PathEscape(id)+"/resolve", body)
	return err
}

// AssignCategory assigns a single-category ticket to staff with a priority.
func (c *Client) AssignCategory(ctx context.Context, id string, input AssignInput) error {
	_, err := c.post(ctx, "/tickets/"+url.PathEscape(id)+"/assign-category", input)
	return err
}

// SplitCategories converts a multi-category ticket into per-category
// sub-tickets in one request. A rejected request leaves the parent unsplit.
func (c *Client) SplitCategories(ctx context.Context, id string, splits []SplitInput) error {
	body := map[string][]SplitInput{"splits": splits}
	_, err := c.post(ctx, "/tickets/"+url.PathEscape(id)+"/split-categories", body)
	return err
}
