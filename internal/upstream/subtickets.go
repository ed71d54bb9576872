package upstream

import (
	"context"
	"net/url"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// ListAssignedSubTickets fetches the caller's sub-ticket queue.
func (c *Client) ListAssignedSubTickets(ctx context.Context) ([]domain.SubTicket, error) {
	raw, err := c.get(ctx, "/sub-tickets/assigned-to-me")
	if err != nil {
		return nil, err
	}
	return decodeList[domain.SubTicket](raw)
}

// GetSubTicket fetches one sub-ticket.
func (c *Client) GetSubTicket(ctx context.Context, id string) (*domain.SubTicket, error) {
	raw, err := c.get(ctx, "/sub-tickets/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.SubTicket](raw)
}

// AcceptSubTicket transitions assigned -> in_progress server-side.
func (c *Client) AcceptSubTicket(ctx context.Context, id string) error {
	_, err := c.post(ctx, "/sub-tickets/"+url.PathEscape(id)+"/accept", nil)
	return err
}

// DenySubTicket denies a sub-ticket with a reason.
func (c *Client) DenySubTicket(ctx context.Context, id, reason string) error {
	body := map[string]string{"reason": reason}
	_, err := c.post(ctx, "/sub-tickets/"+url.PathEscape(id)+"/deny", body)
	return err
}

// ResolveSubTicket resolves a sub-ticket with a resolution note.
func (c *Client) ResolveSubTicket(ctx context.Context, id, resolutionNote string) error {
	body := map[string]string{"resolutionNote": resolutionNote}
	_, err := c.patch(ctx, "/sub-tickets/"+url.PathEscape(id)+"/resolve", body)
	return err
}
