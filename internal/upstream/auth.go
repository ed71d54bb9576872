package upstream

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// Login exchanges console credentials for an upstream bearer token and the
// caller's profile. Token storage is the session store's job; the client
// never keeps it.
func (c *Client) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	body := map[string]string{"username": username, "password": password}
	raw, err := c.post(ctx, "/auth/login", body)
	if err != nil {
		return "", nil, err
	}

	record, err := RecordBytes(raw)
	if err != nil {
		return "", nil, err
	}
	var payload struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(record, &payload); err != nil {
		return "", nil, apperrors.NewUpstreamError("malformed login response", http.StatusBadGateway)
	}
	if payload.Token == "" || payload.User == nil {
		return "", nil, apperrors.NewUpstreamError("malformed login response", http.StatusBadGateway)
	}
	return payload.Token, payload.User, nil
}

// Logout invalidates the upstream token. Failures are reported but the
// console session is removed regardless.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.post(ctx, "/auth/logout", nil)
	return err
}
