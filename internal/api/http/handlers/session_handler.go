package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/auth"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

// SessionHandler exposes console login, logout, and the current principal.
// Credentials are proxied to the backend; the console only keeps the session.
type SessionHandler struct {
	upstreamAuth upstream.AuthAPI
	sessions     *session.Store
	tokens       *auth.TokenManager
}

// NewSessionHandler constructs handler.
func NewSessionHandler(upstreamAuth upstream.AuthAPI, sessions *session.Store, tokens *auth.TokenManager) *SessionHandler {
	return &SessionHandler{upstreamAuth: upstreamAuth, sessions: sessions, tokens: tokens}
}

// Login handles POST /session.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	upstreamToken, user, err := h.upstreamAuth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Create(c.UserContext(), user, upstreamToken)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	token, expiresAt, err := h.tokens.GenerateToken(sess.ID, user.Role)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.SessionResponse{Token: token, ExpiresAt: expiresAt, User: user},
	})
}

// Me handles GET /session.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": auth.Principal(c)})
}

// Logout handles DELETE /session. The upstream logout is best effort; the
// console session dies either way.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	_ = h.upstreamAuth.Logout(c.UserContext())

	if sess := auth.CurrentSession(c); sess != nil {
		if err := h.sessions.Delete(c.UserContext(), sess.ID); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	return c.SendStatus(http.StatusNoContent)
}
