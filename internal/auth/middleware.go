package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/session"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util"
)

const (
	principalKey = "principal"
	sessionKey   = "session"
)

// Middleware resolves the bearer token to a live session and attaches the
// principal and upstream credentials to the request.
func Middleware(tm *TokenManager, sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return apperrors.NewUnauthorized("missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperrors.NewUnauthorized("invalid authorization header format")
		}

		claims, err := tm.ParseToken(parts[1])
		if err != nil {
			return apperrors.NewUnauthorized("invalid or expired token")
		}

		sess, err := sessions.Get(c.UserContext(), claims.SessionID)
		if err != nil {
			if err == session.ErrNotFound {
				return apperrors.NewUnauthorized("session expired")
			}
			return apperrors.NewInternalError(err)
		}

		c.Locals(principalKey, sess.User())
		c.Locals(sessionKey, sess)
		c.SetUserContext(session.WithUpstreamToken(c.UserContext(), sess.UpstreamToken))
		return c.Next()
	}
}

// Principal returns the authenticated user for the request, or nil when the
// auth middleware did not run.
func Principal(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(principalKey).(*domain.User)
	return user
}

// CurrentSession returns the session resolved by the middleware, or nil.
func CurrentSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionKey).(*session.Session)
	return sess
}
