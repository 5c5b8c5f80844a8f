package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
)

const (
	// HeaderAuthToken carries the raw token, no scheme prefix.
	HeaderAuthToken = "x-auth-token"
	// LocalUserID is the c.Locals key holding the authenticated user id (string).
	LocalUserID = "userId"

	// MsgNoToken and MsgInvalidToken are the only 401 bodies; the failure
	// kind is logged, never returned.
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// TokenVerifier resolves a token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// NewAuthMiddleware returns a Fiber middleware that validates the x-auth-token header.
// On success sets user id (subject) into c.Locals("userId").
func NewAuthMiddleware(verifier TokenVerifier, log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(c.Get(HeaderAuthToken))
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": MsgNoToken})
		}
		userID, err := verifier.Verify(tokenStr)
		if err != nil {
			log.Warn(c.UserContext(), "token rejected",
				"kind", Kind(err),
				"path", c.Path(),
				"request_id", c.Locals("requestid"),
			)
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"msg": MsgInvalidToken})
		}
		c.Locals(LocalUserID, userID.String())
		return c.Next()
	}
}

// UserID returns the id stored by the auth middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals(LocalUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
