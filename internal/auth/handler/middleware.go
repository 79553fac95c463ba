package handler

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studymodules/auth-service/internal/auth/domain"
)

const (
	userLocalsKey  = "authUser"
	tokenLocalsKey = "authToken"
)

// UserFromCtx returns the principal attached by RequireAuth.
func UserFromCtx(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(userLocalsKey).(*domain.User)
	return user, ok
}

// RequireAuth gates a route behind bearer-token authorization: revocation
// check first, then signature/expiry, then subject resolution. Each rejection
// carries its own message so clients can tell an ended session apart from a
// token that simply stopped being valid.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return unauthorized(c, "No token provided")
	}

	revoked, err := h.userService.IsTokenBlacklisted(c.Context(), token)
	if err != nil {
		// The revocation store is unreachable: deny rather than skip the check.
		log.Printf("warn: blacklist lookup failed: %v", err)
		return unauthorized(c, "Invalid token")
	}
	if revoked {
		return unauthorized(c, "Token has been invalidated")
	}

	claims, err := h.userService.VerifyToken(token)
	if err != nil {
		return unauthorized(c, "Invalid token")
	}

	user, err := h.userService.ValidateUserByID(c.Context(), claims.UserID)
	if err != nil || user == nil {
		return unauthorized(c, "User not found")
	}

	c.Locals(userLocalsKey, user)
	c.Locals(tokenLocalsKey, token)

	return c.Next()
}

// bearerToken extracts the token from an Authorization header value. Only the
// literal Bearer scheme counts; anything else is treated as no token at all.
func bearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) < 2 || fields[0] != "Bearer" {
		return "", false
	}

	return fields[1], true
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}
