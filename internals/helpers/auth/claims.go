package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Claim keys stored in Locals by the auth middleware.
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
)

// GetUserIDFromToken returns the authenticated manager's id, or an
// Unauthorized fiber error when the middleware did not run.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user ID")
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user ID")
	}
	return id, nil
}

func GetUserNameFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserName).(string); ok {
		return v
	}
	return ""
}
