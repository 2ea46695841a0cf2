package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// EnsurePlayerID reads the player id from the X-Player-ID header, falling back
// to the playerId query parameter, and stores it in Locals("playerID").
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			// browsers cannot set headers on websocket handshakes
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}
