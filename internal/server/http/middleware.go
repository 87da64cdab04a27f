package http

import (
	"strings"

	"checkers/internal/core"

	"github.com/gofiber/fiber/v2"
)

// SeatValidator checks a seat token against the game it is used on
type SeatValidator func(gameID, token string) error

// SeatRequired rejects requests that do not carry the game's seat token
func SeatRequired(validateSeat SeatValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
				Error: "missing seat token",
				Code:  core.ErrUnauthorized,
			})
		}

		if err := validateSeat(c.Params("gameId"), token); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(core.ErrorResponse{
				Error: "invalid or expired seat token",
				Code:  core.ErrUnauthorized,
			})
		}

		return c.Next()
	}
}

// extractBearerToken extracts the token from an Authorization header
func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
