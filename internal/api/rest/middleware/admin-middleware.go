package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly lets a request through when it carries "Bearer <token>". With no
// token configured every request is refused.
func AdminOnly(token string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if token == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access is disabled",
			})
		}

		header := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))
		given, found := strings.CutPrefix(header, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(given)), []byte(token)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		return ctx.Next()
	}
}
