package utils

import "github.com/gofiber/fiber/v2"

// ResponseError writes the {"error": msg} envelope.
func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// ResponseSuccess writes the {"data": data} envelope, also used for submission
// results that carry a non-2xx status.
func ResponseSuccess(ctx *fiber.Ctx, status int, data any) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}
