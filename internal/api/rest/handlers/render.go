package handlers

import (
	"bytes"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ieeespac/spac_site/internal/helper/utils"
	"github.com/ieeespac/spac_site/internal/web"
)

func renderPage(ctx *fiber.Ctx, pages *web.Renderer, status int, name string, data web.PageData) error {
	var buf bytes.Buffer
	if err := pages.Render(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not render page")
	}

	ctx.Type("html", "utf-8")
	return ctx.Status(status).Send(buf.Bytes())
}
