package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ieeespac/spac_site/internal/helper/utils"
	"github.com/ieeespac/spac_site/internal/services"
	"github.com/ieeespac/spac_site/internal/web"
)

type PageHandler struct {
	schedule services.ScheduleService
	pages    *web.Renderer
}

func NewPageHandler(schedule services.ScheduleService, pages *web.Renderer) *PageHandler {
	return &PageHandler{schedule: schedule, pages: pages}
}

func (h *PageHandler) SetupRoutes(app *fiber.App) {
	app.Get("/", h.Home)
	app.Get("/schedule", h.Schedule)
	app.Get("/schedule.ics", h.ScheduleICS)

	api := app.Group("/api")
	api.Get("/schedule", h.ScheduleJSON)
}

func (h *PageHandler) Home(ctx *fiber.Ctx) error {
	return renderPage(ctx, h.pages, fiber.StatusOK, "home", web.PageData{})
}

func (h *PageHandler) Schedule(ctx *fiber.Ctx) error {
	return renderPage(ctx, h.pages, fiber.StatusOK, "schedule", web.PageData{
		Timeline: h.schedule.Timeline(),
	})
}

func (h *PageHandler) ScheduleJSON(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK, h.schedule.Timeline())
}

func (h *PageHandler) ScheduleICS(ctx *fiber.Ctx) error {
	body, err := h.schedule.ICS()
	if err != nil {
		log.Printf("schedule ics: %v", err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not build calendar")
	}

	ctx.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="spac-schedule.ics"`)
	return ctx.Status(fiber.StatusOK).Send(body)
}
