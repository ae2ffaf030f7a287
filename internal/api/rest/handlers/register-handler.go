package handlers

import (
	"errors"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/ieeespac/spac_site/internal/api/rest/middleware"
	"github.com/ieeespac/spac_site/internal/dto"
	"github.com/ieeespac/spac_site/internal/helper/utils"
	"github.com/ieeespac/spac_site/internal/services"
	"github.com/ieeespac/spac_site/internal/web"
	pkgutils "github.com/ieeespac/spac_site/pkg/utils"
)

type RegisterHandler struct {
	svc        services.RegistrationService
	pages      *web.Renderer
	adminToken string
}

func NewRegisterHandler(svc services.RegistrationService, pages *web.Renderer, adminToken string) *RegisterHandler {
	return &RegisterHandler{svc: svc, pages: pages, adminToken: adminToken}
}

func (h *RegisterHandler) SetupRoutes(app *fiber.App) {
	app.Get("/register", h.ShowForm)
	app.Post("/register", h.SubmitForm)

	api := app.Group("/api")
	registrations := api.Group("/registrations")
	registrations.Post("/", h.Submit)
	registrations.Get("/", middleware.AdminOnly(h.adminToken), h.List)
}

func (h *RegisterHandler) ShowForm(ctx *fiber.Ctx) error {
	state := dto.NewFormState()
	return renderPage(ctx, h.pages, fiber.StatusOK, "register", web.PageData{Form: &state})
}

// SubmitForm handles the html form and renders the page again with the outcome.
func (h *RegisterHandler) SubmitForm(ctx *fiber.Ctx) error {
	form, err := h.parseForm(ctx)
	if err != nil {
		log.Printf("[REGISTER] read form: %v", err)
		state := dto.NewFormState()
		state.Notification = &dto.Notification{Status: "error", Message: "We couldn't read your submission. Please try again."}
		return renderPage(ctx, h.pages, fiber.StatusBadRequest, "register", web.PageData{Form: &state})
	}

	res := h.svc.Submit(ctx.UserContext(), form)
	state := dto.FormStateFromResult(form, res)
	return renderPage(ctx, h.pages, statusFor(res), "register", web.PageData{Form: &state})
}

// Submit is the JSON variant of SubmitForm.
func (h *RegisterHandler) Submit(ctx *fiber.Ctx) error {
	form, err := h.parseForm(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	res := h.svc.Submit(ctx.UserContext(), form)
	return utils.ResponseSuccess(ctx, statusFor(res), res)
}

func (h *RegisterHandler) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	list, err := h.svc.ListRegistrations(ctx.UserContext(), limit, offset)
	if err != nil {
		log.Printf("list registrations: %v", err)
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not list registrations")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, list)
}

func (h *RegisterHandler) parseForm(ctx *fiber.Ctx) (dto.RegistrationForm, error) {
	var form dto.RegistrationForm
	if err := ctx.BodyParser(&form); err != nil {
		return form, err
	}

	// a missing file part is not an error, the resume is optional
	header, err := ctx.FormFile("resume")
	if err != nil || header == nil || header.Filename == "" {
		return form, nil
	}

	resume, err := h.readResume(header)
	if err != nil {
		return form, err
	}
	form.Resume = resume
	return form, nil
}

// readResume reads at most the configured limit; past it only the reported
// size is kept so the service can raise the resume warning.
func (h *RegisterHandler) readResume(header *multipart.FileHeader) (*dto.ResumeFile, error) {
	resume := &dto.ResumeFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
	}
	if header.Size > h.svc.MaxResumeBytes() {
		return resume, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := pkgutils.ReadAllLimit(f, h.svc.MaxResumeBytes())
	if errors.Is(err, pkgutils.ErrFileTooLarge) {
		resume.Size = h.svc.MaxResumeBytes() + 1
		return resume, nil
	}
	if err != nil {
		return nil, err
	}
	resume.Bytes = b
	return resume, nil
}

func statusFor(res dto.SubmissionResult) int {
	switch res.Status {
	case dto.SubmissionSuccess:
		return fiber.StatusCreated
	case dto.SubmissionValidationError:
		return fiber.StatusUnprocessableEntity
	case dto.SubmissionResumeWarning:
		return fiber.StatusRequestEntityTooLarge
	}

	switch {
	case errors.Is(res.Err, services.ErrSubmissionInFlight):
		return fiber.StatusConflict
	case errors.Is(res.Err, services.ErrUploadFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
