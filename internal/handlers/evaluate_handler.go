package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/smart-ats/internal/services"
	"alfredoptarigan/smart-ats/internal/views"
)

type EvaluationHandler struct {
	evaluator services.EvaluatorService
	uploads   services.UploadService
	renderer  *views.Renderer
}

func NewEvaluationHandler(
	evaluator services.EvaluatorService,
	uploads services.UploadService,
	renderer *views.Renderer,
) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator: evaluator,
		uploads:   uploads,
		renderer:  renderer,
	}
}

// HandleForm handles GET /
func (h *EvaluationHandler) HandleForm(c *fiber.Ctx) error {
	return h.renderPage(c, views.NewPage(nil, "", h.evaluator.ConfigError(), h.uploads.MaxFileSize()))
}

// HandleSubmit handles POST / and renders the report page.
func (h *EvaluationHandler) HandleSubmit(c *fiber.Ctx) error {
	submission, done := h.submission(c)
	defer done()

	outcome := h.evaluator.Evaluate(c.UserContext(), submission)

	return h.renderPage(c, views.NewPage(
		outcome,
		submission.JobDescription,
		h.evaluator.ConfigError(),
		h.uploads.MaxFileSize(),
	))
}

// HandleEvaluate handles POST /api/v1/evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	submission, done := h.submission(c)
	defer done()

	outcome := h.evaluator.Evaluate(c.UserContext(), submission)

	status := fiber.StatusOK
	switch {
	case outcome.Kind == services.KindConfiguration:
		status = fiber.StatusServiceUnavailable
	case outcome.Failed():
		status = fiber.StatusUnprocessableEntity
	}

	return c.Status(status).JSON(views.NewEvaluateResponse(outcome))
}

// HandleTooLarge answers a request whose body was refused before reaching a
// route. The submission is still evaluated so it fails with the size warning
// and is recorded; POST / gets the page, everything else the JSON outcome.
func (h *EvaluationHandler) HandleTooLarge(c *fiber.Ctx) error {
	submission := services.Submission{
		UploadErr: fmt.Errorf("%w: max size is %d bytes", services.ErrFileTooLarge, h.uploads.MaxFileSize()),
	}
	outcome := h.evaluator.Evaluate(c.UserContext(), submission)

	c.Status(fiber.StatusRequestEntityTooLarge)
	if c.Method() == fiber.MethodPost && c.Path() == "/" {
		return h.renderPage(c, views.NewPage(outcome, "", h.evaluator.ConfigError(), h.uploads.MaxFileSize()))
	}

	return c.JSON(views.NewEvaluateResponse(outcome))
}

// submission reads the form fields. A missing file leaves Document nil; a
// rejected one is carried as UploadErr. done releases the upload.
func (h *EvaluationHandler) submission(c *fiber.Ctx) (services.Submission, func()) {
	submission := services.Submission{JobDescription: c.FormValue("job_description")}
	done := func() {}

	file, err := c.FormFile("resume")
	if err != nil {
		return submission, done
	}

	doc, closeFn, err := h.uploads.Open(file)
	if err != nil {
		submission.UploadErr = err
		return submission, done
	}

	submission.Document = doc
	done = func() {
		if err := closeFn(); err != nil {
			log.Printf("⚠️  Failed to close upload %q: %v\n", doc.Name, err)
		}
	}

	return submission, done
}

func (h *EvaluationHandler) renderPage(c *fiber.Ctx, page views.Page) error {
	c.Type("html", "utf-8")
	return h.renderer.RenderPage(c, page)
}
