package main

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/smart-ats/internal/handlers"
)

type routes struct {
	evaluate *handlers.EvaluationHandler
	result   *handlers.ResultHandler
	health   *handlers.HealthHandler
}

// newApp builds the fiber app. Request bodies are streamed so multipart
// uploads of any size reach the handlers, where MAX_FILE_SIZE is enforced
// with a user-facing warning; other bodies over bodyLimit are refused.
func newApp(bodyLimit int, r routes) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:           "Smart ATS",
		ReadTimeout:       30 * time.Second,
		BodyLimit:         bodyLimit,
		StreamRequestBody: true,
		ErrorHandler:      newErrorHandler(r.evaluate),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Use(limitPlainBody(bodyLimit))

	// Form page
	app.Get("/", r.evaluate.HandleForm)
	app.Post("/", r.evaluate.HandleSubmit)

	// Routes
	api := app.Group("/api/v1")
	api.Get("/health", r.health.HandleHealth)
	api.Post("/evaluate", r.evaluate.HandleEvaluate)
	api.Get("/evaluations", r.result.HandleListResults)
	api.Get("/evaluations/:id", r.result.HandleGetResult)

	return app
}

// limitPlainBody refuses non-multipart bodies larger than limit. Multipart
// uploads are already parsed to disk and checked by the upload service.
func limitPlainBody(limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := &c.Request().Header
		if len(header.MultipartFormBoundary()) == 0 && header.ContentLength() > limit {
			return fiber.ErrRequestEntityTooLarge
		}
		return c.Next()
	}
}

func newErrorHandler(evaluateHandler *handlers.EvaluationHandler) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
			return evaluateHandler.HandleTooLarge(c)
		}
		return customErrorHandler(c, err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
