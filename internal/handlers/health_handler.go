package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/smart-ats/internal/services"
)

type HealthHandler struct {
	evaluator      services.EvaluatorService
	historyEnabled bool
}

func NewHealthHandler(evaluator services.EvaluatorService, historyEnabled bool) *HealthHandler {
	return &HealthHandler{
		evaluator:      evaluator,
		historyEnabled: historyEnabled,
	}
}

// HandleHealth handles GET /api/v1/health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"configured": h.evaluator.ConfigError() == nil,
		"history":    h.historyEnabled,
		"time":       time.Now(),
	})
}
