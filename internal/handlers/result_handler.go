package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/repositories"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
}

// NewResultHandler accepts a nil repository when history is disabled.
func NewResultHandler(evalRepo repositories.EvaluationRepository) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
	}
}

// HandleGetResult handles GET /api/v1/evaluations/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	if h.evalRepo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation history is disabled",
		})
	}

	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	record, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		if errors.Is(err, repositories.ErrEvaluationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Evaluation not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluation",
		})
	}

	return c.JSON(models.ResultResponse{
		ID:     record.ID.String(),
		Record: record,
	})
}

// HandleListResults handles GET /api/v1/evaluations?limit=
func (h *ResultHandler) HandleListResults(c *fiber.Ctx) error {
	if h.evalRepo == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation history is disabled",
		})
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be between 1 and 100",
			})
		}
		limit = parsed
	}

	records, err := h.evalRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load evaluations",
		})
	}

	if records == nil {
		records = []models.EvaluationRecord{}
	}

	return c.JSON(models.ResultListResponse{Records: records})
}
