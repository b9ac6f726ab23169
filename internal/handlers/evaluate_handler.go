package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/services"
)

type EvaluationHandler struct {
	evaluator services.EvaluatorService
}

func NewEvaluationHandler(evaluator services.EvaluatorService) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator: evaluator,
	}
}

// HandleEvaluate handles POST /evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
			"code":  fiber.StatusBadRequest,
		})
	}

	result, err := h.evaluator.Evaluate(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(result)
}
