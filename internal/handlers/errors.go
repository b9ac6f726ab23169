package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-evaluator/internal/repositories"
	"alfredoptarigan/interview-evaluator/internal/services"
)

// errorResponse maps service errors to a status code and the JSON body shape
// used by the app's error handler.
func errorResponse(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	body := fiber.Map{"error": err.Error()}

	var shapeErr *services.ScoreShapeError
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		code = fiber.StatusBadRequest
	case errors.As(err, &shapeErr):
		code = fiber.StatusBadGateway
		if len(shapeErr.Missing) > 0 {
			body["missing"] = shapeErr.Missing
		}
		if len(shapeErr.OutOfRange) > 0 {
			body["out_of_range"] = shapeErr.OutOfRange
		}
	case errors.Is(err, context.DeadlineExceeded):
		code = fiber.StatusGatewayTimeout
	case errors.Is(err, services.ErrUpstream):
		code = fiber.StatusBadGateway
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, services.ErrFileNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidFilename):
		code = fiber.StatusBadRequest
	case errors.Is(err, services.ErrIndexDisabled):
		code = fiber.StatusServiceUnavailable
	}

	body["code"] = code
	return c.Status(code).JSON(body)
}
