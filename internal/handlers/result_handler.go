package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
	"alfredoptarigan/interview-evaluator/internal/services"
)

const (
	defaultSimilarLimit = 5
	maxSimilarLimit     = 20
)

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
	indexer  services.AnswerIndexer
}

// NewResultHandler builds the result handler. indexer is nil when answer
// indexing is disabled.
func NewResultHandler(evalRepo repositories.EvaluationRepository, indexer services.AnswerIndexer) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
		indexer:  indexer,
	}
}

// HandleGetResult handles GET /api/v1/result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
			"code":  fiber.StatusBadRequest,
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		return errorResponse(c, err)
	}

	breakdown := json.RawMessage("{}")
	if evaluation.Breakdown != "" {
		breakdown = json.RawMessage(evaluation.Breakdown)
	}

	return c.JSON(models.ResultResponse{
		ID:          evaluation.ID.String(),
		Question:    evaluation.Question,
		Answer:      evaluation.Answer,
		FinalScore:  evaluation.FinalScore,
		Grade:       evaluation.Grade,
		Breakdown:   breakdown,
		Sentiment:   evaluation.Sentiment,
		PDFFile:     evaluation.PDFFile,
		IndexStatus: string(evaluation.IndexStatus),
		CreatedAt:   evaluation.CreatedAt.Format(time.RFC3339),
	})
}

// HandleSimilar handles GET /api/v1/result/:id/similar
func (h *ResultHandler) HandleSimilar(c *fiber.Ctx) error {
	if h.indexer == nil {
		return errorResponse(c, services.ErrIndexDisabled)
	}

	evalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
			"code":  fiber.StatusBadRequest,
		})
	}

	limit := c.QueryInt("limit", defaultSimilarLimit)
	if limit <= 0 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	results, err := h.indexer.FindSimilar(c.UserContext(), evalID, limit)
	if err != nil {
		return errorResponse(c, err)
	}

	matches := make([]models.SimilarAnswer, 0, len(results))
	for _, r := range results {
		match := models.SimilarAnswer{Source: r.Source, Score: r.Score, Text: r.Text}
		if r.Source == services.SourceReference {
			match.DocumentID = r.SourceID
		} else {
			match.EvaluationID = r.SourceID
		}
		matches = append(matches, match)
	}

	return c.JSON(models.SimilarResponse{
		ID:      evalID.String(),
		Matches: matches,
	})
}
