package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
)

var ErrIndexDisabled = errors.New("answer index is disabled")

// AnswerIndexer embeds answers into the answer index and queries it.
type AnswerIndexer interface {
	IndexEvaluation(ctx context.Context, evalID uuid.UUID) error
	IndexText(ctx context.Context, sourceID, source, question, text string) (int, error)
	FindSimilar(ctx context.Context, evalID uuid.UUID, limit int) ([]SearchResult, error)
	RemoveSource(ctx context.Context, sourceID string) error
}

type answerIndexer struct {
	evalRepo repositories.EvaluationRepository
	gemini   GeminiService
	index    AnswerIndex
	chunker  TextChunker
}

func NewAnswerIndexer(
	evalRepo repositories.EvaluationRepository,
	gemini GeminiService,
	index AnswerIndex,
	chunker TextChunker,
) AnswerIndexer {
	return &answerIndexer{
		evalRepo: evalRepo,
		gemini:   gemini,
		index:    index,
		chunker:  chunker,
	}
}

func (a *answerIndexer) IndexEvaluation(ctx context.Context, evalID uuid.UUID) error {
	eval, err := a.evalRepo.FindByID(evalID)
	if err != nil {
		return fmt.Errorf("failed to load evaluation: %w", err)
	}
	if eval.IndexStatus == models.IndexDone {
		return nil
	}

	n, err := a.IndexText(ctx, eval.ID.String(), SourceAnswer, eval.Question, eval.Answer)
	if err != nil {
		if uerr := a.evalRepo.UpdateIndexStatus(evalID, models.IndexFailed, err.Error()); uerr != nil {
			log.Printf("⚠️  Failed to record index failure for %s: %v\n", evalID, uerr)
		}
		return err
	}

	if err := a.evalRepo.UpdateIndexStatus(evalID, models.IndexDone, ""); err != nil {
		return err
	}
	log.Printf("🧩 Indexed evaluation %s (%d chunks)\n", evalID, n)
	return nil
}

func (a *answerIndexer) IndexText(ctx context.Context, sourceID, source, question, text string) (int, error) {
	pieces := a.chunker.ChunkText(CleanText(text))
	if len(pieces) == 0 {
		return 0, nil
	}

	chunks := make([]AnswerChunk, 0, len(pieces))
	for i, piece := range pieces {
		embedding, err := a.gemini.GenerateEmbedding(ctx, piece)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		chunks = append(chunks, AnswerChunk{Text: piece, Embedding: embedding})
	}

	// Drop points left by a previous, longer version of the same source.
	if err := a.index.DeleteSource(ctx, sourceID); err != nil {
		return 0, err
	}
	if err := a.index.UpsertChunks(ctx, sourceID, source, question, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

func (a *answerIndexer) FindSimilar(ctx context.Context, evalID uuid.UUID, limit int) ([]SearchResult, error) {
	eval, err := a.evalRepo.FindByID(evalID)
	if err != nil {
		return nil, err
	}

	embedding, err := a.gemini.GenerateEmbedding(ctx, CleanText(eval.Answer))
	if err != nil {
		return nil, fmt.Errorf("failed to embed answer: %w", err)
	}

	return a.index.SearchSimilar(ctx, embedding, eval.ID.String(), limit)
}

func (a *answerIndexer) RemoveSource(ctx context.Context, sourceID string) error {
	return a.index.DeleteSource(ctx, sourceID)
}
