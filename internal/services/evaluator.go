package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
)

var ErrInvalidRequest = errors.New("invalid evaluation request")

type EvaluatorService interface {
	Evaluate(ctx context.Context, req models.EvaluateRequest) (*models.EvaluationResult, error)
}

type EvaluatorOptions struct {
	// WeightLevel names the rubric level whose weights score every answer,
	// whatever grade the answer ends up with.
	WeightLevel string
	Temperature float32
	// ModelTimeout bounds the model call. Zero leaves it unbounded.
	ModelTimeout time.Duration
}

type evaluatorService struct {
	evalRepo      repositories.EvaluationRepository
	geminiService GeminiService
	rubric        *Rubric
	weights       RubricLevel
	extractor     *ScoreExtractor
	sentiment     SentimentScorer
	renderer      PDFRenderer
	storage       StorageService
	worker        Worker
	promptBuilder *PromptBuilder
	opts          EvaluatorOptions
}

// NewEvaluatorService wires the scoring pipeline. worker may be nil when
// answer indexing is disabled.
func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	geminiService GeminiService,
	rubric *Rubric,
	extractor *ScoreExtractor,
	sentiment SentimentScorer,
	renderer PDFRenderer,
	storage StorageService,
	worker Worker,
	opts EvaluatorOptions,
) (EvaluatorService, error) {
	if opts.WeightLevel == "" {
		opts.WeightLevel = "Excellent"
	}
	weights, ok := rubric.Level(opts.WeightLevel)
	if !ok {
		return nil, fmt.Errorf("%w: weight level %q is not defined", ErrInvalidRubric, opts.WeightLevel)
	}

	return &evaluatorService{
		evalRepo:      evalRepo,
		geminiService: geminiService,
		rubric:        rubric,
		weights:       weights,
		extractor:     extractor,
		sentiment:     sentiment,
		renderer:      renderer,
		storage:       storage,
		worker:        worker,
		promptBuilder: NewPromptBuilder(),
		opts:          opts,
	}, nil
}

func (e *evaluatorService) Evaluate(ctx context.Context, req models.EvaluateRequest) (*models.EvaluationResult, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Answer) == "" {
		return nil, fmt.Errorf("%w: answer is required", ErrInvalidRequest)
	}

	evalID := uuid.New()
	log.Printf("🔄 Starting evaluation %s\n", evalID)

	// Step 1: Ask the model for per-criterion scores
	raw, err := e.generate(ctx, e.promptBuilder.BuildAnswerEvaluationPrompt(req.Question, req.Answer, e.weights))
	if err != nil {
		return nil, fmt.Errorf("failed to generate evaluation: %w", err)
	}

	// Step 2: Extract scores and apply the rubric
	scores, err := e.extractor.Extract(raw, e.weights.Criteria)
	if err != nil {
		log.Printf("❌ Could not read scores for %s: %v\n", evalID, err)
		return nil, fmt.Errorf("failed to extract scores: %w", err)
	}
	if len(scores) != len(e.weights.Criteria) {
		log.Printf("⚠️  Evaluation %s: extracted %d numbers for %d criteria\n", evalID, len(scores), len(e.weights.Criteria))
	}

	breakdown, finalScore := CalculateBreakdown(scores, e.weights.Criteria)
	if math.IsInf(finalScore, -1) {
		shapeErr := &ScoreShapeError{}
		for _, cs := range breakdown {
			if math.IsInf(cs.Contribution, -1) {
				shapeErr.OutOfRange = append(shapeErr.OutOfRange, cs.Criterion)
			}
		}
		log.Printf("❌ Evaluation %s has an unbounded negative score\n", evalID)
		return nil, fmt.Errorf("failed to score answer: %w", shapeErr)
	}

	var grade *string
	if name, ok := e.rubric.ResolveGrade(finalScore); ok {
		grade = &name
	}

	// Step 3: Sentiment of the raw answer
	polarity := e.sentiment.Polarity(req.Answer)

	// Step 4: Render the answer
	pdfFile := e.storage.ReportName(evalID)
	if _, err := e.renderer.Render(pdfFile, req.Answer); err != nil {
		return nil, fmt.Errorf("failed to render answer: %w", err)
	}

	result := &models.EvaluationResult{
		ID:         evalID.String(),
		FinalScore: finalScore,
		Grade:      grade,
		Breakdown:  breakdown,
		Sentiment:  polarity,
		PDFFile:    pdfFile,
	}

	// Step 5: Persist and queue for indexing
	e.persist(evalID, req, raw, scores, result)

	log.Printf("✅ Evaluation %s completed: %.2f (%s)\n", evalID, finalScore, gradeLabel(grade))
	return result, nil
}

func (e *evaluatorService) generate(ctx context.Context, prompt string) (string, error) {
	if e.opts.ModelTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.ModelTimeout)
		defer cancel()
	}

	log.Printf("📝 Evaluation prompt length: %d characters\n", len(prompt))
	return e.geminiService.GenerateText(ctx, prompt, e.opts.Temperature)
}

// persist stores the evaluation record. A storage failure is logged and does
// not fail a scored request; the answer is then not indexed.
func (e *evaluatorService) persist(evalID uuid.UUID, req models.EvaluateRequest, raw string, scores []float64, result *models.EvaluationResult) {
	if e.evalRepo == nil {
		return
	}

	// Lenient scores may hold +Inf, which JSON cannot carry.
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		log.Printf("⚠️  Evaluation %s scores not serializable: %v\n", evalID, err)
		scoresJSON = []byte("[]")
	}
	breakdownJSON, _ := json.Marshal(result.Breakdown)

	status := models.IndexDisabled
	if e.worker != nil {
		status = models.IndexPending
	}

	record := &models.Evaluation{
		ID:          evalID,
		Question:    req.Question,
		Answer:      req.Answer,
		ModelOutput: raw,
		Scores:      string(scoresJSON),
		Breakdown:   string(breakdownJSON),
		FinalScore:  result.FinalScore,
		Grade:       result.Grade,
		Sentiment:   result.Sentiment,
		PDFFile:     result.PDFFile,
		IndexStatus: status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := e.evalRepo.Create(record); err != nil {
		log.Printf("⚠️  Failed to store evaluation %s: %v\n", evalID, err)
		return
	}

	if e.worker != nil {
		e.worker.EnqueueJob(evalID)
	}
}

func gradeLabel(grade *string) string {
	if grade == nil {
		return "no grade"
	}
	return *grade
}
