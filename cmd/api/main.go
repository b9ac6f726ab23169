package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alfredoptarigan/interview-evaluator/internal/config"
	"alfredoptarigan/interview-evaluator/internal/handlers"
	"alfredoptarigan/interview-evaluator/internal/repositories"
	"alfredoptarigan/interview-evaluator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Rubric is built once and shared read-only
	rubric := services.DefaultRubric()
	if cfg.Scoring.RubricPath != "" {
		loaded, err := services.LoadRubric(cfg.Scoring.RubricPath)
		if err != nil {
			log.Fatalf("❌ Failed to load rubric: %v", err)
		}
		rubric = loaded
		log.Printf("✅ Rubric loaded from %s\n", cfg.Scoring.RubricPath)
	}
	for _, level := range rubric.Levels() {
		if sum := level.WeightSum(); sum < 0.999 || sum > 1.001 {
			log.Printf("⚠️  Rubric level %q weights sum to %.3f, not 1\n", level.Name, sum)
		}
	}

	extractor, err := services.NewScoreExtractor(cfg.Scoring.ParseMode)
	if err != nil {
		log.Fatalf("❌ Invalid score parse mode: %v", err)
	}

	// Initialize database. Scoring still works without it.
	var (
		evalRepo repositories.EvaluationRepository
		docRepo  repositories.DocumentRepository
	)
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Printf("⚠️  Database unavailable, evaluations will not be stored: %v\n", err)
	} else {
		evalRepo = repositories.NewEvaluationRepository(db)
		docRepo = repositories.NewDocumentRepository(db)
		log.Println("✅ Repositories initialized successfully")
	}

	storageService := services.NewStorageService(cfg.Storage.OutputPath)
	if err := storageService.EnsureOutputDir(); err != nil {
		log.Fatalf("❌ Failed to create output directory: %v", err)
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Answer index is optional
	var (
		indexer services.AnswerIndexer
		worker  services.Worker
	)
	switch {
	case cfg.Worker.IndexEnabled && evalRepo == nil:
		log.Println("⚠️  Answer indexing needs the database, indexing disabled")
	case cfg.Worker.IndexEnabled:
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		chunker := services.NewTextChunker(cfg.Worker.ChunkSize, cfg.Worker.ChunkOverlap)
		indexer = services.NewAnswerIndexer(evalRepo, geminiService, qdrantService, chunker)
		worker = services.NewWorker(evalRepo, indexer, cfg.Worker.Concurrency, cfg.Worker.PollInterval)
		worker.Start(ctx)
	default:
		log.Println("ℹ️  Answer indexing disabled")
	}

	evaluatorService, err := services.NewEvaluatorService(
		evalRepo,
		geminiService,
		rubric,
		extractor,
		services.NewSentimentScorer(),
		services.NewPDFRenderer(storageService),
		storageService,
		worker,
		services.EvaluatorOptions{
			WeightLevel:  cfg.Scoring.WeightLevel,
			Temperature:  cfg.Gemini.Temperature,
			ModelTimeout: cfg.Gemini.Timeout,
		},
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize evaluator: %v", err)
	}
	log.Printf("✅ Evaluator initialized (%s score parsing, %s weights)\n", extractor.Mode(), cfg.Scoring.WeightLevel)

	app := handlers.NewApp(handlers.AppConfig{
		Name:         "Interview Answer Evaluator",
		BodyLimit:    cfg.Server.MaxBodySize,
		AccessLog:    true,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}, buildHandlers(evaluatorService, evalRepo, docRepo, indexer, storageService, int64(cfg.Server.MaxBodySize)))
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if worker != nil {
			worker.Stop()
		}
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// buildHandlers leaves the result and reference routes out when there is no
// database to back them.
func buildHandlers(
	evaluator services.EvaluatorService,
	evalRepo repositories.EvaluationRepository,
	docRepo repositories.DocumentRepository,
	indexer services.AnswerIndexer,
	storage services.StorageService,
	maxFileSize int64,
) handlers.Handlers {
	h := handlers.Handlers{
		Evaluate: handlers.NewEvaluationHandler(evaluator),
		Report:   handlers.NewReportHandler(storage),
	}
	if evalRepo != nil {
		h.Result = handlers.NewResultHandler(evalRepo, indexer)
	}
	if docRepo != nil {
		references := services.NewReferenceService(docRepo, services.NewPDFParserService(), indexer)
		h.Upload = handlers.NewUploadHandler(references, storage, maxFileSize)
	}
	return h
}
