package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"alfredoptarigan/interview-evaluator/internal/config"
	"alfredoptarigan/interview-evaluator/internal/repositories"
	"alfredoptarigan/interview-evaluator/internal/services"
)

// manifest lists the reference answer PDFs to ingest:
//
//	answers:
//	  - path: ./reference_answers/goroutines.pdf
//	    title: Goroutines vs threads
//	    question: How do goroutines differ from OS threads?
type manifest struct {
	Answers []struct {
		Path     string `yaml:"path"`
		Title    string `yaml:"title"`
		Question string `yaml:"question"`
	} `yaml:"answers"`
}

func main() {
	manifestPath := flag.String("manifest", "./reference_answers/manifest.yaml", "reference answer manifest")
	flag.Parse()

	log.Println("🚀 Starting reference answer ingestion...")

	cfg := config.Load()

	raw, err := os.ReadFile(*manifestPath)
	if err != nil {
		log.Fatalf("❌ Failed to read manifest: %v", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		log.Fatalf("❌ Failed to parse manifest: %v", err)
	}
	baseDir := filepath.Dir(*manifestPath)

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	evalRepo := repositories.NewEvaluationRepository(db)
	docRepo := repositories.NewDocumentRepository(db)

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	ctx := context.Background()
	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewTextChunker(cfg.Worker.ChunkSize, cfg.Worker.ChunkOverlap)
	indexer := services.NewAnswerIndexer(evalRepo, geminiService, qdrantService, chunker)
	references := services.NewReferenceService(docRepo, services.NewPDFParserService(), indexer)

	successCount := 0
	skipCount := 0
	failCount := 0

	for _, answer := range m.Answers {
		path := answer.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		log.Printf("\n📄 Processing: %s", path)

		if _, err := docRepo.FindByPath(path); err == nil {
			log.Printf("   ⏭️  Already ingested, skipping...")
			skipCount++
			continue
		} else if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("   ❌ Failed to check existing document: %v", err)
			failCount++
			continue
		}

		doc, err := references.Ingest(ctx, path, answer.Title, answer.Question)
		if err != nil {
			log.Printf("   ❌ Failed to ingest: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Ingested %q (%d pages, %d chunks)", doc.Title, doc.PageCount, doc.ChunkCount)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d", successCount)
	log.Printf("   ⏭️  Skipped: %d", skipCount)
	log.Printf("   ❌ Failed: %d", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}
