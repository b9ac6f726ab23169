package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/interview-evaluator/internal/models"
	"alfredoptarigan/interview-evaluator/internal/repositories"
)

// ReferenceService ingests model answers from PDF files into the answer index.
type ReferenceService interface {
	Ingest(ctx context.Context, path, title, question string) (*models.ReferenceDocument, error)
}

type referenceService struct {
	docRepo   repositories.DocumentRepository
	pdfParser PDFParserService
	indexer   AnswerIndexer
}

func NewReferenceService(
	docRepo repositories.DocumentRepository,
	pdfParser PDFParserService,
	indexer AnswerIndexer,
) ReferenceService {
	return &referenceService{
		docRepo:   docRepo,
		pdfParser: pdfParser,
		indexer:   indexer,
	}
}

func (r *referenceService) Ingest(ctx context.Context, path, title, question string) (*models.ReferenceDocument, error) {
	if r.indexer == nil {
		return nil, ErrIndexDisabled
	}

	content, err := r.pdfParser.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	doc := &models.ReferenceDocument{
		ID:        uuid.New(),
		Title:     title,
		Question:  question,
		FilePath:  path,
		PageCount: content.PageCount,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	n, err := r.indexer.IndexText(ctx, doc.ID.String(), SourceReference, question, content.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to index reference answer: %w", err)
	}
	doc.ChunkCount = n

	if err := r.docRepo.Create(doc); err != nil {
		// Unrecorded points would still surface in similarity lookups.
		if derr := r.indexer.RemoveSource(ctx, doc.ID.String()); derr != nil {
			log.Printf("⚠️  Failed to remove indexed chunks of %s: %v\n", doc.ID, derr)
		}
		return nil, fmt.Errorf("failed to store reference answer: %w", err)
	}

	log.Printf("📚 Reference answer %q ingested: %d pages, %d chunks\n", title, doc.PageCount, n)
	return doc, nil
}
