package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-evaluator/internal/models"
)

type DocumentRepository interface {
	Create(document *models.ReferenceDocument) error
	FindByID(id uuid.UUID) (*models.ReferenceDocument, error)
	FindByPath(path string) (*models.ReferenceDocument, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.ReferenceDocument) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create reference document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.ReferenceDocument, error) {
	var doc models.ReferenceDocument
	if err := d.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reference document %s: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find reference document: %w", err)
	}

	return &doc, nil
}

// FindByPath implements DocumentRepository.
func (d *documentRepository) FindByPath(path string) (*models.ReferenceDocument, error) {
	var doc models.ReferenceDocument
	if err := d.db.Where("file_path = ?", path).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reference document %s: %w", path, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find reference document: %w", err)
	}

	return &doc, nil
}
