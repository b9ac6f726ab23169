package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceDocument is a model answer ingested into the answer index.
type ReferenceDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title      string    `gorm:"type:text" json:"title"`
	Question   string    `gorm:"type:text" json:"question"`
	FilePath   string    `gorm:"type:text" json:"file_path"`
	PageCount  int       `json:"page_count"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (d *ReferenceDocument) TableName() string {
	return "reference_documents"
}
