package models

import (
	"time"

	"github.com/google/uuid"
)

type IndexStatus string

const (
	IndexPending  IndexStatus = "pending"
	IndexDone     IndexStatus = "indexed"
	IndexFailed   IndexStatus = "failed"
	IndexDisabled IndexStatus = "disabled"
)

// Evaluation is the persisted record of one POST /evaluate call.
type Evaluation struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Question    string      `gorm:"type:text;not null" json:"question"`
	Answer      string      `gorm:"type:text;not null" json:"answer"`
	ModelOutput string      `gorm:"type:text" json:"model_output"`
	Scores      string      `gorm:"type:text" json:"-"`
	Breakdown   string      `gorm:"type:text" json:"-"`
	FinalScore  float64     `gorm:"type:decimal(6,3)" json:"final_score"`
	Grade       *string     `gorm:"type:text" json:"grade"`
	Sentiment   float64     `gorm:"type:decimal(6,4)" json:"sentiment"`
	PDFFile     string      `gorm:"type:text" json:"pdf_file"`
	IndexStatus IndexStatus `gorm:"type:text;not null;default:'pending'" json:"index_status"`
	IndexError  *string     `gorm:"type:text" json:"index_error,omitempty"`
	CreatedAt   time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
