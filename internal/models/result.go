package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type EvaluateRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// CriterionScore is one weighted, clamped contribution to the final score.
type CriterionScore struct {
	Criterion    string  `json:"criterion"`
	RawScore     float64 `json:"raw_score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Breakdown keeps contributions in rubric declaration order. It marshals to a
// JSON object of criterion name to contribution.
type Breakdown []CriterionScore

func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cs := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cs.Criterion)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cs.Contribution)
		if err != nil {
			return nil, fmt.Errorf("criterion %s: %w", cs.Criterion, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the contribution recorded for criterion.
func (b Breakdown) Get(criterion string) (float64, bool) {
	for _, cs := range b {
		if cs.Criterion == criterion {
			return cs.Contribution, true
		}
	}
	return 0, false
}

type EvaluationResult struct {
	ID         string    `json:"id"`
	FinalScore float64   `json:"final_score"`
	Grade      *string   `json:"grade"`
	Breakdown  Breakdown `json:"breakdown"`
	Sentiment  float64   `json:"sentiment"`
	PDFFile    string    `json:"pdf_file"`
}

type ResultResponse struct {
	ID          string          `json:"id"`
	Question    string          `json:"question"`
	Answer      string          `json:"answer"`
	FinalScore  float64         `json:"final_score"`
	Grade       *string         `json:"grade"`
	Breakdown   json.RawMessage `json:"breakdown"`
	Sentiment   float64         `json:"sentiment"`
	PDFFile     string          `json:"pdf_file"`
	IndexStatus string          `json:"index_status"`
	CreatedAt   string          `json:"created_at"`
}

type SimilarAnswer struct {
	EvaluationID string  `json:"evaluation_id,omitempty"`
	DocumentID   string  `json:"document_id,omitempty"`
	Source       string  `json:"source"`
	Score        float32 `json:"score"`
	Text         string  `json:"text"`
}

type SimilarResponse struct {
	ID      string          `json:"id"`
	Matches []SimilarAnswer `json:"matches"`
}
